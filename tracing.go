// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// initTracing builds the trace pipeline and publishes it as the global
// tracer provider. All exporters are constructed before the provider is
// published, so a construction failure never leaves a half wired provider
// behind the global slot. An empty exporter map still publishes a provider.
func initTracing(
	ctx context.Context,
	exporters map[string]Factory[sdktrace.SpanExporter],
	idGenerator Factory[sdktrace.IDGenerator],
	autoVersion string,
	detectors []resource.Detector,
) error {
	res, err := buildResource(ctx, autoVersion, detectors)
	if err != nil {
		return err
	}

	gen, err := idGenerator(ctx)
	if err != nil {
		return err
	}

	exps, err := buildExporters(ctx, exporters)
	if err != nil {
		return err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithIDGenerator(gen),
	)
	for _, exp := range exps {
		tp.RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(exp))
	}

	otel.SetTracerProvider(tp)
	return nil
}

// buildExporters instantiates every factory, shutting down the already
// constructed exporters if one fails.
func buildExporters[T interface {
	Shutdown(context.Context) error
}](ctx context.Context, factories map[string]Factory[T]) ([]T, error) {
	exps := make([]T, 0, len(factories))
	for _, f := range factories {
		exp, err := f(ctx)
		if err != nil {
			errs := []error{err}
			for _, built := range exps {
				errs = append(errs, built.Shutdown(ctx))
			}
			return nil, errors.Join(errs...)
		}
		exps = append(exps, exp)
	}
	return exps, nil
}
