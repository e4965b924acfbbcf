// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// initMetrics builds the metric pipeline and publishes it as the global
// meter provider. Unlike span and log processors, readers can only be
// supplied at provider construction time, so every periodic reader is built
// up front. An empty exporter map still publishes a provider.
func initMetrics(
	ctx context.Context,
	exporters map[string]Factory[sdkmetric.Exporter],
	autoVersion string,
	detectors []resource.Detector,
) error {
	res, err := buildResource(ctx, autoVersion, detectors)
	if err != nil {
		return err
	}

	exps, err := buildExporters(ctx, exporters)
	if err != nil {
		return err
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, exp := range exps {
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
	}

	otel.SetMeterProvider(sdkmetric.NewMeterProvider(opts...))
	return nil
}
