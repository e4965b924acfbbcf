// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracing(t *testing.T) {
	t.Run("will publish a tracer provider", func(t *testing.T) {
		t.Run("if no exporters are configured", func(t *testing.T) {
			restoreGlobals(t)

			err := initTracing(context.Background(), nil, RandomIDGenerator, "", nil)
			require.NoError(t, err)

			_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			require.True(t, ok)
		})

		t.Run("if an exporter is configured", func(t *testing.T) {
			restoreGlobals(t)

			exp := tracetest.NewInMemoryExporter()
			exporters := map[string]Factory[sdktrace.SpanExporter]{
				"inmemory": inMemorySpanExporter(exp),
			}

			err := initTracing(context.Background(), exporters, RandomIDGenerator, "test-version", nil)
			require.NoError(t, err)

			tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			require.True(t, ok)

			_, span := tp.Tracer("test").Start(context.Background(), "op")
			span.End()
			require.NoError(t, tp.ForceFlush(context.Background()))

			spans := exp.GetSpans()
			require.Len(t, spans, 1)
			require.Equal(t, "op", spans[0].Name)

			val, ok := attributeValue(spans[0].Resource, autoVersionKey)
			require.True(t, ok)
			require.Equal(t, "test-version", val.AsString())
		})
	})

	t.Run("will not publish a tracer provider", func(t *testing.T) {
		t.Run("if an exporter fails to construct", func(t *testing.T) {
			restoreGlobals(t)

			before := otel.GetTracerProvider()
			buildErr := errors.New("build failed")
			exporters := map[string]Factory[sdktrace.SpanExporter]{
				"broken": func(ctx context.Context) (sdktrace.SpanExporter, error) {
					return nil, buildErr
				},
			}

			err := initTracing(context.Background(), exporters, RandomIDGenerator, "", nil)
			require.ErrorIs(t, err, buildErr)
			require.Same(t, before, otel.GetTracerProvider())
		})

		t.Run("if the id generator fails to construct", func(t *testing.T) {
			restoreGlobals(t)

			before := otel.GetTracerProvider()
			genErr := errors.New("gen failed")
			gen := func(ctx context.Context) (sdktrace.IDGenerator, error) {
				return nil, genErr
			}

			err := initTracing(context.Background(), nil, gen, "", nil)
			require.ErrorIs(t, err, genErr)
			require.Same(t, before, otel.GetTracerProvider())
		})
	})

	t.Run("will use the configured id generator", func(t *testing.T) {
		t.Run("if spans are created", func(t *testing.T) {
			restoreGlobals(t)

			gen := &staticIDGenerator{}
			exp := tracetest.NewInMemoryExporter()
			exporters := map[string]Factory[sdktrace.SpanExporter]{
				"inmemory": inMemorySpanExporter(exp),
			}

			err := initTracing(
				context.Background(),
				exporters,
				func(ctx context.Context) (sdktrace.IDGenerator, error) {
					return gen, nil
				},
				"",
				nil,
			)
			require.NoError(t, err)

			tp := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			_, span := tp.Tracer("test").Start(context.Background(), "op")
			span.End()
			require.NoError(t, tp.ForceFlush(context.Background()))

			spans := exp.GetSpans()
			require.Len(t, spans, 1)
			require.Equal(t, gen.traceID(), spans[0].SpanContext.TraceID())
		})
	})
}
