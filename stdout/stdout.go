// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package stdout registers the "console" exporter plugin for all three
// signals. Telemetry is written to os.Stdout in a human readable format;
// the factory constructors accept an alternate io.Writer.
package stdout

import (
	"context"
	"io"
	"os"

	"github.com/z5labs/autotel"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	reg := autotel.DefaultRegistry()

	reg.RegisterSpanExporter(autotel.ExporterConsole, SpanExporter())
	reg.RegisterMetricExporter(autotel.ExporterConsole, MetricExporter())
	reg.RegisterLogExporter(autotel.ExporterConsole, LogExporter())
}

type options struct {
	w io.Writer
}

// Option configures the console exporter factories.
type Option func(*options)

// WithWriter sets the io.Writer telemetry is written to.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.w = w
	}
}

// SpanExporter returns a factory that creates a span exporter which writes
// trace data to the configured writer.
func SpanExporter(opts ...Option) autotel.Factory[sdktrace.SpanExporter] {
	o := apply(opts)
	return func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(
			stdouttrace.WithWriter(o.w),
		)
	}
}

// MetricExporter returns a factory that creates a metric exporter which
// writes metric data to the configured writer.
func MetricExporter(opts ...Option) autotel.Factory[sdkmetric.Exporter] {
	o := apply(opts)
	return func(ctx context.Context) (sdkmetric.Exporter, error) {
		return stdoutmetric.New(
			stdoutmetric.WithWriter(o.w),
		)
	}
}

// LogExporter returns a factory that creates a log exporter which writes
// log records to the configured writer.
func LogExporter(opts ...Option) autotel.Factory[sdklog.Exporter] {
	o := apply(opts)
	return func(ctx context.Context) (sdklog.Exporter, error) {
		return stdoutlog.New(
			stdoutlog.WithWriter(o.w),
		)
	}
}

func apply(opts []Option) *options {
	o := &options{
		w: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
