// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gcp registers the "gcp" span exporter plugin, which ships spans
// directly to Google Cloud Trace instead of going through an OTLP
// collector.
package gcp

import (
	"context"

	"github.com/z5labs/autotel"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"go.opentelemetry.io/contrib/detectors/gcp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/api/option"
)

// ExporterName is the plugin name the span exporter is registered under.
const ExporterName = "gcp"

func init() {
	autotel.DefaultRegistry().RegisterSpanExporter(ExporterName, SpanExporter())
}

type options struct {
	projectID string
}

// Option configures the Cloud Trace exporter factory.
type Option func(*options)

// WithProjectId sets the Google Cloud Project ID to export to. Without it
// the exporter discovers the project from the environment.
func WithProjectId(id string) Option {
	return func(o *options) {
		o.projectID = id
	}
}

// SpanExporter returns a factory that creates a Cloud Trace span exporter.
func SpanExporter(opts ...Option) autotel.Factory[sdktrace.SpanExporter] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return texporter.New(
			texporter.WithProjectID(o.projectID),
			texporter.WithTraceClientOptions([]option.ClientOption{option.WithTelemetryDisabled()}),
		)
	}
}

// CloudResource returns an autotel.Option which enriches every pipeline's
// resource with attributes detected from the GCP runtime (GCE, GKE, Cloud
// Run, Cloud Functions or App Engine).
func CloudResource() autotel.Option {
	return autotel.WithResourceDetectors(gcp.NewDetector())
}
