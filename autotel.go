// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/sdk/resource"
	"golang.org/x/sync/errgroup"
)

type options struct {
	autoVersion string
	logHandler  slog.Handler
	registry    *Registry
	detectors   []resource.Detector
}

// Option configures Initialize.
type Option func(*options)

// WithAutoVersion records the version of the auto instrumentation agent
// driving initialization under the telemetry.auto.version resource
// attribute of every pipeline.
func WithAutoVersion(version string) Option {
	return func(o *options) {
		o.autoVersion = version
	}
}

// WithLogHandler configures the slog.Handler which diagnostic events, such
// as directive conflict warnings, are emitted through. Defaults to the
// handler of the process default logger.
func WithLogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// WithRegistry overrides the plugin registry consulted during
// initialization. Defaults to [DefaultRegistry].
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithResourceDetectors appends resource detectors to every pipeline's
// resource, on top of the environment declared attributes.
func WithResourceDetectors(detectors ...resource.Detector) Option {
	return func(o *options) {
		o.detectors = append(o.detectors, detectors...)
	}
}

// Initialize wires one telemetry pipeline per signal from the OTEL_*
// environment directives and publishes the providers through the
// OpenTelemetry globals.
//
// All exporter names and the id generator are resolved against the registry
// before any pipeline is built, so a missing plugin fails initialization
// without publishing anything. The trace and metric pipelines are always
// initialized; the log pipeline only when
// OTEL_GO_LOGGING_AUTO_INSTRUMENTATION_ENABLED is truthy.
//
// Initialize is meant to run once per process and must not be called
// concurrently with itself. Re-initialization overwrites the previously
// published providers without shutting them down; call [Shutdown] first.
func Initialize(ctx context.Context, opts ...Option) error {
	o := &options{
		registry: defaultRegistry,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logHandler == nil {
		o.logHandler = slog.Default().Handler()
	}
	log := slog.New(o.logHandler)

	env, err := readEnvironment()
	if err != nil {
		return err
	}

	traceNames, err := resolveExporterNames(log, env, SignalTraces)
	if err != nil {
		return err
	}
	metricNames, err := resolveExporterNames(log, env, SignalMetrics)
	if err != nil {
		return err
	}
	logNames, err := resolveExporterNames(log, env, SignalLogs)
	if err != nil {
		return err
	}

	spanExporters, err := o.registry.SpanExporters(traceNames)
	if err != nil {
		return err
	}
	metricExporters, err := o.registry.MetricExporters(metricNames)
	if err != nil {
		return err
	}
	logExporters, err := o.registry.LogExporters(logNames)
	if err != nil {
		return err
	}
	idGenerator, err := o.registry.IDGenerator(env.idGeneratorName())
	if err != nil {
		return err
	}

	otel.SetTextMapPropagator(textMapPropagator(log, env.Propagators))

	err = initTracing(ctx, spanExporters, idGenerator, o.autoVersion, o.detectors)
	if err != nil {
		return err
	}
	if env.loggingEnabled() {
		err = initLogging(ctx, logExporters, o.autoVersion, o.detectors)
		if err != nil {
			return err
		}
	}
	return initMetrics(ctx, metricExporters, o.autoVersion, o.detectors)
}

type shutdowner interface {
	Shutdown(context.Context) error
}

// Shutdown detaches the slog bridge installed by the log pipeline and shuts
// down every provider currently published through the OpenTelemetry
// globals. Providers without a Shutdown method, such as the noop defaults,
// are skipped.
func Shutdown(ctx context.Context) error {
	detachLogBridge()

	// A plain errgroup instead of errgroup.WithContext: one provider
	// failing to shut down must not cancel the others mid-flush.
	var eg errgroup.Group
	for _, provider := range []any{
		otel.GetTracerProvider(),
		otel.GetMeterProvider(),
		global.GetLoggerProvider(),
	} {
		sd, ok := provider.(shutdowner)
		if !ok {
			continue
		}
		eg.Go(func() error {
			return sd.Shutdown(ctx)
		})
	}
	return eg.Wait()
}
