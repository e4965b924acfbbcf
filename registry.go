// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	"fmt"
	"sync"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Factory constructs a single plugin value. Factories are registered once
// and may be invoked any number of times, so they must be safe to call
// repeatedly.
type Factory[T any] func(context.Context) (T, error)

// Capability identifies the kind of plugin a name is registered under.
// The same name may be registered under multiple capabilities, e.g.
// "otlp_proto_grpc" names a span, metric and log exporter.
type Capability string

const (
	CapabilitySpanExporter   Capability = "span_exporter"
	CapabilityMetricExporter Capability = "metric_exporter"
	CapabilityLogExporter    Capability = "log_exporter"
	CapabilityIDGenerator    Capability = "id_generator"
)

// PluginNotFoundError is returned when a name has no registered
// implementation for the requested capability.
type PluginNotFoundError struct {
	Capability Capability
	Name       string
}

// Error implements the error interface.
func (e PluginNotFoundError) Error() string {
	return fmt.Sprintf("autotel: no %s plugin registered with name %q", e.Capability, e.Name)
}

// Registry maps (capability, name) pairs to plugin factories. The zero
// value is not usable; use [NewRegistry].
//
// Registration is expected to happen during process start, typically from
// package init functions. Lookups are stable for the process lifetime.
type Registry struct {
	mu              sync.RWMutex
	spanExporters   map[string]Factory[sdktrace.SpanExporter]
	metricExporters map[string]Factory[sdkmetric.Exporter]
	logExporters    map[string]Factory[sdklog.Exporter]
	idGenerators    map[string]Factory[sdktrace.IDGenerator]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		spanExporters:   make(map[string]Factory[sdktrace.SpanExporter]),
		metricExporters: make(map[string]Factory[sdkmetric.Exporter]),
		logExporters:    make(map[string]Factory[sdklog.Exporter]),
		idGenerators:    make(map[string]Factory[sdktrace.IDGenerator]),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process wide Registry which [Initialize]
// consults unless overridden with [WithRegistry].
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterSpanExporter registers f under name. Registering the same name
// twice overwrites the earlier registration.
func (r *Registry) RegisterSpanExporter(name string, f Factory[sdktrace.SpanExporter]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spanExporters[name] = f
}

// RegisterMetricExporter registers f under name.
func (r *Registry) RegisterMetricExporter(name string, f Factory[sdkmetric.Exporter]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metricExporters[name] = f
}

// RegisterLogExporter registers f under name.
func (r *Registry) RegisterLogExporter(name string, f Factory[sdklog.Exporter]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logExporters[name] = f
}

// RegisterIDGenerator registers f under name.
func (r *Registry) RegisterIDGenerator(name string, f Factory[sdktrace.IDGenerator]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idGenerators[name] = f
}

// SpanExporters resolves names to their registered factories. The returned
// map holds one entry per distinct name, so duplicates collapse.
func (r *Registry) SpanExporters(names []string) (map[string]Factory[sdktrace.SpanExporter], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookupAll(CapabilitySpanExporter, r.spanExporters, names)
}

// MetricExporters resolves names to their registered factories.
func (r *Registry) MetricExporters(names []string) (map[string]Factory[sdkmetric.Exporter], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookupAll(CapabilityMetricExporter, r.metricExporters, names)
}

// LogExporters resolves names to their registered factories.
func (r *Registry) LogExporters(names []string) (map[string]Factory[sdklog.Exporter], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookupAll(CapabilityLogExporter, r.logExporters, names)
}

// IDGenerator resolves a single id generator name to its factory.
func (r *Registry) IDGenerator(name string) (Factory[sdktrace.IDGenerator], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.idGenerators[name]
	if !ok {
		return nil, PluginNotFoundError{Capability: CapabilityIDGenerator, Name: name}
	}
	return f, nil
}

func lookupAll[T any](c Capability, registered map[string]Factory[T], names []string) (map[string]Factory[T], error) {
	factories := make(map[string]Factory[T], len(names))
	for _, name := range names {
		f, ok := registered[name]
		if !ok {
			return nil, PluginNotFoundError{Capability: c, Name: name}
		}
		factories[name] = f
	}
	return factories, nil
}
