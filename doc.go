// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package autotel bootstraps the OpenTelemetry SDK from environment directives.
//
// [Initialize] reads the standard OTEL_* environment variables, resolves one
// set of exporters per signal (traces, metrics, logs), wires each signal's
// provider and publishes it through the corresponding OpenTelemetry global:
//
//	err := autotel.Initialize(ctx)
//
// Exporter implementations are looked up by name in a process wide [Registry].
// Subpackages register the well known names when imported, in the same way
// database/sql drivers do:
//
//	import (
//		_ "github.com/z5labs/autotel/otlp"   // otlp_proto_grpc, otlp_proto_http
//		_ "github.com/z5labs/autotel/stdout" // console
//	)
//
// The generic "otlp" exporter name is resolved to a concrete protocol variant
// using OTEL_EXPORTER_OTLP_PROTOCOL and its per-signal overrides. A concrete
// name in the exporter directive always wins over a protocol directive; the
// contradiction is reported through the configured log handler instead of
// failing initialization.
//
// When OTEL_GO_LOGGING_AUTO_INSTRUMENTATION_ENABLED is truthy, Initialize
// also bridges the process default slog logger into the log pipeline so that
// plain slog calls are exported as log records. [Shutdown] detaches the
// bridge and shuts the published providers down.
package autotel
