// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otlp registers the OTLP exporter plugins.
//
// Importing it, usually for side effects only, registers the
// "otlp_proto_grpc" and "otlp_proto_http" names for all three signals in
// [autotel.DefaultRegistry]. Endpoint, headers and TLS behavior follow the
// exporter's own OTEL_EXPORTER_OTLP_* environment variables; the exported
// factory constructors allow overriding the gRPC connection or HTTP client
// for custom registrations.
package otlp
