// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

// autoVersionKey carries the version of the auto instrumentation agent
// which drove initialization, when there is one.
const autoVersionKey = attribute.Key("telemetry.auto.version")

// buildResource merges environment declared attributes
// (OTEL_RESOURCE_ATTRIBUTES, OTEL_SERVICE_NAME) with the telemetry SDK
// attributes and any configured detectors. A non-empty autoVersion always
// wins over a same-keyed environment attribute.
//
// Each pipeline builds its own resource so that providers never share
// mutable construction state, even though the inputs are identical.
func buildResource(ctx context.Context, autoVersion string, detectors []resource.Detector) (*resource.Resource, error) {
	opts := []resource.Option{
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	}
	if len(detectors) > 0 {
		opts = append(opts, resource.WithDetectors(detectors...))
	}
	if autoVersion != "" {
		opts = append(opts, resource.WithAttributes(autoVersionKey.String(autoVersion)))
	}
	return resource.New(ctx, opts...)
}
