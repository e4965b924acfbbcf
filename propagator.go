// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/propagation"
)

// textMapPropagator builds the global text map propagator from the
// OTEL_PROPAGATORS directive. Unset defaults to W3C trace context plus
// baggage; "none" disables propagation entirely. Unknown names are skipped
// with a warning rather than failing initialization.
func textMapPropagator(log *slog.Logger, directive string) propagation.TextMapPropagator {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		)
	}
	if strings.EqualFold(directive, "none") {
		return propagation.NewCompositeTextMapPropagator()
	}

	var props []propagation.TextMapPropagator
	for _, name := range strings.Split(directive, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "":
		case "tracecontext":
			props = append(props, propagation.TraceContext{})
		case "baggage":
			props = append(props, propagation.Baggage{})
		default:
			log.Warn("skipping unknown propagator", slog.String("name", name))
		}
	}
	return propagation.NewCompositeTextMapPropagator(props...)
}
