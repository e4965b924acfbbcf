// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"fmt"
	"log/slog"
	"strings"
)

// Well known exporter names. The generic [ExporterOTLP] never reaches the
// registry: resolution replaces it with one of the concrete protocol
// variants.
const (
	ExporterNone          = "none"
	ExporterOTLP          = "otlp"
	ExporterOTLPProtoGRPC = "otlp_proto_grpc"
	ExporterOTLPProtoHTTP = "otlp_proto_http"
	ExporterConsole       = "console"
)

const (
	protocolGRPC         = "grpc"
	protocolHTTPProtobuf = "http/protobuf"
)

// resolveExporterNames turns a signal's exporter directive into an ordered
// list of concrete exporter names. Tokens are trimmed and lowercased, so
// "OTLP" and " otlp " resolve alike. The order of the directive is
// preserved and duplicates are kept; the registry lookup collapses them.
func resolveExporterNames(log *slog.Logger, env environment, signal Signal) ([]string, error) {
	directive, err := env.exporterDirective(signal)
	if err != nil {
		return nil, err
	}
	directive = strings.TrimSpace(directive)
	if directive == "" || strings.EqualFold(directive, ExporterNone) {
		return nil, nil
	}

	var names []string
	warned := false
	for _, token := range strings.Split(directive, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}

		switch token {
		case ExporterOTLP:
			name, err := otlpExporterName(env, signal)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		case ExporterOTLPProtoGRPC, ExporterOTLPProtoHTTP:
			// The user already picked a protocol by name. A protocol
			// directive pointing elsewhere is contradictory; the explicit
			// name wins but the contradiction must be surfaced.
			if !warned && conflictsWithProtocolDirective(env, signal, token) {
				log.Warn(
					"exporter directive names a concrete otlp variant which contradicts the protocol directive; using the exporter directive",
					slog.String("signal", string(signal)),
					slog.String("exporter", token),
					slog.String("protocol", env.protocolDirective(signal)),
				)
				warned = true
			}
			names = append(names, token)
		default:
			names = append(names, token)
		}
	}
	return names, nil
}

// otlpExporterName resolves the generic "otlp" token to a concrete variant.
func otlpExporterName(env environment, signal Signal) (string, error) {
	protocol := env.protocolDirective(signal)
	if protocol == "" {
		protocol = protocolGRPC
	}

	switch strings.ToLower(protocol) {
	case protocolGRPC:
		return ExporterOTLPProtoGRPC, nil
	case protocolHTTPProtobuf:
		return ExporterOTLPProtoHTTP, nil
	default:
		return "", fmt.Errorf("autotel: unsupported otlp protocol %q for %s", protocol, signal)
	}
}

func conflictsWithProtocolDirective(env environment, signal Signal, name string) bool {
	switch strings.ToLower(env.protocolDirective(signal)) {
	case protocolGRPC:
		return name != ExporterOTLPProtoGRPC
	case protocolHTTPProtobuf:
		return name != ExporterOTLPProtoHTTP
	default:
		return false
	}
}
