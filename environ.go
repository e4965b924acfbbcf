// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/z5labs/autotel/config"
)

// Signal is one of the three telemetry categories, each with an
// independently wired pipeline.
type Signal string

const (
	SignalTraces  Signal = "traces"
	SignalMetrics Signal = "metrics"
	SignalLogs    Signal = "logs"
)

// environment is the full set of directives this package consumes. Resource
// attribute variables (OTEL_RESOURCE_ATTRIBUTES, OTEL_SERVICE_NAME) are
// intentionally absent: the SDK resource detector parses those itself.
type environment struct {
	TracesExporter  string `config:"OTEL_TRACES_EXPORTER"`
	MetricsExporter string `config:"OTEL_METRICS_EXPORTER"`
	LogsExporter    string `config:"OTEL_LOGS_EXPORTER"`

	OTLPProtocol        string `config:"OTEL_EXPORTER_OTLP_PROTOCOL"`
	OTLPTracesProtocol  string `config:"OTEL_EXPORTER_OTLP_TRACES_PROTOCOL"`
	OTLPMetricsProtocol string `config:"OTEL_EXPORTER_OTLP_METRICS_PROTOCOL"`
	OTLPLogsProtocol    string `config:"OTEL_EXPORTER_OTLP_LOGS_PROTOCOL"`

	IDGenerator    string `config:"OTEL_GO_ID_GENERATOR"`
	LoggingEnabled string `config:"OTEL_GO_LOGGING_AUTO_INSTRUMENTATION_ENABLED"`
	Propagators    string `config:"OTEL_PROPAGATORS"`
}

func readEnvironment() (environment, error) {
	m, err := config.Read(config.FromEnv(config.Prefix("OTEL_")))
	if err != nil {
		return environment{}, err
	}

	var env environment
	err = m.Unmarshal(&env)
	if err != nil {
		return environment{}, err
	}
	return env, nil
}

func (e environment) exporterDirective(signal Signal) (string, error) {
	switch signal {
	case SignalTraces:
		return e.TracesExporter, nil
	case SignalMetrics:
		return e.MetricsExporter, nil
	case SignalLogs:
		return e.LogsExporter, nil
	default:
		return "", fmt.Errorf("autotel: unknown signal %q", signal)
	}
}

// protocolDirective returns the effective OTLP protocol directive for a
// signal. The signal specific variable wins over the general one.
func (e environment) protocolDirective(signal Signal) string {
	var specific string
	switch signal {
	case SignalTraces:
		specific = e.OTLPTracesProtocol
	case SignalMetrics:
		specific = e.OTLPMetricsProtocol
	case SignalLogs:
		specific = e.OTLPLogsProtocol
	}
	specific = strings.TrimSpace(specific)
	if specific != "" {
		return specific
	}
	return strings.TrimSpace(e.OTLPProtocol)
}

func (e environment) idGeneratorName() string {
	name := strings.TrimSpace(e.IDGenerator)
	if name == "" {
		return "random"
	}
	return name
}

func (e environment) loggingEnabled() bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(e.LoggingEnabled))
	if err != nil {
		return false
	}
	return enabled
}
