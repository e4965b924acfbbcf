// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationName = "github.com/z5labs/autotel"

// initLogging builds the log pipeline, publishes it as the global logger
// provider and bridges the process default slog logger into it, so plain
// slog calls flow through the exporters as well. An empty exporter map
// still publishes a provider.
func initLogging(
	ctx context.Context,
	exporters map[string]Factory[sdklog.Exporter],
	autoVersion string,
	detectors []resource.Detector,
) error {
	res, err := buildResource(ctx, autoVersion, detectors)
	if err != nil {
		return err
	}

	exps, err := buildExporters(ctx, exporters)
	if err != nil {
		return err
	}

	opts := []sdklog.LoggerProviderOption{
		sdklog.WithResource(res),
	}
	for _, exp := range exps {
		opts = append(opts, sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)))
	}
	lp := sdklog.NewLoggerProvider(opts...)

	global.SetLoggerProvider(lp)
	attachLogBridge(lp)
	return nil
}

// logBridge tracks the slog default logger swap performed by initLogging,
// so teardown can undo exactly that swap and nothing else.
type logBridge struct {
	mu        sync.Mutex
	previous  *slog.Logger
	installed *slog.Logger
}

var bridge logBridge

func attachLogBridge(lp *sdklog.LoggerProvider) {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()

	previous := slog.Default()
	installed := slog.New(fanoutHandler{
		handlers: []slog.Handler{
			previous.Handler(),
			otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(lp)),
		},
	})
	slog.SetDefault(installed)

	bridge.previous = previous
	bridge.installed = installed
}

// detachLogBridge restores the slog default logger that was in place before
// initLogging ran. If some other code replaced the default in the meantime,
// that replacement is left untouched.
func detachLogBridge() {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()

	if bridge.installed == nil {
		return
	}
	if slog.Default() == bridge.installed {
		slog.SetDefault(bridge.previous)
	}
	bridge.previous = nil
	bridge.installed = nil
}

// fanoutHandler forwards each record to every wrapped handler.
type fanoutHandler struct {
	handlers []slog.Handler
}

// Enabled implements the slog.Handler interface.
func (h fanoutHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, sub := range h.handlers {
		if sub.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

// Handle implements the slog.Handler interface.
func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	errs := make([]error, 0, len(h.handlers))
	for _, sub := range h.handlers {
		if !sub.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, sub.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

// WithAttrs implements the slog.Handler interface.
func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, sub := range h.handlers {
		handlers[i] = sub.WithAttrs(attrs)
	}
	return fanoutHandler{handlers: handlers}
}

// WithGroup implements the slog.Handler interface.
func (h fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, sub := range h.handlers {
		handlers[i] = sub.WithGroup(name)
	}
	return fanoutHandler{handlers: handlers}
}
