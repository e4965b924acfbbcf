// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package httpclient provides a production ready http.Client for exporters
// that ship telemetry over HTTP.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
)

type circuitOptions struct {
	maxRequests  uint32
	interval     time.Duration
	timeout      time.Duration
	tripCount    uint32
	isSuccessful func(error) bool
	statusCodes  []int
}

func withCircuitOption(f func(*circuitOptions)) Option {
	return func(o *options) {
		if o.co == nil {
			o.co = new(circuitOptions)
		}
		f(o.co)
	}
}

// HalfOpenRequests sets the number of requests allowed through while the
// circuit is half open.
func HalfOpenRequests(n uint32) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.maxRequests = n
	})
}

// OpenStateTimeout sets how long the circuit stays open before moving to
// half open.
func OpenStateTimeout(d time.Duration) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.timeout = d
	})
}

// CountResetInterval sets the cyclic period for clearing the circuit's
// internal counts while closed.
func CountResetInterval(d time.Duration) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.interval = d
	})
}

// TripAfter determines the number of consecutive failures required to trip
// the circuit.
func TripAfter(n uint32) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.tripCount = n
	})
}

// FailureStatusCodes sets the response status codes which count as circuit
// failures. Defaults to 400, 401, 403 and 500.
func FailureStatusCodes(codes ...int) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.statusCodes = append(co.statusCodes, codes...)
	})
}

type retryOptions struct {
	maxRetries int
	waitMin    time.Duration
	waitMax    time.Duration
}

func withRetryOption(f func(*retryOptions)) Option {
	return func(o *options) {
		if o.ro == nil {
			o.ro = new(retryOptions)
		}
		f(o.ro)
	}
}

// MaxRetries sets the number of retries per request.
func MaxRetries(n int) Option {
	return withRetryOption(func(ro *retryOptions) {
		ro.maxRetries = n
	})
}

// RetryWait bounds the backoff wait between retries.
func RetryWait(min, max time.Duration) Option {
	return withRetryOption(func(ro *retryOptions) {
		ro.waitMin = min
		ro.waitMax = max
	})
}

type options struct {
	timeout time.Duration
	rt      http.RoundTripper

	name       string
	logHandler slog.Handler

	co *circuitOptions
	ro *retryOptions
}

// Option configures the client returned by New.
type Option func(*options)

// Name identifies the client in its log records.
func Name(s string) Option {
	return func(o *options) {
		o.name = s
	}
}

// RoundTripper configures the base http.RoundTripper.
func RoundTripper(rt http.RoundTripper) Option {
	return func(o *options) {
		o.rt = rt
	}
}

// Timeout provides a global timeout value for the http.Client.
func Timeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// LogHandler configures the slog.Handler request logs are written to.
// Defaults to discarding them.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// New returns an http.Client layered with, from the inside out: request
// logging, an optional circuit breaker and optional retries.
func New(opts ...Option) *http.Client {
	o := &options{
		rt:         http.DefaultTransport,
		logHandler: discardHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := slog.New(o.logHandler)
	if o.name != "" {
		logger = logger.With(slog.String("http_client", o.name))
	}

	var rt http.RoundTripper = &logRoundTripper{
		base: o.rt,
		log:  logger,
	}

	if o.co != nil {
		co := o.co
		if len(co.statusCodes) == 0 {
			co.statusCodes = append(
				co.statusCodes,
				http.StatusBadRequest,          // 400
				http.StatusUnauthorized,        // 401
				http.StatusForbidden,           // 403
				http.StatusInternalServerError, // 500
			)
		}

		codes := map[int]struct{}{}
		for _, code := range co.statusCodes {
			codes[code] = struct{}{}
		}

		rt = &circuitRoundTripper{
			base: rt,
			cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:        o.name,
				MaxRequests: co.maxRequests,
				Interval:    co.interval,
				Timeout:     co.timeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= co.tripCount
				},
				OnStateChange: func(name string, from, to gobreaker.State) {
					switch to {
					case gobreaker.StateOpen:
						logger.Error("circuit has been opened")
					case gobreaker.StateHalfOpen:
						logger.Warn(
							"circuit is now half open and letting some requests through",
							slog.Uint64("max_requests_allowed_through", uint64(co.maxRequests)),
						)
					case gobreaker.StateClosed:
						logger.Info("circuit has been closed")
					}
				},
				IsSuccessful: co.isSuccessful,
			}),
			onStatusCode: func(n int) error {
				_, ok := codes[n]
				if !ok {
					return nil
				}
				return statusCodeError{code: n}
			},
		}
	}
	if o.ro == nil {
		return &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		}
	}

	ro := o.ro
	rc := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		},
		RetryWaitMin: ro.waitMin,
		RetryWaitMax: ro.waitMax,
		RetryMax:     ro.maxRetries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return rc.StandardClient()
}

type logRoundTripper struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (rt *logRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	rt.log.InfoContext(
		ctx,
		"request sent",
		slog.String("url", req.URL.String()),
	)
	resp, err := rt.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	rt.log.InfoContext(
		ctx,
		"response received",
		slog.String("url", req.URL.String()),
		slog.Duration("latency", time.Since(start)),
	)
	return resp, err
}

type statusCodeError struct {
	code int
}

func (e statusCodeError) Error() string {
	return fmt.Sprintf("received failure status code: %d", e.code)
}

type circuitRoundTripper struct {
	base         http.RoundTripper
	cb           *gobreaker.CircuitBreaker
	onStatusCode func(int) error
}

func (rt *circuitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	v, err := rt.cb.Execute(func() (any, error) {
		resp, err := rt.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		return resp, rt.onStatusCode(resp.StatusCode)
	})

	// A failure status code counts against the breaker but the response
	// still belongs to the caller.
	var sce statusCodeError
	if errors.As(err, &sce) {
		return v.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*http.Response), nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
