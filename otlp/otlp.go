// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otlp

import (
	"context"
	"net/http"

	"github.com/z5labs/autotel"
	"github.com/z5labs/autotel/httpclient"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
)

func init() {
	reg := autotel.DefaultRegistry()

	reg.RegisterSpanExporter(autotel.ExporterOTLPProtoGRPC, GrpcSpanExporter())
	reg.RegisterSpanExporter(autotel.ExporterOTLPProtoHTTP, HttpSpanExporter())
	reg.RegisterMetricExporter(autotel.ExporterOTLPProtoGRPC, GrpcMetricExporter())
	reg.RegisterMetricExporter(autotel.ExporterOTLPProtoHTTP, HttpMetricExporter())
	reg.RegisterLogExporter(autotel.ExporterOTLPProtoGRPC, GrpcLogExporter())
	reg.RegisterLogExporter(autotel.ExporterOTLPProtoHTTP, HttpLogExporter())
}

type grpcOptions struct {
	conn *grpc.ClientConn
}

// GrpcOption configures the gRPC transport exporter factories.
type GrpcOption func(*grpcOptions)

// WithGrpcConn supplies an established gRPC connection for the exporter to
// send telemetry over. Without it the exporter dials the endpoint named by
// the OTEL_EXPORTER_OTLP_ENDPOINT directives itself.
func WithGrpcConn(conn *grpc.ClientConn) GrpcOption {
	return func(o *grpcOptions) {
		o.conn = conn
	}
}

type httpOptions struct {
	client *http.Client
}

// HttpOption configures the HTTP transport exporter factories.
type HttpOption func(*httpOptions)

// WithHttpClient supplies the http.Client telemetry is sent with. Defaults
// to a [httpclient.New] client.
func WithHttpClient(client *http.Client) HttpOption {
	return func(o *httpOptions) {
		o.client = client
	}
}

// GrpcSpanExporter returns a factory that creates an OTLP span exporter
// using gRPC transport.
func GrpcSpanExporter(opts ...GrpcOption) autotel.Factory[sdktrace.SpanExporter] {
	o := applyGrpc(opts)
	return func(ctx context.Context) (sdktrace.SpanExporter, error) {
		var gopts []otlptracegrpc.Option
		if o.conn != nil {
			gopts = append(gopts, otlptracegrpc.WithGRPCConn(o.conn))
		}
		return otlptracegrpc.New(ctx, gopts...)
	}
}

// HttpSpanExporter returns a factory that creates an OTLP span exporter
// using HTTP transport.
func HttpSpanExporter(opts ...HttpOption) autotel.Factory[sdktrace.SpanExporter] {
	o := applyHttp(opts)
	return func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return otlptracehttp.New(
			ctx,
			otlptracehttp.WithHTTPClient(o.client),
		)
	}
}

// GrpcMetricExporter returns a factory that creates an OTLP metric exporter
// using gRPC transport.
func GrpcMetricExporter(opts ...GrpcOption) autotel.Factory[sdkmetric.Exporter] {
	o := applyGrpc(opts)
	return func(ctx context.Context) (sdkmetric.Exporter, error) {
		var gopts []otlpmetricgrpc.Option
		if o.conn != nil {
			gopts = append(gopts, otlpmetricgrpc.WithGRPCConn(o.conn))
		}
		return otlpmetricgrpc.New(ctx, gopts...)
	}
}

// HttpMetricExporter returns a factory that creates an OTLP metric exporter
// using HTTP transport.
func HttpMetricExporter(opts ...HttpOption) autotel.Factory[sdkmetric.Exporter] {
	o := applyHttp(opts)
	return func(ctx context.Context) (sdkmetric.Exporter, error) {
		return otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithHTTPClient(o.client),
		)
	}
}

// GrpcLogExporter returns a factory that creates an OTLP log exporter
// using gRPC transport.
func GrpcLogExporter(opts ...GrpcOption) autotel.Factory[sdklog.Exporter] {
	o := applyGrpc(opts)
	return func(ctx context.Context) (sdklog.Exporter, error) {
		var gopts []otlploggrpc.Option
		if o.conn != nil {
			gopts = append(gopts, otlploggrpc.WithGRPCConn(o.conn))
		}
		return otlploggrpc.New(ctx, gopts...)
	}
}

// HttpLogExporter returns a factory that creates an OTLP log exporter
// using HTTP transport.
func HttpLogExporter(opts ...HttpOption) autotel.Factory[sdklog.Exporter] {
	o := applyHttp(opts)
	return func(ctx context.Context) (sdklog.Exporter, error) {
		return otlploghttp.New(
			ctx,
			otlploghttp.WithHTTPClient(o.client),
		)
	}
}

func applyGrpc(opts []GrpcOption) *grpcOptions {
	o := &grpcOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func applyHttp(opts []HttpOption) *httpOptions {
	o := &httpOptions{
		client: httpclient.New(httpclient.Name("otlp")),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
