// Package tracing wires an OpenTelemetry tracer provider for the decoder
// binary, defaulting to the stdout exporter so a decode is traceable with
// zero additional infrastructure (SPEC_FULL.md §3).
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies this module's spans in an exporter's output.
const TracerName = "hierodecode"

// NewStdoutProvider builds a tracer provider that writes spans as JSON to
// w. Callers should defer the returned shutdown function.
func NewStdoutProvider(w io.Writer) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: stdout exporter: %w", err)
	}
	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(TracerName),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp, tp.Shutdown, nil
}

// Tracer returns the package-scoped tracer for starting decode spans.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
