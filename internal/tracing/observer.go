package tracing

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanObserver satisfies internal/decoder.Observer by opening one otel span
// per span-length pass, so a decode is traceable end-to-end without the
// decoder package importing otel directly.
type SpanObserver struct {
	ctx context.Context

	mu    sync.Mutex
	spans map[int]trace.Span
}

// NewSpanObserver returns a SpanObserver whose spans are children of ctx,
// typically a per-request context already carrying a request id (see
// cmd/hierodecode).
func NewSpanObserver(ctx context.Context) *SpanObserver {
	return &SpanObserver{ctx: ctx, spans: make(map[int]trace.Span)}
}

// SpanPassStarted opens a span for the pass at this length.
func (o *SpanObserver) SpanPassStarted(length, positions int) {
	_, span := Tracer().Start(o.ctx, "span_pass", trace.WithAttributes(
		attribute.Int("length", length),
		attribute.Int("positions", positions),
	))
	o.mu.Lock()
	o.spans[length] = span
	o.mu.Unlock()
}

// SpanPassCompleted closes the span opened for this length.
func (o *SpanObserver) SpanPassCompleted(length int, elapsed time.Duration) {
	o.mu.Lock()
	span, ok := o.spans[length]
	delete(o.spans, length)
	o.mu.Unlock()
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("elapsed_ms", elapsed.Milliseconds()))
	span.End()
}
