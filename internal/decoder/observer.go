package decoder

import "time"

// Observer receives progress notifications from a decode so that callers
// can wire in metrics or tracing without the decoder package importing
// either. NoopObserver satisfies it with empty methods; internal/metrics
// and internal/tracing provide the real implementations.
type Observer interface {
	// SpanPassStarted fires once per span length, before that length's
	// positions are fanned out.
	SpanPassStarted(length int, positions int)
	// SpanPassCompleted fires once per span length, after every position's
	// beam has been sorted.
	SpanPassCompleted(length int, elapsed time.Duration)
}

// NoopObserver discards every notification. It is the default when a
// Decoder is constructed without one.
type NoopObserver struct{}

func (NoopObserver) SpanPassStarted(int, int)         {}
func (NoopObserver) SpanPassCompleted(int, time.Duration) {}
