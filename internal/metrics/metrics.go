// Package metrics exposes Prometheus collectors for the decoder's chart
// driver (SPEC_FULL.md §3). Collector satisfies internal/decoder.Observer
// so a caller wires it in with Decoder.SetObserver and nothing in the
// decoder package needs to know Prometheus exists.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	spansDecodedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hierodecode",
		Name:      "spans_decoded_total",
		Help:      "Span-length passes whose cube-pruning search has completed, by span length",
	}, []string{"length"})

	passLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hierodecode",
		Name:      "span_pass_latency_seconds",
		Help:      "Wall-clock time to complete one span-length pass",
		Buckets:   prometheus.DefBuckets,
	}, []string{"length"})

	beamOccupancy = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hierodecode",
		Name:      "span_positions_per_pass",
		Help:      "Number of span positions fanned out in a single pass",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
	})
)

// Collector records chart-driver progress into the package's Prometheus
// collectors. The zero value is ready to use.
type Collector struct{}

// SpanPassStarted records the position count for the pass about to run.
func (Collector) SpanPassStarted(length int, positions int) {
	beamOccupancy.Observe(float64(positions))
	spansDecodedTotal.WithLabelValues(strconv.Itoa(length)).Add(0) // registers the label set even if the pass is empty
}

// SpanPassCompleted records the pass's elapsed time.
func (Collector) SpanPassCompleted(length int, elapsed time.Duration) {
	passLatencySeconds.WithLabelValues(strconv.Itoa(length)).Observe(elapsed.Seconds())
	spansDecodedTotal.WithLabelValues(strconv.Itoa(length)).Inc()
}

