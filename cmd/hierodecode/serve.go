package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hierodecode/hierodecode/internal/decoder"
	"github.com/hierodecode/hierodecode/internal/metrics"
	"github.com/hierodecode/hierodecode/internal/tracing"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	mf := &modelFlags{}
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve translations over HTTP, with /metrics and traced decodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf.cfgPath = *cfgPath
			lm, err := loadModels(mf)
			if err != nil {
				return err
			}
			if lm.closer != nil {
				defer lm.closer()
			}

			_, shutdown, err := tracing.NewStdoutProvider(cmd.OutOrStderr())
			if err != nil {
				return err
			}
			defer shutdown(context.Background())

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/translate", translateHandler(lm))

			logger.Info("listening", "addr", addr)
			server := &http.Server{Addr: addr, Handler: mux}
			return server.ListenAndServe()
		},
	}
	mf.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

type translateRequest struct {
	Sentence string `json:"sentence"`
}

type translateResponse struct {
	RequestID   string `json:"request_id"`
	Translation string `json:"translation"`
}

func translateHandler(lm *loadedModels) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		requestID := uuid.New().String()
		ctx, span := tracing.Tracer().Start(r.Context(), "translate")
		defer span.End()

		log := logger.With("request_id", requestID)
		start := time.Now()

		d, err := decoder.NewDecoder(lm.models, lm.params, lm.weight, req.Sentence)
		if err != nil {
			log.Error("tokenize failed", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d.SetObserver(withMetrics(tracing.NewSpanObserver(ctx)))
		translation := d.TranslateSentence(ctx)
		log.Info("translated", "sentence", req.Sentence, "elapsed", time.Since(start))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(translateResponse{RequestID: requestID, Translation: translation})
	}
}

// withMetrics fans one decoder.Observer call out to both the tracing
// SpanObserver and the Prometheus Collector, since Decoder accepts exactly
// one Observer.
type multiObserver struct {
	first, second decoder.Observer
}

func withMetrics(span decoder.Observer) decoder.Observer {
	return multiObserver{first: span, second: metrics.Collector{}}
}

func (m multiObserver) SpanPassStarted(length, positions int) {
	m.first.SpanPassStarted(length, positions)
	m.second.SpanPassStarted(length, positions)
}

func (m multiObserver) SpanPassCompleted(length int, elapsed time.Duration) {
	m.first.SpanPassCompleted(length, elapsed)
	m.second.SpanPassCompleted(length, elapsed)
}
