// Package server exposes the HTTP trigger that starts one indexing pass per
// call, plus the metrics and health endpoints, on a single listener.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hitakshiA/charity-rewards-indexer/internal/indexer"
)

// PassRunner runs one synchronization pass. Implemented by indexer.Orchestrator.
type PassRunner interface {
	RunPass(ctx context.Context) (indexer.Summary, error)
}

// Server serves the sync trigger over HTTP. It performs no concurrency
// control: overlapping calls each run their own pass (see the orchestrator's
// documentation for the consequences).
type Server struct {
	httpServer *http.Server
	runner     PassRunner
	logger     *zap.SugaredLogger
}

// errorResponse is the failure envelope returned with a 500 status.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// New creates the trigger server. The sync endpoint runs one orchestrator
// pass synchronously per request; /metrics exposes the given gatherer.
func New(addr string, runner PassRunner, gatherer prometheus.Gatherer, sugar *zap.SugaredLogger) *Server {
	s := &Server{runner: runner, logger: sugar}

	mux := http.NewServeMux()
	mux.HandleFunc("/sync", s.handleSync)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck // best-effort health response
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	// Schedulers differ on the method they use for webhooks; both are allowed.
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Errorw("panic in sync pass", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error: fmt.Sprintf("internal error: %v", rec),
			})
		}
	}()

	summary, err := s.runner.RunPass(r.Context())
	if err != nil {
		s.logger.Errorw("fatal error in indexer pass", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // client gone; nothing to do
}

// Start begins serving. This is non-blocking.
// Returns a channel that receives an error if the server fails.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("trigger server: %w", err)
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully stops the server, waiting for in-flight passes to
// complete or until the context is cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
