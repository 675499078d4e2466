package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hitakshiA/charity-rewards-indexer/internal/indexer"
)

type stubRunner struct {
	summary indexer.Summary
	err     error
	panics  bool
	calls   int
}

func (r *stubRunner) RunPass(ctx context.Context) (indexer.Summary, error) {
	r.calls++
	if r.panics {
		panic("unexpected state")
	}
	return r.summary, r.err
}

func newTestServer(runner PassRunner) *Server {
	return New(":0", runner, prometheus.NewRegistry(), zap.NewNop().Sugar())
}

func doSync(t *testing.T, s *Server, method string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/sync", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleSync_Success(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{summary: indexer.Summary{
		Success:         true,
		Message:         "Indexer run complete",
		SyncedToVersion: 103,
	}}
	rec := doSync(t, newTestServer(runner), http.MethodPost)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"success":true,"message":"Indexer run complete","syncedToVersion":103}`,
		rec.Body.String())
	assert.Equal(t, 1, runner.calls)
}

func TestHandleSync_GetAllowed(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{summary: indexer.Summary{Success: true}}
	rec := doSync(t, newTestServer(runner), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSync_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{}
	rec := doSync(t, newTestServer(runner), http.MethodDelete)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, runner.calls)
}

func TestHandleSync_FatalError(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{err: errors.New("checkpoint store unavailable")}
	rec := doSync(t, newTestServer(runner), http.MethodPost)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "checkpoint store unavailable", resp.Error)
}

func TestHandleSync_PanicRecovered(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{panics: true}
	rec := doSync(t, newTestServer(runner), http.MethodPost)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "unexpected state")
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(&stubRunner{})

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	t.Parallel()

	s := New("127.0.0.1:0", &stubRunner{}, prometheus.NewRegistry(), zap.NewNop().Sugar())
	errCh := s.Start()

	require.NoError(t, s.Shutdown(context.Background()))
	require.NoError(t, <-errCh)
}
