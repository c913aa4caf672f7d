package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"prospector/internal/api/handler"
	"prospector/internal/pipeline"
	"prospector/internal/runner"
	"prospector/pkg/dedup"
	"prospector/pkg/domain"
	"prospector/pkg/metrics"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// stubSearcher returns a fixed URL list; started/release turn it into a
// rendezvous point for the conflict test.
type stubSearcher struct {
	urls    []string
	started chan struct{}
	release chan struct{}
}

func (s *stubSearcher) Name() string { return "stub" }

func (s *stubSearcher) Search(context.Context, string) ([]string, error) {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}

	return s.urls, nil
}

type stubExtractor struct {
	page *domain.CandidatePage
}

func (s *stubExtractor) Extract(context.Context, string) (*domain.CandidatePage, error) {
	return s.page, nil
}

type stubUploader struct{ count int }

func (s *stubUploader) Upload(context.Context, domain.Lead) error {
	s.count++

	return nil
}

func newHandler(searcher *stubSearcher, ex *stubExtractor, up *stubUploader) *handler.Handler {
	m := metrics.New(prometheus.NewRegistry())
	pl := pipeline.New(ex, up, dedup.NewMemory(), nil, m, pipeline.Options{
		Sleep: func(context.Context, time.Duration) {},
	})
	run := runner.New(searcher, pl, m, runner.Options{
		SearchTerms: []string{"realtors in Richmond VA"},
		LogCapacity: 50,
	})

	return handler.New(run)
}

func TestHome_RendersDashboard(t *testing.T) {
	h := newHandler(&stubSearcher{}, &stubExtractor{}, &stubUploader{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Lead Prospector")
	require.Contains(t, rec.Body.String(), string(domain.RunStatusIdle))
}

func TestRun_CompletesAndReportsRunning(t *testing.T) {
	searcher := &stubSearcher{urls: []string{"http://a.example"}}
	ex := &stubExtractor{page: &domain.CandidatePage{
		URL:     "http://a.example",
		Emails:  []string{"jane@example.com"},
		Company: "Acme Realty",
	}}
	up := &stubUploader{}
	h := newHandler(searcher, ex, up)

	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	rec := httptest.NewRecorder()
	h.Run(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "running", body["status"])
	require.Equal(t, 1, up.count)
}

func TestRun_ConflictWhileActive(t *testing.T) {
	searcher := &stubSearcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	h := newHandler(searcher, &stubExtractor{}, &stubUploader{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		rec := httptest.NewRecorder()
		h.Run(rec, httptest.NewRequest(http.MethodGet, "/run", nil))
	}()

	<-searcher.started

	rec := httptest.NewRecorder()
	h.Run(rec, httptest.NewRequest(http.MethodGet, "/run", nil))

	res := rec.Result()
	require.Equal(t, http.StatusConflict, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "run already in progress", body["error"])

	close(searcher.release)
	<-done
}

func TestLogs_ReturnsSnapshot(t *testing.T) {
	searcher := &stubSearcher{urls: []string{"http://a.example"}}
	ex := &stubExtractor{page: &domain.CandidatePage{
		URL:     "http://a.example",
		Emails:  []string{"jane@example.com"},
		Company: "Acme Realty",
	}}
	h := newHandler(searcher, ex, &stubUploader{})

	// before any run, logs must be an empty array, not null
	rec := httptest.NewRecorder()
	h.Logs(rec, httptest.NewRequest(http.MethodGet, "/logs", nil))
	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
	require.Contains(t, rec.Body.String(), `"logs":[]`)

	h.Run(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/run", nil))

	rec = httptest.NewRecorder()
	h.Logs(rec, httptest.NewRequest(http.MethodGet, "/logs", nil))

	var snap struct {
		Status string   `json:"status"`
		Logs   []string `json:"logs"`
		Count  int      `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Result().Body).Decode(&snap))
	require.Equal(t, "Completed all search terms.", snap.Status)
	require.Equal(t, 1, snap.Count)
	require.Contains(t, snap.Logs, "scraper started")
	require.Contains(t, snap.Logs, "uploaded: jane@example.com (Acme Realty)")
}
