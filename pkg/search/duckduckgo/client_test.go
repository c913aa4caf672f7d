package duckduckgo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"prospector/pkg/search/duckduckgo"
	"prospector/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

const serpHTML = `<!DOCTYPE html>
<html><body>
<div class="results">
  <a href="https://duckduckgo.com/settings">settings</a>
  <a href="/html/?q=next">next page</a>
  <a href="https://www.acme-realty.example/">Acme Realty</a>
  <a href="http://www.richmond-homes.example/agents">Richmond Homes</a>
  <a href="https://www.acme-realty.example/">Acme Realty again</a>
  <a href="https://www.third.example/">Third</a>
</div>
</body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc, maxResults int) (*duckduckgo.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return duckduckgo.New(srv.Client(), duckduckgo.Options{
		BaseURL:    srv.URL,
		UserAgent:  "Mozilla/5.0",
		MaxResults: maxResults,
	}), srv
}

func TestSearch_CollectsOutboundLinks(t *testing.T) {
	var gotQuery, gotUA string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(serpHTML))
	}, 0)

	links, err := client.Search(context.Background(), "realtors in Richmond VA")
	require.NoError(t, err)

	require.Equal(t, "realtors in Richmond VA", gotQuery)
	require.Equal(t, "Mozilla/5.0", gotUA)
	require.Equal(t, []string{
		"https://www.acme-realty.example/",
		"http://www.richmond-homes.example/agents",
		"https://www.third.example/",
	}, links, "search-engine links and relative hrefs are filtered, duplicates dropped")
}

func TestSearch_CapsResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(serpHTML))
	}, 2)

	links, err := client.Search(context.Background(), "realtors")
	require.NoError(t, err)
	require.Len(t, links, 2)
}

func TestSearch_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 0)

	_, err := client.Search(context.Background(), "realtors")
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestSearch_EmptyResultsPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>No results.</p></body></html>`))
	}, 0)

	links, err := client.Search(context.Background(), "realtors")
	require.NoError(t, err)
	require.Empty(t, links)
}
