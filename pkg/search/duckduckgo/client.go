// Package duckduckgo provides a search.Provider that scrapes the DuckDuckGo
// HTML results page for outbound links.
package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"prospector/pkg/search"
	"prospector/pkg/serrors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the address of the JavaScript-free results frontend.
const DefaultBaseURL = "https://html.duckduckgo.com"

// Client scrapes the DuckDuckGo HTML frontend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxResults int
}

// Options configure the DuckDuckGo client.
type Options struct {
	// BaseURL overrides the results frontend address, mainly for tests.
	// Empty means DefaultBaseURL.
	BaseURL string
	// UserAgent is sent with every request; result pages are served
	// differently to clients without a browser-like agent.
	UserAgent string
	// MaxResults caps the number of candidate URLs returned per query.
	MaxResults int
}

// New constructs a Client using the provided http.Client.
func New(httpClient *http.Client, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  opts.UserAgent,
		maxResults: opts.MaxResults,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return "duckduckgo" }

// Search fetches the HTML results page for the term and collects outbound
// links. Links pointing back into duckduckgo (redirect wrappers, ads) are
// skipped. The result preserves page order, drops duplicates and is capped to
// MaxResults.
func (c *Client) Search(ctx context.Context, term string) ([]string, error) {
	reqURL := c.baseURL + "/html/?q=" + url.QueryEscape(term)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not query duckduckgo")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUnavailable, "duckduckgo answered %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not parse results page: %w", err)
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !strings.Contains(href, "http") || strings.Contains(href, "duckduckgo") {
			return true
		}
		if _, ok := seen[href]; ok {
			return true
		}
		seen[href] = struct{}{}
		links = append(links, href)

		return c.maxResults <= 0 || len(links) < c.maxResults
	})

	return links, nil
}

// Ensure Client conforms to the search.Provider interface at compile time.
var _ search.Provider = (*Client)(nil)
