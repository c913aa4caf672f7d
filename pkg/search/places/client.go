// Package places provides a search.Provider backed by a places/business-
// directory JSON API. Each directory entry carries the business website when
// one is known; entries without a website fall back to a constructed
// directory-entry link so the scraper still has something to scan.
package places

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"context"

	"prospector/pkg/search"
	"prospector/pkg/serrors"
)

// DefaultBaseURL is the address of the directory API.
const DefaultBaseURL = "https://maps.googleapis.com"

// Client talks to the places text-search API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	maxResults int
}

// Options configure the places client.
type Options struct {
	// BaseURL overrides the API address, mainly for tests. Empty means
	// DefaultBaseURL.
	BaseURL string
	// Key is the API key. Required.
	Key string
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
		key:        opts.Key,
		maxResults: opts.MaxResults,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return "places" }

// placeEntry is the subset of a directory search result this client reads.
type placeEntry struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	PlaceID string `json:"place_id"`
}

// Search queries the directory for businesses matching the term and returns
// their websites. Entries with no website yield a constructed directory-entry
// link instead. Order is preserved, duplicates dropped, the list capped to
// MaxResults.
func (c *Client) Search(ctx context.Context, term string) ([]string, error) {
	q := url.Values{}
	q.Set("query", term)
	q.Set("key", c.key)
	reqURL := c.baseURL + "/maps/api/place/textsearch/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not query places API")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUnavailable, "places API answered %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var searchResp struct {
		Results []placeEntry `json:"results"`
	}
	if err := json.Unmarshal(b, &searchResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	seen := make(map[string]struct{})
	var links []string
	for _, entry := range searchResp.Results {
		link := entry.Website
		if link == "" && entry.PlaceID != "" {
			link = entryLink(entry.PlaceID)
		}
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
		if c.maxResults > 0 && len(links) >= c.maxResults {
			break
		}
	}

	return links, nil
}

// entryLink builds a directory-entry URL for a business without a website.
func entryLink(placeID string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + url.QueryEscape(placeID)
}

// Ensure Client conforms to the search.Provider interface at compile time.
var _ search.Provider = (*Client)(nil)
