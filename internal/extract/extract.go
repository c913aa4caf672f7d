// Package extract implements the page extractor: it fetches a candidate URL,
// strips the document to readable text and derives a contact record from it.
//
// Policy: markup is always stripped before pattern matching, and script, style
// and noscript subtrees are removed first, so attribute values and inline
// JavaScript can never produce spurious matches.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"prospector/internal/config"
	"prospector/pkg/domain"
	"prospector/pkg/serrors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// displayNameVocabulary is the fixed set of words a heading or paragraph must
// mention (case-insensitively) to be used as the lead's display name.
var displayNameVocabulary = []string{"realtor", "agent", "team", "broker", "staff", "about"} //nolint: gochecknoglobals

// maxDisplayNameLen caps the derived display name, in runes.
const maxDisplayNameLen = 60

// companyFallback is used when a page carries no title element.
const companyFallback = "Unknown Realtor"

// Options configure the page extractor.
type Options struct {
	// FetchTimeout bounds each page fetch.
	FetchTimeout time.Duration
	// UserAgent is the browser-like identifying header sent with each fetch.
	UserAgent string
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		FetchTimeout: cfg.Scraper.FetchTimeout,
		UserAgent:    cfg.Scraper.UserAgent,
	}
}

// Extractor fetches candidate pages and turns them into CandidatePage
// records. It is safe for concurrent use.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
}

// New creates an Extractor with its own HTTP client bounded by the configured
// fetch timeout.
func New(opts Options) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: opts.FetchTimeout},
		userAgent:  opts.UserAgent,
	}
}

// Extract fetches the URL and derives a candidate record from its readable
// text. Any transport, timeout or parse error returns a typed error; callers
// are expected to log it, skip the URL and keep going.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*domain.CandidatePage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not create request")
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not fetch page")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUnavailable, "page answered %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not parse page: %w", err)
	}

	// derive name and company from the intact document before stripping
	name := displayName(doc)
	company := strings.TrimSpace(doc.Find("title").First().Text())
	if company == "" {
		company = companyFallback
	}

	text := readableText(doc)

	return &domain.CandidatePage{
		URL:         pageURL,
		Emails:      Emails(text),
		Phones:      Phones(text),
		DisplayName: name,
		Company:     company,
	}, nil
}

// readableText strips the document to whitespace-normalized text, with
// script, style and noscript subtrees removed first.
func readableText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// displayName scans heading and paragraph-like blocks for the first one
// mentioning the business vocabulary and returns its text truncated to 60
// runes. Empty when no block matches.
func displayName(doc *goquery.Document) string {
	var name string
	doc.Find("h1, h2, strong, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		for _, word := range displayNameVocabulary {
			if strings.Contains(lower, word) {
				name = truncate(text, maxDisplayNameLen)

				return false
			}
		}

		return true
	})

	return name
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
