// Package pipeline implements the lead pipeline: the sequence that turns a
// candidate URL into a validated, deduplicated contact record forwarded to
// the upload provider.
package pipeline

import (
	"context"
	"prospector/internal/config"
	"prospector/pkg/dedup"
	"prospector/pkg/domain"
	"prospector/pkg/logger"
	"prospector/pkg/metrics"
	"prospector/pkg/storage"
	"prospector/pkg/uploader"
	"time"

	"go.uber.org/zap"
)

// Extractor is the page-extraction dependency of the pipeline.
type Extractor interface {
	// Extract fetches the URL and derives a candidate record from it.
	Extract(ctx context.Context, pageURL string) (*domain.CandidatePage, error)
}

// Reporter receives run progress from the pipeline: status changes, dashboard
// log lines and confirmed uploads. The run controller's state implements it.
type Reporter interface {
	// SetStatus replaces the current status label and logs it.
	SetStatus(ctx context.Context, status string)
	// Logf appends a formatted line to the bounded dashboard log.
	Logf(ctx context.Context, format string, args ...any)
	// LeadUploaded increments the uploaded-lead counter for the current run.
	LeadUploaded()
}

// Options configure pacing for the pipeline.
type Options struct {
	// RequestDelay is the fixed pause applied after every candidate URL,
	// whatever the outcome, to avoid overwhelming the scraped sites.
	RequestDelay time.Duration
	// Sleep overrides the pacing function. Nil means a real context-aware
	// sleep; tests inject a recording stub.
	Sleep func(ctx context.Context, d time.Duration)
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RequestDelay: cfg.Scraper.RequestDelay,
	}
}

// Pipeline walks candidate URLs for one query term, extracting contact
// records and forwarding new leads to the uploader.
//
// Deduplication policy: an email is marked consumed only after the uploader
// confirms it. A failed upload leaves the email unmarked, so a later sighting
// retries it.
type Pipeline struct {
	options Options

	extractor Extractor
	uploader  uploader.Client
	dedup     dedup.Store
	// archive is the optional lead archive; nil disables archiving.
	archive storage.LeadStorage
	metrics *metrics.Metrics

	// sleep paces the loop; replaced in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Pipeline. archive may be nil.
func New(extractor Extractor,
	upl uploader.Client,
	store dedup.Store,
	archive storage.LeadStorage,
	m *metrics.Metrics,
	options Options) *Pipeline {
	sleep := options.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	return &Pipeline{
		options:   options,
		extractor: extractor,
		uploader:  upl,
		dedup:     store,
		archive:   archive,
		metrics:   m,
		sleep:     sleep,
	}
}

// sleepCtx pauses for d or until the context is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Process walks the candidate URLs for one query term in order. Per URL it
// extracts a candidate page, selects the first email (lexicographically
// smallest), checks the dedup store and uploads new contacts. Every failure
// is logged and skipped; the walk always continues to the next URL after the
// fixed pacing delay.
func (p *Pipeline) Process(ctx context.Context, reporter Reporter, term string, urls []string) {
	for _, pageURL := range urls {
		p.processURL(ctx, reporter, term, pageURL)
		p.sleep(ctx, p.options.RequestDelay)
	}
}

func (p *Pipeline) processURL(ctx context.Context, reporter Reporter, term, pageURL string) {
	reporter.SetStatus(ctx, "Scanning: "+pageURL)

	start := time.Now()
	page, err := p.extractor.Extract(ctx, pageURL)
	p.metrics.PageFetchSeconds.Observe(time.Since(start).Seconds())
	p.metrics.PagesScannedTotal.Inc()
	if err != nil {
		p.metrics.ScrapeErrorsTotal.WithLabelValues("fetch").Inc()
		reporter.Logf(ctx, "error scraping %s: %v", pageURL, err)

		return
	}
	if len(page.Emails) == 0 {
		return
	}

	// emails are sorted by the extractor; the first is the deterministic pick
	email := page.Emails[0]

	seen, err := p.dedup.Seen(ctx, email)
	if err != nil {
		p.metrics.ScrapeErrorsTotal.WithLabelValues("dedup").Inc()
		reporter.Logf(ctx, "dedup check failed for %s: %v", email, err)

		return
	}
	if seen {
		// already uploaded this process lifetime, skip silently
		return
	}

	lead := domain.Lead{
		Email:      email,
		Name:       page.DisplayName,
		Company:    page.Company,
		Website:    page.URL,
		SearchTerm: term,
	}
	if len(page.Phones) > 0 {
		lead.Phone = page.Phones[0]
	}

	if err := p.uploader.Upload(ctx, lead); err != nil {
		p.metrics.ScrapeErrorsTotal.WithLabelValues("upload").Inc()
		reporter.Logf(ctx, "upload failed for %s: %v", email, err)

		// not marked in the dedup store: a later sighting retries the upload
		return
	}

	if err := p.dedup.Mark(ctx, email); err != nil {
		logger.Warn(ctx, "could not mark email uploaded", zap.String("email", email), zap.Error(err))
	}

	if p.archive != nil {
		if _, err := p.archive.StoreLead(ctx, lead); err != nil {
			p.metrics.ScrapeErrorsTotal.WithLabelValues("archive").Inc()
			reporter.Logf(ctx, "could not archive lead %s: %v", email, err)
		}
	}

	p.metrics.LeadsUploadedTotal.Inc()
	reporter.LeadUploaded()
	reporter.Logf(ctx, "uploaded: %s (%s)", email, page.Company)
}
