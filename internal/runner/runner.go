// Package runner implements the run controller: the Idle → Running →
// Completed state machine that iterates the configured query terms, resolves
// them through the search provider and feeds candidate URLs to the lead
// pipeline, one at a time.
package runner

import (
	"context"
	"prospector/internal/config"
	"prospector/internal/pipeline"
	"prospector/pkg/domain"
	"prospector/pkg/metrics"
	"prospector/pkg/search"
	"prospector/pkg/serrors"
	"sync"
)

// Options configure a run.
type Options struct {
	// SearchTerms is the ordered list of query terms a run iterates.
	SearchTerms []string
	// LogCapacity bounds the dashboard log ring.
	LogCapacity int
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SearchTerms: cfg.Scraper.SearchTerms,
		LogCapacity: cfg.Scraper.LogCapacity,
	}
}

// Runner owns the run state and serializes runs: a start request while a run
// is active is rejected rather than raced.
type Runner struct {
	options  Options
	searcher search.Provider
	pipeline *pipeline.Pipeline
	metrics  *metrics.Metrics

	state *State

	// mu guards running. The state machine allows a single active run.
	mu      sync.Mutex
	running bool
}

// New creates a Runner in the Idle state.
func New(searcher search.Provider, pl *pipeline.Pipeline, m *metrics.Metrics, options Options) *Runner {
	return &Runner{
		options:  options,
		searcher: searcher,
		pipeline: pl,
		metrics:  m,
		state:    NewState(options.LogCapacity),
	}
}

// Snapshot exposes the current run state to the dashboard.
func (r *Runner) Snapshot() Snapshot {
	return r.state.Snapshot()
}

// Run executes one full pass over the query terms, synchronously. It returns
// ErrConflict without touching any state when a run is already active.
// A started run always proceeds to completion; the context only bounds the
// individual network calls.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()

		return serrors.With(serrors.ErrConflict, "run already in progress")
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	r.state.resetCounter()
	r.state.setRunStatus(domain.RunStatusRunning, string(domain.RunStatusRunning))
	r.state.Logf(ctx, "scraper started")

	for _, term := range r.options.SearchTerms {
		r.state.SetStatus(ctx, "Searching: "+term)
		r.metrics.SearchesTotal.WithLabelValues(r.searcher.Name()).Inc()

		urls, err := r.searcher.Search(ctx, term)
		if err != nil {
			// a failed search counts as zero results; the run continues
			r.metrics.ScrapeErrorsTotal.WithLabelValues("search").Inc()
			r.state.Logf(ctx, "search failed for %q: %v", term, err)

			continue
		}

		r.pipeline.Process(ctx, r.state, term, urls)
	}

	r.state.setRunStatus(domain.RunStatusCompleted, "Completed all search terms.")
	r.state.Logf(ctx, "run finished")

	return nil
}
