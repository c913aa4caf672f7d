// Package search defines the abstraction over web-search providers that turn
// a free-text query term into a list of candidate URLs worth scraping.
package search

import "context"

// Provider is the abstraction over search backends. Implementations return an
// ordered, deduplicated list of candidate URLs, capped to their configured
// maximum.
type Provider interface {
	// Search resolves the query term into candidate URLs.
	Search(ctx context.Context, term string) ([]string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}
