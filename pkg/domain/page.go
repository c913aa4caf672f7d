package domain

// CandidatePage is the transient record produced by the page extractor for a
// single fetched URL. It is consumed by the lead pipeline and then discarded.
type CandidatePage struct {
	// URL is the address the page was fetched from.
	URL string
	// Emails holds the distinct email addresses matched in the page text,
	// sorted lexicographically. Sorting makes "first email" deterministic.
	Emails []string
	// Phones holds the distinct phone numbers matched in the page text, in
	// order of first appearance.
	Phones []string
	// DisplayName is a best-effort label taken from the first heading or
	// paragraph mentioning the business vocabulary, truncated to 60 runes.
	// Empty when no such block exists.
	DisplayName string
	// Company is the page title, or "Unknown Realtor" when the page has none.
	Company string
}

// RunStatus represents the lifecycle state of a scraping run.
type RunStatus string

const (
	// RunStatusIdle indicates no run has been started yet.
	RunStatusIdle RunStatus = "IDLE"
	// RunStatusRunning indicates a run is currently iterating query terms.
	RunStatusRunning RunStatus = "RUNNING"
	// RunStatusCompleted indicates the last run finished all query terms.
	RunStatusCompleted RunStatus = "COMPLETED"
)
