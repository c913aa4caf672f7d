// Package storage defines the lead-archive interface the application relies
// on. It abstracts persistence so different backends (e.g. PostgreSQL) can
// provide concrete implementations. The archive is optional: when no database
// is configured, the service runs with process-lifetime state only.
package storage

import (
	"context"
	"prospector/pkg/domain"
)

// LeadStorage defines the persistence operations for uploaded leads.
type LeadStorage interface {
	// StoreLead inserts the lead and returns the stored row including
	// generated fields. Inserting a lead whose email is already archived is
	// a no-op returning nil.
	StoreLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error)
	// LeadEmails returns every archived email address. It is used to warm
	// the dedup store at startup.
	LeadEmails(ctx context.Context) ([]string, error)
	// LeadCount returns the number of archived leads.
	LeadCount(ctx context.Context) (int64, error)
}

// Storage is a lead archive with lifecycle management.
type Storage interface {
	LeadStorage

	// Close releases any resources held by the implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
