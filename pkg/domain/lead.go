package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadID uniquely identifies an archived lead.
// It wraps uuid.UUID to provide type safety at the domain layer.
type LeadID uuid.UUID

// Lead is a business contact record with at least one valid email,
// eligible for upload to the marketing-contacts provider.
type Lead struct {
	// ID is the unique identifier of the lead. It is only set for leads
	// read back from the archive; leads built by the pipeline leave it zero.
	ID LeadID `json:"id"`

	// Email is the contact address. It is the deduplication key: a given
	// email is uploaded at most once per process lifetime.
	Email string `json:"email"`
	// Name is the best-effort display name derived from the page.
	Name string `json:"name"`
	// Company is the best-effort business name (page title or fallback).
	Company string `json:"company"`
	// Phone is the first phone number found on the page, if any.
	Phone string `json:"phone"`
	// Website is the URL of the page the lead was extracted from.
	Website string `json:"website"`
	// SearchTerm records which query term surfaced this lead.
	SearchTerm string `json:"searchTerm"`

	// CreatedAt is when the lead was uploaded.
	CreatedAt time.Time `json:"createdAt"`
}
