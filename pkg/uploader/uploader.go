// Package uploader defines the abstraction over marketing-contacts providers
// that leads are forwarded to.
package uploader

import (
	"context"
	"prospector/pkg/domain"
)

// Client is the abstraction over contact-upload backends. Implementations
// forward one lead per call and report failure without retrying.
type Client interface {
	// Upload forwards the lead to the provider. A nil error means the
	// provider confirmed the contact.
	Upload(ctx context.Context, lead domain.Lead) error
}
