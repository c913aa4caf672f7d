// Package dedup tracks which email addresses have already been forwarded to
// the upload provider, so a given contact is uploaded at most once.
package dedup

import "context"

// Store is the abstraction over the uploaded-email set. Implementations must
// be safe for concurrent use.
type Store interface {
	// Seen reports whether the email has already been marked.
	Seen(ctx context.Context, email string) (bool, error)
	// Mark records the email as uploaded. Marking an already-marked email is
	// a no-op.
	Mark(ctx context.Context, email string) error
}
