package dedup

import (
	"context"
	"strings"
	"sync"
)

// Memory is the default in-process Store. The set starts empty, grows
// monotonically and is lost on restart.
type Memory struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// key canonicalizes an email for set membership. Addresses differing only in
// case are the same contact.
func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Seen reports whether the email has already been marked.
func (m *Memory) Seen(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.seen[key(email)]

	return ok, nil
}

// Mark records the email as uploaded.
func (m *Memory) Mark(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen[key(email)] = struct{}{}

	return nil
}

// Ensure Memory conforms to the Store interface at compile time.
var _ Store = (*Memory)(nil)
