package runner

import (
	"context"
	"fmt"
	"prospector/pkg/domain"
	"prospector/pkg/logger"
	"sync"
)

// State holds the run-scoped mutable state the dashboard polls: the status
// label, the bounded log ring and the uploaded-lead counter. It is owned by
// the Runner and exposed read-only through Snapshot. Safe for concurrent use.
type State struct {
	mu sync.RWMutex

	status   domain.RunStatus
	label    string
	lines    []string
	capacity int
	uploaded int
}

// Snapshot is a read-only copy of the run state for the dashboard.
type Snapshot struct {
	// Status is the current status label shown on the dashboard.
	Status string `json:"status"`
	// Logs is the bounded log buffer, oldest first.
	Logs []string `json:"logs"`
	// Count is the number of leads uploaded in the current/last run.
	Count int `json:"count"`
}

// NewState creates an idle State with the given log capacity. Capacity values
// below 1 fall back to a single line.
func NewState(capacity int) *State {
	if capacity < 1 {
		capacity = 1
	}

	return &State{
		status:   domain.RunStatusIdle,
		label:    string(domain.RunStatusIdle),
		capacity: capacity,
	}
}

// append adds a line to the ring, evicting the oldest beyond capacity.
// Callers must hold mu.
func (s *State) append(line string) {
	s.lines = append(s.lines, line)
	if len(s.lines) > s.capacity {
		s.lines = s.lines[len(s.lines)-s.capacity:]
	}
}

// Logf appends a formatted line to the dashboard log and mirrors it to the
// structured logger.
func (s *State) Logf(ctx context.Context, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	logger.Info(ctx, line)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(line)
}

// SetStatus replaces the status label and logs the transition.
func (s *State) SetStatus(ctx context.Context, label string) {
	logger.Info(ctx, label)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.append(label)
}

// LeadUploaded increments the uploaded-lead counter for the current run.
func (s *State) LeadUploaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded++
}

// Status returns the current lifecycle state.
func (s *State) Status() domain.RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// setRunStatus records a lifecycle transition and updates the label.
func (s *State) setRunStatus(status domain.RunStatus, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.label = label
	s.append(label)
}

// resetCounter zeroes the uploaded-lead counter at the start of a run.
func (s *State) resetCounter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = 0
}

// Snapshot returns a consistent copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]string, len(s.lines))
	copy(logs, s.lines)

	return Snapshot{
		Status: s.label,
		Logs:   logs,
		Count:  s.uploaded,
	}
}
