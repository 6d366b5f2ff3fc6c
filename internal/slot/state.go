package slot

import (
	"sync"
	"time"

	"github.com/nikitachicherindev/playerpool/internal/domain"
)

// state tracks a slot controller's runtime details: lifecycle status, current
// item, timestamps, iteration counters and the most recent iteration error.
// Access to all fields is synchronized via an internal mutex.
type state struct {
	domain.SlotState

	mu sync.Mutex // Protects state fields from concurrent access.

	hooks      domain.Hooks
	monitoring domain.Monitoring
}

// newState initializes a slot state in the Idle status.
func newState(id string, hooks domain.Hooks, monitoring domain.Monitoring) *state {
	return &state{
		SlotState: domain.SlotState{
			SlotID:    id,
			Status:    domain.Idle,
			ItemIndex: -1,
		},
		hooks:      hooks,
		monitoring: monitoring,
	}
}

// SetStatus safely transitions the slot to a new lifecycle status and
// notifies the OnStateChange hook. Setting the current status is a no-op.
//
// The hook runs outside the state lock, so it may call Snapshot freely.
func (s *state) SetStatus(status domain.SlotStatus) {
	s.mu.Lock()
	if s.Status == status {
		s.mu.Unlock()
		return
	}
	s.Status = status
	snap := s.SlotState
	s.mu.Unlock()

	if s.hooks.OnStateChange != nil {
		s.hooks.OnStateChange(snap)
	}
}

// GetStatus safely retrieves the current lifecycle status.
func (s *state) GetStatus() domain.SlotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status
}

// Snapshot returns a copy of the current state.
func (s *state) Snapshot() domain.SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SlotState
}

// SetItem records the index of the work item the slot is currently driving.
func (s *state) SetItem(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ItemIndex = index
}

// MarkAcquired records the start of an activation episode: the engine was
// just obtained and the per-episode counters reset.
func (s *state) MarkAcquired(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StartAt = at
	s.EndAt = time.Time{}
	s.Iterations = 0
	s.Failures = 0
	s.Error = nil
	s.HoldingEngine = true
}

// MarkReleased records the end of an activation episode and flushes the final
// state to monitoring.
func (s *state) MarkReleased(at time.Time) {
	s.mu.Lock()
	s.EndAt = at
	s.HoldingEngine = false
	s.ItemIndex = -1
	snap := s.SlotState
	s.mu.Unlock()

	if s.monitoring != nil {
		s.monitoring.SaveMetrics(snap)
	}
}

// RecordIteration counts a completed play cycle and reports it to monitoring.
func (s *state) RecordIteration() {
	s.mu.Lock()
	s.Iterations++
	snap := s.SlotState
	s.mu.Unlock()

	if s.monitoring != nil {
		s.monitoring.SaveMetrics(snap)
	}
}

// RecordFailure counts a failed iteration, stores its error and reports it to
// monitoring. Failures never terminate the slot; they are retried locally.
func (s *state) RecordFailure(err error) {
	s.mu.Lock()
	s.Failures++
	s.Error = err
	snap := s.SlotState
	s.mu.Unlock()

	if s.monitoring != nil {
		s.monitoring.SaveMetrics(snap)
	}
}
