package monitoring

import (
	"sync"

	"github.com/nikitachicherindev/playerpool/internal/domain"
)

// Monitoring provides an in-memory, thread-safe implementation of the domain.Monitoring interface.
//
// It stores and retrieves lifecycle metrics for slots using a concurrent-safe map (`sync.Map`).
// This basic implementation is suitable for internal debugging, testing, and simple runtime analytics.
// For production scenarios, it is advisable to extend or replace this implementation with more advanced solutions.
type Monitoring struct {
	data *sync.Map // Thread-safe storage keyed by SlotID, storing slot state snapshots.
}

// New creates and initializes a new Monitoring instance.
//
// Returns:
//   - Pointer to an initialized Monitoring instance ready for metric storage and retrieval.
func New() *Monitoring {
	return &Monitoring{
		data: &sync.Map{},
	}
}

// SaveMetrics stores the provided slot state snapshot into the monitoring storage.
//
// Metrics are indexed by the slot's unique identifier (SlotID), so each slot
// keeps its most recent snapshot.
//
// Parameters:
//   - state: domain.SlotState containing the slot's lifecycle details.
func (m *Monitoring) SaveMetrics(state domain.SlotState) {
	m.data.Store(state.SlotID, state)
}

// GetMetrics retrieves all stored slot metrics.
//
// Returns:
//   - A map with SlotID as keys and domain.SlotState values representing the
//     most recent captured state of each slot.
func (m *Monitoring) GetMetrics() map[string]domain.SlotState {
	result := make(map[string]domain.SlotState)
	m.data.Range(func(key, value interface{}) bool {
		result[key.(string)] = value.(domain.SlotState)
		return true
	})
	return result
}
