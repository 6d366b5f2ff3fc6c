package domain

import (
	"time"
)

// WorkItem is one opaque unit of playable content a slot cycles through.
type WorkItem struct {
	// ID identifies the item within its slot, used for logging and metrics.
	ID string

	// URI locates the content. The library never interprets it; it is passed
	// through to the engine as-is.
	URI string
}

// SlotState is a lightweight snapshot of a slot controller's runtime state.
// It provides a thread-safe way to expose slot lifecycle details without
// direct access to the internal structure.
type SlotState struct {
	// SlotID is the unique identifier of the slot whose state is represented.
	SlotID string

	// Status is the current lifecycle state of the slot.
	Status SlotStatus

	// ItemIndex is the index (into the episode's work item list) of the item
	// the slot is currently preparing or showing. It is -1 while Idle.
	ItemIndex int

	// StartAt is the timestamp at which the current activation episode
	// acquired its engine. Zero if no engine is held.
	StartAt time.Time

	// EndAt is the timestamp at which the previous activation episode
	// released its engine. Zero while an episode is running.
	EndAt time.Time

	// Error holds the most recent iteration failure, if any. Iteration
	// failures are always recovered locally and never terminate the slot.
	Error error

	// Iterations counts completed play cycles in the current episode.
	Iterations int64

	// Failures counts failed iterations (timeouts, engine-reported failures)
	// in the current episode.
	Failures int64

	// HoldingEngine reports whether the slot currently owns an engine.
	HoldingEngine bool
}

// SlotConfig defines a slot controller's identity and timing parameters.
type SlotConfig struct {
	// ID is a unique identifier for the slot. Stable across reordering; a
	// controller is created once per slot identity, not per render pass.
	ID string

	// Name is a human-readable name for the slot.
	// If not provided, it defaults to the slot's ID.
	Name string

	// VisibleFor is how long a ready item is held visible per iteration.
	VisibleFor time.Duration

	// TransitionFor is how long the retiring phase lasts per iteration.
	TransitionFor time.Duration

	// BetweenItems is the pause after a successful iteration.
	BetweenItems time.Duration

	// FailureDelay is the pause after a failed iteration before retrying.
	FailureDelay time.Duration

	// ReadyTimeout bounds the wait for an engine's readiness confirmation.
	ReadyTimeout time.Duration

	// GateChunk is the granularity of foreground-gated delays.
	GateChunk time.Duration

	// Hooks contains callbacks triggered at slot lifecycle transitions.
	Hooks Hooks
}

// PoolConfig encapsulates the settings required to initialize an engine pool.
type PoolConfig struct {
	// Capacity is the maximum number of engines the pool will ever create.
	// Default is DEFAULT_CAPACITY if set to 0.
	Capacity int

	// Factory constructs and destroys engine instances on the pool's behalf.
	Factory EngineFactory

	// CreateRate limits engine constructions per second during prewarm.
	// Default is DEFAULT_CREATE_RATE if set to 0. Demand-path creation in
	// TryAcquire is never rate limited.
	CreateRate float64

	// Logger receives pool diagnostics. Optional; a no-op logger is
	// installed when nil.
	Logger Logger
}

// VisibleItem describes one currently visible slot along the scroll axis,
// as reported by the host's list virtualization.
type VisibleItem struct {
	// Index is the slot's position in the collection's slot order.
	Index int

	// Offset is the item's leading edge along the scroll axis.
	Offset float64

	// Extent is the item's size along the scroll axis.
	Extent float64
}

// Center returns the item's midpoint along the scroll axis.
func (v VisibleItem) Center() float64 {
	return v.Offset + v.Extent/2
}

// Viewport is the visible window along the scroll axis.
type Viewport struct {
	Start float64
	End   float64
}

// Center returns the viewport's midpoint along the scroll axis.
func (vp Viewport) Center() float64 {
	return (vp.Start + vp.End) / 2
}
