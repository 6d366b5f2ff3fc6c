package domain

import "context"

// ItemOutcome is the terminal result an engine reports for a submitted item.
type ItemOutcome int8

const (
	// OutcomeReady means the item's first unit of work is visibly ready.
	OutcomeReady ItemOutcome = iota
	// OutcomeFailed means the engine reported the item as failed.
	OutcomeFailed
	// OutcomeEnded means playback ended before readiness was confirmed.
	OutcomeEnded
)

// String returns a human-readable name for the outcome.
func (o ItemOutcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeFailed:
		return "failed"
	case OutcomeEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Engine is an opaque handle to an expensive, stateful playback engine.
//
// An engine is exclusively owned by at most one party at a time: either the
// pool's idle set or a single slot controller. The pool never inspects engine
// internals beyond the operations below; the slot controller additionally
// drives the prepare/ready/pause cycle.
//
// Stop, Clear and Detach together form the hard reset the pool applies on
// every release, so no state survives to the next borrower.
type Engine interface {
	// Submit queues a work item on the engine, replacing any previous one.
	Submit(item WorkItem) error

	// Start begins processing the submitted item.
	Start()

	// Stop halts any activity without destroying the engine.
	Stop()

	// Clear removes any queued work.
	Clear()

	// Detach disconnects the engine from any external output sink.
	Detach()

	// Pause suspends playback, retaining position and queued work.
	Pause()

	// Resume continues playback after a Pause.
	Resume()

	// AwaitReady blocks until the most recently submitted item reports a
	// terminal outcome, or ctx expires. A ctx error is returned as err with
	// an undefined outcome value.
	AwaitReady(ctx context.Context) (ItemOutcome, error)
}

// EngineFactory constructs and destroys engine instances on demand.
//
// Injecting construction as a strategy (rather than a captured closure) keeps
// the pool testable with a lightweight fake engine. Implementations typically
// close over process-scoped services such as a content cache.
type EngineFactory interface {
	// Create constructs one engine. It may block on ctx (e.g. warming caches).
	Create(ctx context.Context) (Engine, error)

	// Destroy irreversibly tears down an engine previously built by Create.
	Destroy(engine Engine)
}
