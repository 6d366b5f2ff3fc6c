package domain

import "time"

// SlotStatus represents the current lifecycle state of a slot controller.
//
// It is used to track and manage the transitions a slot goes through while
// competing for and holding a playback engine. Possible values include:
// - Idle:             The slot holds no engine and shows its placeholder.
// - WaitingForEngine: The slot is active and blocked on engine acquisition.
// - Preparing:        An engine is held and a work item is submitted but not yet confirmed ready.
// - Active:           The current work item is confirmed ready and visible.
// - Retiring:         The content is being hidden before the slot advances.
type SlotStatus string

const (
	// Idle indicates the slot holds no engine.
	// A slot in this state renders its placeholder and consumes no pool capacity.
	// Every activation episode starts from and ends in this state.
	Idle SlotStatus = "idle"

	// WaitingForEngine indicates the slot is active and waiting for the pool
	// to hand it an engine. The wait is unbounded: under steady-state full
	// occupancy the slot stays here until another slot deactivates.
	WaitingForEngine SlotStatus = "waiting_for_engine"

	// Preparing indicates an engine is held and a work item has been
	// submitted and started, but readiness has not yet been confirmed.
	Preparing SlotStatus = "preparing"

	// Active indicates the current work item is confirmed ready and is being
	// held visible for the configured duration.
	Active SlotStatus = "active"

	// Retiring indicates the content is hidden again for the configured
	// transition duration before the slot advances to its next work item.
	Retiring SlotStatus = "retiring"
)

const (
	// DEFAULT_CAPACITY is the default number of engines a pool may create.
	// By the design contract it should equal the collection's active-set size.
	DEFAULT_CAPACITY = 2
	// DEFAULT_VISIBLE_FOR is the default duration a ready work item is held
	// visible before the slot begins retiring it.
	DEFAULT_VISIBLE_FOR = 4 * time.Second
	// DEFAULT_TRANSITION_FOR is the default duration of the retiring phase
	// between hiding content and stopping the engine.
	DEFAULT_TRANSITION_FOR = 300 * time.Millisecond
	// DEFAULT_BETWEEN_ITEMS is the default pause after a successful iteration
	// before the slot submits its next work item.
	DEFAULT_BETWEEN_ITEMS = 1 * time.Second
	// DEFAULT_FAILURE_DELAY is the default pause after a failed iteration
	// before the slot retries. Kept short so transient failures self-heal quickly.
	DEFAULT_FAILURE_DELAY = 500 * time.Millisecond
	// DEFAULT_READY_TIMEOUT is the default bound on waiting for an engine to
	// confirm a submitted work item as ready.
	DEFAULT_READY_TIMEOUT = 5 * time.Second
	// DEFAULT_GATE_CHUNK is the default granularity of foreground-gated
	// delays. Each delay sleeps in chunks of this size and re-checks the
	// foreground flag between chunks, so time spent backgrounded does not
	// count toward the delay's total.
	DEFAULT_GATE_CHUNK = 50 * time.Millisecond
	// DEFAULT_CREATE_RATE is the default number of engine constructions per
	// second allowed during prewarm, keeping warm-up off the demand path.
	DEFAULT_CREATE_RATE = 4
)
