package domain

// Hooks contains callback functions triggered at slot lifecycle transitions.
//
// All hooks are optional and observational: they receive a state snapshot and
// cannot alter the slot's behavior. They run synchronously on the slot's
// goroutine, so implementations should return quickly.
type Hooks struct {
	// OnAcquire runs after the slot obtains an engine from the pool.
	OnAcquire func(state SlotState)

	// OnReady runs when a submitted item is confirmed ready and the slot
	// transitions to Active.
	OnReady func(state SlotState)

	// OnIterationError runs after a failed iteration (readiness timeout,
	// engine-reported failure, or premature end) before the retry delay.
	OnIterationError func(state SlotState, err error)

	// OnRelease runs after the slot has returned its engine to the pool.
	OnRelease func(state SlotState)

	// OnStateChange runs on every lifecycle status transition. It is the
	// auditable event stream for the slot's state machine.
	OnStateChange func(state SlotState)
}
