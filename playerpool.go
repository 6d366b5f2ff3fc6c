// Package playerpool lets a scrollable collection of slots share a small,
// fixed set of expensive playback engines instead of paying creation and
// teardown cost per slot.
//
// Only a bounded subset of slots may hold an engine at any time; the rest
// wait or show a placeholder. Three pieces cooperate:
//
//   - A bounded engine pool with blocking acquisition, safe release (every
//     engine is hard-reset before reuse, so no state leaks between
//     successive holders) and safe disposal under concurrent borrowers.
//   - A per-slot controller that acquires an engine and drives a repeating
//     prepare → activate → show → retire cycle, gated by a
//     foreground/background signal, returning the engine on every exit path
//     including cancellation.
//   - A bounded top-K selector that decides, on every viewport change, which
//     slot indices are permitted to hold an engine (nearest to the viewport
//     center wins).
//
// Example usage:
//
//	coll, _ := playerpool.NewCollection(context.Background(), playerpool.CollectionConfig{
//		Pool: playerpool.PoolConfig{
//			Capacity: 2,
//			Factory:  myEngineFactory,
//		},
//	})
//	defer coll.Close()
//
//	coll.AddSlot(playerpool.SlotConfig{ID: "slot-0"}, items0)
//	coll.AddSlot(playerpool.SlotConfig{ID: "slot-1"}, items1)
//
//	// On every geometry change reported by the list virtualization:
//	coll.UpdateViewport(visible, viewport)
package playerpool

import (
	"github.com/nikitachicherindev/playerpool/internal/domain"
	"github.com/nikitachicherindev/playerpool/internal/pool"
	"github.com/nikitachicherindev/playerpool/internal/selector"
	"github.com/nikitachicherindev/playerpool/internal/slot"
)

// PoolConfig encapsulates the settings required to initialize an engine pool.
//
// Parameters:
//   - Capacity: Maximum number of engines the pool will ever create.
//     Default is 2 if set to 0.
//   - Factory: Strategy that constructs and destroys engine instances.
//   - CreateRate: Engine constructions per second during prewarm.
//     Default is 4 if set to 0.
//   - Logger: Receiver of pool diagnostics.
type PoolConfig = domain.PoolConfig

// Pool owns a bounded set of playback engines.
//
// Provides non-blocking and blocking acquisition, defensive release with a
// guaranteed reset before reuse, incremental prewarm, and one-shot disposal.
type Pool = pool.Pool

// SlotConfig defines a slot controller's identity and timing parameters.
type SlotConfig = domain.SlotConfig

// SlotState is a snapshot of a slot controller's runtime state.
type SlotState = domain.SlotState

// SlotStatus represents the current lifecycle state of a slot controller.
//
// Possible statuses include:
//   - Idle
//   - WaitingForEngine
//   - Preparing
//   - Active
//   - Retiring
type SlotStatus = domain.SlotStatus

const (
	Idle             = domain.Idle
	WaitingForEngine = domain.WaitingForEngine
	Preparing        = domain.Preparing
	Active           = domain.Active
	Retiring         = domain.Retiring
)

// Controller drives one slot's borrow → play-cycle → return loop.
type Controller = slot.Controller

// WorkItem is one opaque unit of playable content a slot cycles through.
type WorkItem = domain.WorkItem

// VisibleItem describes one currently visible slot along the scroll axis.
type VisibleItem = domain.VisibleItem

// Viewport is the visible window along the scroll axis.
type Viewport = domain.Viewport

// Hooks contains callback functions triggered at slot lifecycle transitions.
//
// Available hooks:
//   - OnAcquire: Executed after the slot obtains an engine.
//   - OnReady: Executed when an item is confirmed ready.
//   - OnIterationError: Executed after a failed iteration, before the retry.
//   - OnRelease: Executed after the engine returns to the pool.
//   - OnStateChange: Executed on every lifecycle status transition.
type Hooks = domain.Hooks

// Engine is an opaque handle to an expensive, stateful playback engine.
type Engine = domain.Engine

// EngineFactory constructs and destroys engine instances on demand.
type EngineFactory = domain.EngineFactory

// ItemOutcome is the terminal result an engine reports for a submitted item.
type ItemOutcome = domain.ItemOutcome

const (
	OutcomeReady  = domain.OutcomeReady
	OutcomeFailed = domain.OutcomeFailed
	OutcomeEnded  = domain.OutcomeEnded
)

// Logger receives diagnostics from the pool, slot controllers and collection.
type Logger = domain.Logger

// LogLevel determines which messages a Logger outputs based on severity.
type LogLevel = domain.LogLevel

const (
	LogLevelDebug = domain.LogLevelDebug
	LogLevelInfo  = domain.LogLevelInfo
	LogLevelWarn  = domain.LogLevelWarn
	LogLevelError = domain.LogLevelError
)

// Monitoring defines an interface for collecting slot lifecycle metrics.
type Monitoring = domain.Monitoring

// NewPool initializes a standalone engine pool.
//
// Most applications should use NewCollection instead, which owns a pool and
// wires it to slot controllers; NewPool is for embedders that drive slot
// controllers themselves.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if cfg.Logger == nil {
		cfg.Logger = NewDefaultLogger(LogLevelInfo)
	}
	return pool.New(cfg)
}

// NewSlot initializes a standalone slot controller bound to the given pool.
func NewSlot(cfg SlotConfig, p *Pool, mon Monitoring, logger Logger) (*Controller, error) {
	if logger == nil {
		logger = NewDefaultLogger(LogLevelInfo)
	}
	return slot.New(cfg, p, mon, logger)
}

// SelectActive returns the indices of the at most maxActive visible items
// whose centers are nearest to the viewport's center. It is the default
// selection policy of a Collection. Ties break toward the earlier item in
// visible order.
func SelectActive(visible []VisibleItem, vp Viewport, maxActive int) []int {
	return selector.SelectActive(visible, vp, maxActive)
}
