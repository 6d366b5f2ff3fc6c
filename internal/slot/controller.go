package slot

import (
	"context"
	"sync"

	"github.com/nikitachicherindev/playerpool/internal/domain"
	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

// EnginePool is the slot controller's view of the engine pool.
//
// It is an interface so the controller is testable with a fake pool; the
// production implementation is internal/pool.Pool.
type EnginePool interface {
	// AcquireWait blocks until an engine is available, ctx is cancelled, or
	// the pool is disposed.
	AcquireWait(ctx context.Context) (domain.Engine, error)

	// Release returns an engine to the pool.
	Release(engine domain.Engine)
}

// Controller drives one slot's borrow → play-cycle → return loop.
//
// A controller is created once per slot identity and reused across activation
// episodes: each activation is a fresh Run call starting from Idle, and each
// deactivation cancels the running episode. The controller is the exclusive
// owner of its held engine between acquisition and release.
type Controller struct {
	domain.SlotConfig

	pool       EnginePool
	monitoring domain.Monitoring
	logger     domain.Logger

	// state holds the runtime lifecycle details, guarded by its own mutex.
	state *state

	// runMu serializes activation episodes. A new Run cannot begin until the
	// previous episode's deferred cleanup has finished, so a restart never
	// observes the stale episode's engine or state.
	runMu sync.Mutex

	// fgMu protects foreground and resumeOnFg.
	fgMu sync.Mutex

	// foreground reports whether the host is foregrounded. Starts true.
	foreground bool

	// resumeOnFg records whether playback should resume when the host
	// returns to the foreground.
	resumeOnFg bool

	// fgCh wakes the run loop when the host returns to the foreground.
	fgCh chan struct{}

	// engMu protects engine.
	engMu sync.Mutex

	// engine is the currently held engine, nil outside an episode.
	engine domain.Engine
}

// New initializes a slot controller with the provided configuration.
//
// It performs the following validations and defaulting:
// - Ensures the slot ID is not empty.
// - Ensures the pool is not nil.
// - Sets the slot name to the ID if empty.
// - Defaults every zero duration to its DEFAULT_* constant.
//
// Returns:
//   - A pointer to the initialized Controller if the configuration is valid.
//   - An error if the configuration is invalid.
func New(cfg domain.SlotConfig, pool EnginePool, monitoring domain.Monitoring, logger domain.Logger) (*Controller, error) {
	if cfg.ID == "" {
		return nil, errs.New(errs.ErrEmptyID, "slot name - "+cfg.Name)
	}
	if pool == nil {
		return nil, errs.New(errs.ErrNilPool, cfg.ID)
	}
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	if cfg.VisibleFor == 0 {
		cfg.VisibleFor = domain.DEFAULT_VISIBLE_FOR
	}
	if cfg.TransitionFor == 0 {
		cfg.TransitionFor = domain.DEFAULT_TRANSITION_FOR
	}
	if cfg.BetweenItems == 0 {
		cfg.BetweenItems = domain.DEFAULT_BETWEEN_ITEMS
	}
	if cfg.FailureDelay == 0 {
		cfg.FailureDelay = domain.DEFAULT_FAILURE_DELAY
	}
	if cfg.ReadyTimeout == 0 {
		cfg.ReadyTimeout = domain.DEFAULT_READY_TIMEOUT
	}
	if cfg.GateChunk == 0 {
		cfg.GateChunk = domain.DEFAULT_GATE_CHUNK
	}
	if logger == nil {
		logger = nopLogger{}
	}

	return &Controller{
		SlotConfig: cfg,
		pool:       pool,
		monitoring: monitoring,
		logger:     logger,
		state:      newState(cfg.ID, cfg.Hooks, monitoring),
		foreground: true,
		fgCh:       make(chan struct{}, 1),
	}, nil
}

// State returns a snapshot of the slot's runtime state.
func (c *Controller) State() domain.SlotState {
	return c.state.Snapshot()
}

// Status returns the slot's current lifecycle status.
func (c *Controller) Status() domain.SlotStatus {
	return c.state.GetStatus()
}

func (c *Controller) setEngine(engine domain.Engine) {
	c.engMu.Lock()
	c.engine = engine
	c.engMu.Unlock()
}

func (c *Controller) heldEngine() domain.Engine {
	c.engMu.Lock()
	defer c.engMu.Unlock()
	return c.engine
}

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}
