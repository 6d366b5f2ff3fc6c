package pool

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/nikitachicherindev/playerpool/internal/domain"
	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

// Pool owns a bounded set of playback engines and hands them out to slot
// controllers. Engines are created lazily on unmet demand (or eagerly via
// Prewarm), reused across borrowers, and destroyed only on disposal.
//
// Ownership of an engine transfers only at the acquire and release
// boundaries: an engine is in the pool's idle set, or held by exactly one
// borrower, never both. A released engine is hard-reset before it can be
// handed out again, so no borrower ever observes another borrower's state.
//
// The wake signal between Release and AcquireWait is a hint, not a grant:
// multiple waiters may race for one freed engine, and every waiter
// re-validates by re-attempting TryAcquire after each wake.
type Pool struct {
	domain.PoolConfig

	// mu protects idle, inUse, created and disposed.
	mu sync.Mutex

	// idle holds engines currently owned by the pool, most recently released last.
	idle []domain.Engine

	// inUse tracks engines currently held by borrowers.
	inUse map[domain.Engine]struct{}

	// created counts live engines; never exceeds Capacity.
	created int

	// disposed is set once by DisposeAll and never cleared.
	disposed bool

	// wakeCh carries the hint that an engine may have become available.
	wakeCh chan struct{}

	// doneCh is closed on disposal, unblocking all current and future waiters.
	doneCh chan struct{}

	// limiter paces engine construction during Prewarm.
	limiter *rate.Limiter
}

// New initializes an engine pool with the provided configuration.
//
// It performs the following validations and defaulting:
// - Ensures the engine factory is not nil.
// - Rejects a negative capacity; a zero capacity defaults to DEFAULT_CAPACITY.
// - Defaults the prewarm creation rate to DEFAULT_CREATE_RATE.
// - Installs a no-op logger if none is provided.
//
// Returns:
//   - A pointer to the initialized Pool if the configuration is valid.
//   - An error if the configuration is invalid.
func New(cfg domain.PoolConfig) (*Pool, error) {
	if cfg.Factory == nil {
		return nil, errs.New(errs.ErrNilFactory, "pool requires an engine factory")
	}
	if cfg.Capacity < 0 {
		return nil, errs.New(errs.ErrInvalidCapacity, "capacity is negative")
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = domain.DEFAULT_CAPACITY
	}
	if cfg.CreateRate <= 0 {
		cfg.CreateRate = domain.DEFAULT_CREATE_RATE
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return &Pool{
		PoolConfig: cfg,
		inUse:      make(map[domain.Engine]struct{}),
		wakeCh:     make(chan struct{}, 1),
		doneCh:     make(chan struct{}),
		limiter:    rate.NewLimiter(rate.Limit(cfg.CreateRate), 1),
	}, nil
}

// TryAcquire attempts to obtain an engine without blocking.
//
// Resolution order:
//  1. An idle engine, if present, moves to the in-use set and is returned.
//  2. Otherwise, if fewer than Capacity engines exist, a new one is
//     constructed via the factory and returned already in-use.
//  3. Otherwise the pool is exhausted and (nil, nil) is returned.
//
// Exhaustion is not an error; callers resolve it by waiting. Calling
// TryAcquire after disposal is a usage error: it is logged and surfaced as
// ErrPoolDisposed rather than panicking.
func (p *Pool) TryAcquire(ctx context.Context) (domain.Engine, error) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		p.Logger.Warn("playerpool: TryAcquire called after disposal")
		return nil, errs.New(errs.ErrPoolDisposed, "try acquire")
	}

	if n := len(p.idle); n > 0 {
		engine := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.inUse[engine] = struct{}{}
		forward := len(p.idle) > 0
		p.mu.Unlock()
		if forward {
			// More engines remain idle; pass the wake hint on so a second
			// waiter is not stranded behind a consumed signal.
			p.signalWake()
		}
		return engine, nil
	}

	if p.created >= p.Capacity {
		p.mu.Unlock()
		return nil, nil
	}

	// Reserve a construction slot before unlocking so concurrent callers
	// cannot overshoot Capacity while the factory runs.
	p.created++
	p.mu.Unlock()

	engine, err := p.Factory.Create(ctx)
	if err != nil {
		p.mu.Lock()
		p.created--
		p.mu.Unlock()
		p.signalWake()
		return nil, errs.New(errs.ErrEngineCreate, err.Error())
	}

	p.mu.Lock()
	if p.disposed {
		p.created--
		p.mu.Unlock()
		p.Factory.Destroy(engine)
		return nil, errs.New(errs.ErrPoolDisposed, "engine created during disposal")
	}
	p.inUse[engine] = struct{}{}
	p.mu.Unlock()
	return engine, nil
}

// AcquireWait obtains an engine, blocking until one is available.
//
// It attempts TryAcquire immediately and, on exhaustion, parks on the pool's
// wake signal, re-attempting after each wake. A wake is a hint, not a
// guarantee: another waiter may have taken the freed engine first.
//
// The wait aborts with ctx.Err() if ctx is cancelled, or with
// ErrPoolDisposed if the pool is disposed while waiting. In both cases no
// engine is returned. A factory failure is surfaced immediately rather than
// retried inside the wait loop.
func (p *Pool) AcquireWait(ctx context.Context) (domain.Engine, error) {
	for {
		engine, err := p.TryAcquire(ctx)
		if err != nil || engine != nil {
			return engine, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.doneCh:
			return nil, errs.New(errs.ErrPoolDisposed, "acquire aborted by disposal")
		case <-p.wakeCh:
			// Re-validate by looping; the hint may be stale.
		}
	}
}

// Release returns an engine to the pool, relinquishing ownership.
//
// Releasing an engine the pool does not consider in-use (including a double
// release) is a no-op: it is logged and ignored so a bookkeeping slip never
// crashes a production collection.
//
// Otherwise the engine is hard-reset (stopped, cleared, detached) before it
// becomes observable to the next borrower. If the pool has been disposed the
// engine is destroyed instead of re-pooled; otherwise it re-enters the idle
// set and one waiter is signalled.
func (p *Pool) Release(engine domain.Engine) {
	if engine == nil {
		return
	}

	p.mu.Lock()
	if _, held := p.inUse[engine]; !held {
		p.mu.Unlock()
		p.Logger.Warn("playerpool: release of engine not held by the pool, ignoring")
		return
	}
	delete(p.inUse, engine)
	p.mu.Unlock()

	// Reset while the engine is owned by neither the idle set nor a
	// borrower, so the reset happens-before any subsequent hand-out.
	engine.Stop()
	engine.Clear()
	engine.Detach()

	p.mu.Lock()
	if p.disposed {
		p.created--
		p.mu.Unlock()
		p.Factory.Destroy(engine)
		return
	}
	p.idle = append(p.idle, engine)
	p.mu.Unlock()
	p.signalWake()
}

// signalWake delivers the hint that an engine may be available. Non-blocking;
// a pending undelivered hint is enough, extra ones are dropped.
func (p *Pool) signalWake() {
	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
}

// Created returns the number of live engines the pool is responsible for.
func (p *Pool) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// IdleCount returns the number of engines currently owned by the pool.
func (p *Pool) IdleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// InUseCount returns the number of engines currently held by borrowers.
func (p *Pool) InUseCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inUse)
}

// Disposed reports whether DisposeAll has been called.
func (p *Pool) Disposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}
