package pool

import (
	"context"

	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

// Prewarm eagerly creates engines until the pool holds min(target, Capacity)
// of them, placing each in the idle set.
//
// It is idempotent and incremental: engines that already exist (idle or
// in-use) count toward the target, so repeated calls create nothing new.
// Construction is paced by the pool's rate limiter to keep warm-up off the
// critical demand path; demand-driven creation in TryAcquire is unaffected
// and may satisfy part of the target while Prewarm is still pacing.
//
// Returns:
//   - nil once the target is met.
//   - ctx.Err() if ctx is cancelled mid-warm-up.
//   - ErrPoolDisposed if the pool is disposed mid-warm-up.
//   - ErrEngineCreate if the factory fails; engines created so far are kept.
func (p *Pool) Prewarm(ctx context.Context, target int) error {
	if target > p.Capacity {
		target = p.Capacity
	}

	for {
		p.mu.Lock()
		if p.disposed {
			p.mu.Unlock()
			return errs.New(errs.ErrPoolDisposed, "prewarm aborted by disposal")
		}
		if p.created >= target {
			p.mu.Unlock()
			return nil
		}
		p.mu.Unlock()

		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		p.mu.Lock()
		if p.disposed {
			p.mu.Unlock()
			return errs.New(errs.ErrPoolDisposed, "prewarm aborted by disposal")
		}
		if p.created >= target {
			// Demand-path creation met the target while we were pacing.
			p.mu.Unlock()
			return nil
		}
		p.created++
		p.mu.Unlock()

		engine, err := p.Factory.Create(ctx)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			p.signalWake()
			return errs.New(errs.ErrEngineCreate, err.Error())
		}

		p.mu.Lock()
		if p.disposed {
			p.created--
			p.mu.Unlock()
			p.Factory.Destroy(engine)
			return errs.New(errs.ErrPoolDisposed, "engine created during disposal")
		}
		p.idle = append(p.idle, engine)
		p.mu.Unlock()
		p.signalWake()
	}
}
