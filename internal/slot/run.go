package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/nikitachicherindev/playerpool/internal/domain"
	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

// Run executes one activation episode and blocks until it is cancelled or the
// slot is deactivated.
//
// Episode flow:
//  1. If active is false or items is empty, the slot resets to Idle and
//     returns nil without touching the pool.
//  2. The controller blocks in AcquireWait. Cancellation or pool disposal
//     while waiting resets the slot to Idle and propagates the error
//     unchanged, so the owning scope can coordinate teardown of sibling work.
//  3. Holding the engine, the controller loops: wait for the foreground,
//     pick the next work item round-robin, submit and start it, wait for the
//     readiness confirmation with a bounded timeout, then hold it visible,
//     retire it, and pause before the next item. A failed iteration
//     (submit error, engine-reported failure, premature end, or timeout)
//     stops and clears the engine, then retries after a short delay; it
//     never terminates the episode.
//  4. On any exit a deferred cleanup pauses the engine, resets the slot to
//     Idle and releases the engine back to the pool, exactly once. That
//     cleanup is the only path by which a held engine returns to the pool.
//
// The engine is held across iterations for the whole episode; it is not
// released and reacquired per work item.
//
// Episodes are serialized: Run blocks until the previous episode, including
// its cleanup, has fully finished. A deactivate-reactivate toggle therefore
// cannot interleave the old episode's release with the new one's acquisition.
func (c *Controller) Run(ctx context.Context, active bool, items []domain.WorkItem) error {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if !active || len(items) == 0 {
		c.state.SetStatus(domain.Idle)
		return nil
	}

	c.state.SetStatus(domain.WaitingForEngine)
	engine, err := c.pool.AcquireWait(ctx)
	if err != nil {
		c.state.SetStatus(domain.Idle)
		return err
	}

	c.setEngine(engine)
	c.state.MarkAcquired(time.Now())
	if c.Hooks.OnAcquire != nil {
		c.Hooks.OnAcquire(c.state.Snapshot())
	}

	defer c.cleanup(engine)

	for next := 0; ; next++ {
		if err := c.awaitForeground(ctx); err != nil {
			return err
		}

		index := next % len(items)
		c.state.SetItem(index)
		c.state.SetStatus(domain.Preparing)

		if err := engine.Submit(items[index]); err != nil {
			if ferr := c.failIteration(ctx, engine, errs.New(errs.ErrIterationFailed, err.Error())); ferr != nil {
				return ferr
			}
			continue
		}
		engine.Start()

		if !c.isForeground() {
			// Backgrounded mid-submit: abort this iteration without
			// releasing the engine and park on the foreground wait again.
			engine.Stop()
			engine.Clear()
			c.state.SetStatus(domain.Idle)
			continue
		}

		if rerr := c.awaitReady(ctx, engine); rerr != nil {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if ferr := c.failIteration(ctx, engine, rerr); ferr != nil {
				return ferr
			}
			continue
		}

		c.state.SetStatus(domain.Active)
		if c.Hooks.OnReady != nil {
			c.Hooks.OnReady(c.state.Snapshot())
		}
		if err := c.gatedSleep(ctx, c.VisibleFor); err != nil {
			return err
		}

		c.state.SetStatus(domain.Retiring)
		if err := c.gatedSleep(ctx, c.TransitionFor); err != nil {
			return err
		}
		engine.Stop()
		engine.Clear()
		c.state.RecordIteration()

		if err := c.gatedSleep(ctx, c.BetweenItems); err != nil {
			return err
		}
	}
}

// awaitReady waits for the engine's readiness confirmation, bounded by the
// configured ReadyTimeout. All three non-ready results (timeout,
// engine-reported failure, premature end) map to an iteration error.
func (c *Controller) awaitReady(ctx context.Context, engine domain.Engine) error {
	rctx, cancel := context.WithTimeout(ctx, c.ReadyTimeout)
	defer cancel()

	outcome, err := engine.AwaitReady(rctx)
	if err != nil {
		return errs.New(errs.ErrIterationTimeout, c.ID)
	}
	switch outcome {
	case domain.OutcomeReady:
		return nil
	case domain.OutcomeFailed:
		return errs.New(errs.ErrIterationFailed, c.ID)
	default:
		return errs.New(errs.ErrIterationEnded, c.ID)
	}
}

// failIteration recovers from a failed iteration: the engine is stopped and
// cleared, the failure recorded, and the episode pauses briefly before
// retrying. The returned error is non-nil only when the pause itself is cut
// short by cancellation.
func (c *Controller) failIteration(ctx context.Context, engine domain.Engine, err error) error {
	engine.Stop()
	engine.Clear()
	c.state.RecordFailure(err)
	c.logger.Debug(fmt.Sprintf("playerpool: slot %s iteration failed, retrying: %v", c.ID, err))
	if c.Hooks.OnIterationError != nil {
		c.Hooks.OnIterationError(c.state.Snapshot(), err)
	}
	return c.gatedSleep(ctx, c.FailureDelay)
}

// cleanup ends the activation episode: pause the engine, reset the slot to
// Idle and hand the engine back to the pool. Deferred from Run, it executes
// exactly once per acquired engine. The Idle transition precedes
// MarkReleased so the episode's final monitoring flush carries the Idle
// status, not the in-flight one.
func (c *Controller) cleanup(engine domain.Engine) {
	engine.Pause()
	c.setEngine(nil)
	c.state.SetStatus(domain.Idle)
	c.state.MarkReleased(time.Now())
	c.pool.Release(engine)
	if c.Hooks.OnRelease != nil {
		c.Hooks.OnRelease(c.state.Snapshot())
	}
}
