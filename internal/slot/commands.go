package slot

import (
	"context"
	"time"

	"github.com/nikitachicherindev/playerpool/internal/domain"
)

// Background notifies the controller that the host moved to the background.
//
// The held engine, if any, is paused immediately. Whether playback should
// resume on return is recorded: it resumes only if the slot was actively
// showing content or mid-preparation when the host left the foreground.
//
// Safe to call from any goroutine and idempotent while backgrounded.
func (c *Controller) Background() {
	c.fgMu.Lock()
	if !c.foreground {
		c.fgMu.Unlock()
		return
	}
	c.foreground = false
	status := c.state.GetStatus()
	c.resumeOnFg = status == domain.Active || status == domain.Preparing
	c.fgMu.Unlock()

	if engine := c.heldEngine(); engine != nil {
		engine.Pause()
	}
}

// Foreground notifies the controller that the host returned to the
// foreground. The run loop is woken and the engine resumed, but only if
// playback was in flight when Background was called.
//
// Safe to call from any goroutine and idempotent while foregrounded.
func (c *Controller) Foreground() {
	c.fgMu.Lock()
	if c.foreground {
		c.fgMu.Unlock()
		return
	}
	c.foreground = true
	resume := c.resumeOnFg
	c.resumeOnFg = false
	select {
	case c.fgCh <- struct{}{}:
	default:
	}
	c.fgMu.Unlock()

	if resume {
		if engine := c.heldEngine(); engine != nil {
			engine.Resume()
		}
	}
}

func (c *Controller) isForeground() bool {
	c.fgMu.Lock()
	defer c.fgMu.Unlock()
	return c.foreground
}

// awaitForeground blocks while the host is backgrounded. No work is submitted
// to the engine while backgrounded.
func (c *Controller) awaitForeground(ctx context.Context) error {
	for {
		if c.isForeground() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.fgCh:
			// Re-check; the wake may be stale after a quick fg/bg flip.
		}
	}
}

// gatedSleep pauses for d of foreground time. The delay is chunked and the
// foreground flag re-checked between chunks, so time spent backgrounded does
// not count toward the delay's total.
func (c *Controller) gatedSleep(ctx context.Context, d time.Duration) error {
	for remaining := d; remaining > 0; {
		if err := c.awaitForeground(ctx); err != nil {
			return err
		}
		chunk := c.GateChunk
		if chunk > remaining {
			chunk = remaining
		}
		timer := time.NewTimer(chunk)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		remaining -= chunk
	}
	return nil
}
