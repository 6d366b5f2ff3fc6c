package playerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	errs "github.com/nikitachicherindev/playerpool/internal/error"
	"github.com/nikitachicherindev/playerpool/internal/pool"
	"github.com/nikitachicherindev/playerpool/internal/slot"
	"github.com/nikitachicherindev/playerpool/monitoring"
)

// SelectorFunc decides which slot indices are permitted to hold an engine.
// It must be a pure function of its inputs.
type SelectorFunc func(visible []VisibleItem, vp Viewport, maxActive int) []int

// CollectionConfig encapsulates the settings required to initialize a Collection.
//
// Parameters:
//   - Pool: Configuration of the engine pool the collection owns.
//   - MaxActive: Size of the active set. Defaults to the pool capacity; by
//     the design contract the two should be equal. A larger value is allowed
//     but logged, since surplus active slots then wait under full occupancy.
//   - Selector: Selection policy. Defaults to SelectActive.
//   - Monitoring: Receiver of slot metrics. Defaults to the in-memory
//     monitoring implementation.
//   - Logger: Receiver of diagnostics. Defaults to an info-level DefaultLogger.
type CollectionConfig struct {
	Pool       PoolConfig
	MaxActive  int
	Selector   SelectorFunc
	Monitoring Monitoring
	Logger     Logger
}

type slotEntry struct {
	ctrl   *slot.Controller
	items  []WorkItem
	active bool
	cancel context.CancelFunc
}

// Collection owns exactly one engine pool and one controller per slot. It
// feeds the selector's output to the controllers and supervises their
// activation episodes, so cancellation of the whole collection is observable
// in one place.
type Collection struct {
	cfg    CollectionConfig
	pool   *pool.Pool
	logger Logger

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	// mu protects order, slots and closed.
	mu     sync.Mutex
	order  []string
	slots  map[string]*slotEntry
	closed bool
}

// NewCollection initializes a collection and its engine pool.
//
// Returns:
//   - A pointer to the initialized Collection.
//   - An error if the pool configuration is invalid.
func NewCollection(ctx context.Context, cfg CollectionConfig) (*Collection, error) {
	if cfg.Logger == nil {
		cfg.Logger = NewDefaultLogger(LogLevelInfo)
	}
	if cfg.Pool.Logger == nil {
		cfg.Pool.Logger = cfg.Logger
	}
	if cfg.Monitoring == nil {
		cfg.Monitoring = monitoring.New()
	}
	if cfg.Selector == nil {
		cfg.Selector = SelectActive
	}

	p, err := pool.New(cfg.Pool)
	if err != nil {
		return nil, err
	}

	if cfg.MaxActive == 0 {
		cfg.MaxActive = p.Capacity
	}
	if cfg.MaxActive > p.Capacity {
		cfg.Logger.Warn(fmt.Sprintf(
			"playerpool: active set size %d exceeds pool capacity %d; surplus active slots will wait under full occupancy",
			cfg.MaxActive, p.Capacity))
	}

	c := &Collection{
		cfg:    cfg,
		pool:   p,
		logger: cfg.Logger,
		slots:  make(map[string]*slotEntry),
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	return c, nil
}

// AddSlot registers a slot with the collection. The slot starts Idle; it is
// activated by subsequent UpdateViewport calls. The slot's position in
// registration order is the index the selector's input refers to.
func (c *Collection) AddSlot(cfg SlotConfig, items []WorkItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errs.New(errs.ErrCollectionClosed, cfg.ID)
	}
	if _, ok := c.slots[cfg.ID]; ok {
		return errs.New(errs.ErrIDExists, cfg.ID)
	}

	ctrl, err := slot.New(cfg, c.pool, c.cfg.Monitoring, c.logger)
	if err != nil {
		return err
	}

	c.order = append(c.order, cfg.ID)
	c.slots[cfg.ID] = &slotEntry{ctrl: ctrl, items: items}
	return nil
}

// RemoveSlot deactivates and unregisters a slot. Later slots shift down one
// index in the selector's input space.
func (c *Collection) RemoveSlot(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.slots[id]
	if !ok {
		return errs.New(errs.ErrSlotNotFound, id)
	}
	c.stopEpisode(e)
	delete(c.slots, id)
	for i, sid := range c.order {
		if sid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateSlotItems replaces a slot's work item list. An active slot restarts
// its episode with the new items.
func (c *Collection) UpdateSlotItems(id string, items []WorkItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.slots[id]
	if !ok {
		return errs.New(errs.ErrSlotNotFound, id)
	}
	e.items = items
	if e.active {
		c.stopEpisode(e)
		c.startEpisode(e)
	}
	return nil
}

// UpdateViewport recomputes the active set from the current geometry and
// activates or deactivates slot controllers accordingly. Each change of a
// slot's active state cancels its previous episode and, when activating,
// starts a fresh one.
//
// The indices in visible refer to slot registration order.
func (c *Collection) UpdateViewport(visible []VisibleItem, vp Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	want := make(map[int]struct{})
	for _, i := range c.cfg.Selector(visible, vp, c.cfg.MaxActive) {
		want[i] = struct{}{}
	}

	for i, id := range c.order {
		e := c.slots[id]
		_, active := want[i]
		if active == e.active {
			continue
		}
		e.active = active
		if active {
			c.startEpisode(e)
		} else {
			c.stopEpisode(e)
		}
	}
}

// startEpisode launches one activation episode under the collection's group.
// Cancellation of the episode (deactivation, Close, pool disposal) is a
// deliberate teardown, not a failure, and is absorbed at this boundary;
// anything else surfaces from Close.
func (c *Collection) startEpisode(e *slotEntry) {
	ectx, cancel := context.WithCancel(c.ctx)
	e.cancel = cancel

	ctrl, items := e.ctrl, e.items
	c.group.Go(func() error {
		err := ctrl.Run(ectx, true, items)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, errs.ErrPoolDisposed) {
			return nil
		}
		return err
	})
}

func (c *Collection) stopEpisode(e *slotEntry) {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Background notifies every slot controller that the host moved to the
// background. Held engines pause immediately and gated delays stop counting.
func (c *Collection) Background() {
	for _, ctrl := range c.controllers() {
		ctrl.Background()
	}
}

// Foreground notifies every slot controller that the host returned to the
// foreground.
func (c *Collection) Foreground() {
	for _, ctrl := range c.controllers() {
		ctrl.Foreground()
	}
}

func (c *Collection) controllers() []*slot.Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctrls := make([]*slot.Controller, 0, len(c.slots))
	for _, id := range c.order {
		ctrls = append(ctrls, c.slots[id].ctrl)
	}
	return ctrls
}

// SlotState returns a snapshot of one slot's runtime state.
func (c *Collection) SlotState(id string) (SlotState, error) {
	c.mu.Lock()
	e, ok := c.slots[id]
	c.mu.Unlock()
	if !ok {
		return SlotState{}, errs.New(errs.ErrSlotNotFound, id)
	}
	return e.ctrl.State(), nil
}

// Prewarm eagerly creates engines up to min(target, capacity), paced off the
// critical demand path.
func (c *Collection) Prewarm(ctx context.Context, target int) error {
	return c.pool.Prewarm(ctx, target)
}

// Pool exposes the collection's engine pool, mainly for stats.
func (c *Collection) Pool() *Pool {
	return c.pool
}

// Close tears the collection down: every episode is cancelled, awaited, and
// the pool disposed. Idempotent. The returned error is the first
// non-teardown error any episode ended with.
func (c *Collection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for _, id := range c.order {
		e := c.slots[id]
		e.active = false
		c.stopEpisode(e)
	}
	c.mu.Unlock()

	c.cancel()
	err := c.group.Wait()
	c.pool.DisposeAll()
	return err
}
