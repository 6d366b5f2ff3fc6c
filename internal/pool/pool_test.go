package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitachicherindev/playerpool/internal/domain"
	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

// fakeEngine records the reset operations the pool applies to it and guards
// against double hand-out with a held flag.
type fakeEngine struct {
	mu       sync.Mutex
	stopped  int
	cleared  int
	detached int

	held atomic.Bool
}

func (e *fakeEngine) Submit(domain.WorkItem) error { return nil }
func (e *fakeEngine) Start()                       {}
func (e *fakeEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped++
}
func (e *fakeEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cleared++
}
func (e *fakeEngine) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detached++
}
func (e *fakeEngine) Pause()  {}
func (e *fakeEngine) Resume() {}
func (e *fakeEngine) AwaitReady(context.Context) (domain.ItemOutcome, error) {
	return domain.OutcomeReady, nil
}

func (e *fakeEngine) resetCount() (stopped, cleared, detached int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopped, e.cleared, e.detached
}

type fakeFactory struct {
	mu        sync.Mutex
	created   int
	destroyed int
	createErr error
}

func (f *fakeFactory) Create(context.Context) (domain.Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &fakeEngine{}, nil
}

func (f *fakeFactory) Destroy(domain.Engine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
}

func (f *fakeFactory) counts() (created, destroyed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, f.destroyed
}

func newTestPool(t *testing.T, capacity int) (*Pool, *fakeFactory) {
	t.Helper()
	factory := &fakeFactory{}
	p, err := New(domain.PoolConfig{
		Capacity:   capacity,
		Factory:    factory,
		CreateRate: 1000, // keep prewarm pacing out of test time
	})
	require.NoError(t, err)
	return p, factory
}

func TestNew_Validation(t *testing.T) {
	_, err := New(domain.PoolConfig{})
	assert.ErrorIs(t, err, errs.ErrNilFactory)

	_, err = New(domain.PoolConfig{Factory: &fakeFactory{}, Capacity: -1})
	assert.ErrorIs(t, err, errs.ErrInvalidCapacity)

	p, err := New(domain.PoolConfig{Factory: &fakeFactory{}})
	require.NoError(t, err)
	assert.Equal(t, domain.DEFAULT_CAPACITY, p.Capacity)
}

func TestTryAcquire_CreatesUpToCapacity(t *testing.T) {
	p, factory := newTestPool(t, 2)
	ctx := context.Background()

	first, err := p.TryAcquire(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := p.TryAcquire(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)

	// Exhausted: no error, no engine.
	third, err := p.TryAcquire(ctx)
	require.NoError(t, err)
	assert.Nil(t, third)

	created, _ := factory.counts()
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, p.Created())
	assert.Equal(t, 2, p.InUseCount())
	assert.Equal(t, 0, p.IdleCount())
}

func TestTryAcquire_FactoryFailure(t *testing.T) {
	factory := &fakeFactory{createErr: errors.New("no codec")}
	p, err := New(domain.PoolConfig{Capacity: 1, Factory: factory})
	require.NoError(t, err)

	engine, err := p.TryAcquire(context.Background())
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, errs.ErrEngineCreate)
	// The reserved construction slot is returned on failure.
	assert.Equal(t, 0, p.Created())
}

func TestRelease_ResetsBeforeReuse(t *testing.T) {
	p, _ := newTestPool(t, 1)
	ctx := context.Background()

	engine, err := p.TryAcquire(ctx)
	require.NoError(t, err)

	p.Release(engine)
	stopped, cleared, detached := engine.(*fakeEngine).resetCount()
	assert.Equal(t, 1, stopped)
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 1, detached)
	assert.Equal(t, 1, p.IdleCount())

	again, err := p.TryAcquire(ctx)
	require.NoError(t, err)
	assert.Same(t, engine, again, "idle engine should be reused, not recreated")
}

func TestRelease_UnknownEngineIsNoOp(t *testing.T) {
	p, _ := newTestPool(t, 1)

	engine, err := p.TryAcquire(context.Background())
	require.NoError(t, err)

	p.Release(&fakeEngine{}) // never handed out by this pool
	assert.Equal(t, 1, p.InUseCount())
	assert.Equal(t, 0, p.IdleCount())

	p.Release(engine)
	p.Release(engine) // double release
	assert.Equal(t, 0, p.InUseCount())
	assert.Equal(t, 1, p.IdleCount())
	assert.Equal(t, 1, p.Created())
}

func TestAcquireWait_BlocksUntilRelease(t *testing.T) {
	p, _ := newTestPool(t, 1)
	ctx := context.Background()

	held, err := p.TryAcquire(ctx)
	require.NoError(t, err)

	got := make(chan domain.Engine, 1)
	go func() {
		engine, werr := p.AcquireWait(ctx)
		assert.NoError(t, werr)
		got <- engine
	}()

	select {
	case <-got:
		t.Fatal("AcquireWait returned while the pool was exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release(held)

	select {
	case engine := <-got:
		assert.Same(t, held, engine)
	case <-time.After(time.Second):
		t.Fatal("AcquireWait did not wake after release")
	}
	assert.Equal(t, 1, p.InUseCount())
}

func TestAcquireWait_CancelledWhileWaiting(t *testing.T) {
	p, _ := newTestPool(t, 1)

	held, err := p.TryAcquire(context.Background())
	require.NoError(t, err)
	defer p.Release(held)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		engine, werr := p.AcquireWait(ctx)
		assert.Nil(t, engine)
		done <- werr
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case werr := <-done:
		assert.ErrorIs(t, werr, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("AcquireWait did not observe cancellation")
	}
}

func TestAcquireWait_MultipleWaitersEachGetAnEngine(t *testing.T) {
	p, _ := newTestPool(t, 2)
	ctx := context.Background()

	first, err := p.TryAcquire(ctx)
	require.NoError(t, err)
	second, err := p.TryAcquire(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var served atomic.Int32
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine, werr := p.AcquireWait(ctx)
			if assert.NoError(t, werr) && assert.NotNil(t, engine) {
				served.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	// Two quick releases: the wake hint must reach both waiters even though
	// the hint channel holds at most one pending signal.
	p.Release(first)
	p.Release(second)

	waited := make(chan struct{})
	go func() { wg.Wait(); close(waited) }()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("a waiter was stranded after both engines were released")
	}
	assert.Equal(t, int32(2), served.Load())
}

func TestConcurrentTraffic_CapacityNeverExceeded(t *testing.T) {
	const capacity = 3
	p, factory := newTestPool(t, capacity)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				engine, err := p.AcquireWait(ctx)
				if !assert.NoError(t, err) {
					return
				}
				fe := engine.(*fakeEngine)
				if !fe.held.CompareAndSwap(false, true) {
					t.Error("engine handed out while already held")
				}
				time.Sleep(time.Millisecond)
				fe.held.Store(false)
				p.Release(engine)
			}
		}()
	}
	wg.Wait()

	created, destroyed := factory.counts()
	assert.LessOrEqual(t, created, capacity)
	assert.Zero(t, destroyed)
	assert.Equal(t, 0, p.InUseCount())
	assert.Equal(t, created, p.IdleCount())
}
