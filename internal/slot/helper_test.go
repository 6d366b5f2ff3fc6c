package slot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikitachicherindev/playerpool/internal/domain"
	"github.com/nikitachicherindev/playerpool/internal/pool"
)

// scriptEngine is a lightweight engine whose readiness outcome is scriptable
// per test. All other operations are recorded for assertions.
type scriptEngine struct {
	mu        sync.Mutex
	submitted []domain.WorkItem
	submitErr error
	started   int
	stopped   int
	cleared   int
	detached  int
	paused    int
	resumed   int

	// awaitReady overrides the readiness behavior; nil means immediately ready.
	awaitReady func(ctx context.Context) (domain.ItemOutcome, error)

	// onPause, if set, runs on every Pause call, outside the engine lock.
	onPause func()
}

func (e *scriptEngine) Submit(item domain.WorkItem) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitErr != nil {
		return e.submitErr
	}
	e.submitted = append(e.submitted, item)
	return nil
}

func (e *scriptEngine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started++
}

func (e *scriptEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped++
}

func (e *scriptEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cleared++
}

func (e *scriptEngine) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detached++
}

func (e *scriptEngine) Pause() {
	e.mu.Lock()
	e.paused++
	fn := e.onPause
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (e *scriptEngine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resumed++
}

func (e *scriptEngine) AwaitReady(ctx context.Context) (domain.ItemOutcome, error) {
	e.mu.Lock()
	fn := e.awaitReady
	e.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return domain.OutcomeReady, nil
}

func (e *scriptEngine) submitCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.submitted)
}

func (e *scriptEngine) pauseCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *scriptEngine) resumeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumed
}

// scriptFactory hands out pre-built scriptEngines in order, then empty ones.
type scriptFactory struct {
	mu        sync.Mutex
	scripted  []*scriptEngine
	destroyed int
}

func (f *scriptFactory) Create(context.Context) (domain.Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.scripted) > 0 {
		engine := f.scripted[0]
		f.scripted = f.scripted[1:]
		return engine, nil
	}
	return &scriptEngine{}, nil
}

func (f *scriptFactory) Destroy(domain.Engine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
}

func newScriptedPool(t *testing.T, capacity int, engines ...*scriptEngine) *pool.Pool {
	t.Helper()
	p, err := pool.New(domain.PoolConfig{
		Capacity:   capacity,
		Factory:    &scriptFactory{scripted: engines},
		CreateRate: 1000,
	})
	require.NoError(t, err)
	return p
}

// fastConfig returns slot timings short enough for tests while keeping every
// phase observable.
func fastConfig(id string) domain.SlotConfig {
	return domain.SlotConfig{
		ID:            id,
		VisibleFor:    10 * time.Millisecond,
		TransitionFor: 5 * time.Millisecond,
		BetweenItems:  5 * time.Millisecond,
		FailureDelay:  5 * time.Millisecond,
		ReadyTimeout:  100 * time.Millisecond,
		GateChunk:     time.Millisecond,
	}
}

func testItems(n int) []domain.WorkItem {
	items := make([]domain.WorkItem, n)
	for i := range items {
		items[i] = domain.WorkItem{ID: string(rune('a' + i)), URI: "mem://item"}
	}
	return items
}
