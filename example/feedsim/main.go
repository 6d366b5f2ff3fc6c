// Command feedsim drives a playerpool collection with a simulated scrolling
// feed: fake engines with configurable readiness latency and failure rate, a
// shared in-memory content cache, and a scripted scroll through the list.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/spf13/pflag"

	"github.com/nikitachicherindev/playerpool"
	"github.com/nikitachicherindev/playerpool/cache"
	"github.com/nikitachicherindev/playerpool/monitoring"
)

type settings struct {
	slots       int
	capacity    int
	maxActive   int
	scrollSteps int
	stepEvery   time.Duration
	itemLatency time.Duration
	failureRate float64
	prewarm     int
	logLevel    string
}

func parseFlags() settings {
	var s settings
	pflag.CommandLine.SortFlags = false
	pflag.IntVar(&s.slots, "slots", 8, "Number of slots in the simulated feed")
	pflag.IntVar(&s.capacity, "capacity", 2, "Engine pool capacity")
	pflag.IntVar(&s.maxActive, "max-active", 0, "Active set size (0 uses the pool capacity)")
	pflag.IntVar(&s.scrollSteps, "scroll-steps", 12, "How many one-slot scroll steps to simulate")
	pflag.DurationVar(&s.stepEvery, "step-every", 500*time.Millisecond, "Delay between scroll steps")
	pflag.DurationVar(&s.itemLatency, "item-latency", 80*time.Millisecond, "Engine readiness latency per item (halved on cache hit)")
	pflag.Float64Var(&s.failureRate, "failure-rate", 0.1, "Probability that an item fails to become ready")
	pflag.IntVar(&s.prewarm, "prewarm", 0, "Engines to create before the first scroll step")
	pflag.StringVar(&s.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pflag.Parse()
	return s
}

// simEngine mimics an expensive playback engine. Readiness takes itemLatency
// unless the item's content is already in the shared cache.
type simEngine struct {
	store       cache.Store
	latency     time.Duration
	failureRate float64
	rng         *rand.Rand

	current playerpool.WorkItem
	playing bool
}

func (e *simEngine) Submit(item playerpool.WorkItem) error {
	e.current = item
	return nil
}

func (e *simEngine) Start()  { e.playing = true }
func (e *simEngine) Stop()   { e.playing = false }
func (e *simEngine) Clear()  { e.current = playerpool.WorkItem{} }
func (e *simEngine) Detach() {}
func (e *simEngine) Pause()  { e.playing = false }
func (e *simEngine) Resume() { e.playing = true }

func (e *simEngine) AwaitReady(ctx context.Context) (playerpool.ItemOutcome, error) {
	latency := e.latency
	if _, hit, _ := e.store.Get(ctx, e.current.URI); hit {
		latency /= 2
	}

	select {
	case <-ctx.Done():
		return playerpool.OutcomeFailed, ctx.Err()
	case <-time.After(latency):
	}

	if e.rng.Float64() < e.failureRate {
		return playerpool.OutcomeFailed, nil
	}
	_ = e.store.Put(ctx, e.current.URI, []byte("content:"+e.current.ID))
	return playerpool.OutcomeReady, nil
}

type simFactory struct {
	store       cache.Store
	latency     time.Duration
	failureRate float64
}

func (f *simFactory) Create(context.Context) (playerpool.Engine, error) {
	return &simEngine{
		store:       f.store,
		latency:     f.latency,
		failureRate: f.failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (f *simFactory) Destroy(playerpool.Engine) {}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "feedsim: %v\n", err)
		os.Exit(1)
	}
}

func run(s settings) error {
	store := cache.NewMemoryStore(cache.WithMaxEntries(256))
	defer store.Close()

	mon := monitoring.New()
	logger := playerpool.NewDefaultLogger(playerpool.LogLevel(s.logLevel))

	coll, err := playerpool.NewCollection(context.Background(), playerpool.CollectionConfig{
		Pool: playerpool.PoolConfig{
			Capacity: s.capacity,
			Factory: &simFactory{
				store:       store,
				latency:     s.itemLatency,
				failureRate: s.failureRate,
			},
		},
		MaxActive:  s.maxActive,
		Monitoring: mon,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer coll.Close()

	for i := 0; i < s.slots; i++ {
		id := fmt.Sprintf("slot-%02d", i)
		items := []playerpool.WorkItem{
			{ID: id + "/a", URI: "sim://" + id + "/a"},
			{ID: id + "/b", URI: "sim://" + id + "/b"},
			{ID: id + "/c", URI: "sim://" + id + "/c"},
		}
		cfg := playerpool.SlotConfig{
			ID:            id,
			VisibleFor:    300 * time.Millisecond,
			TransitionFor: 50 * time.Millisecond,
			BetweenItems:  100 * time.Millisecond,
		}
		if err := coll.AddSlot(cfg, items); err != nil {
			return err
		}
	}

	if s.prewarm > 0 {
		if err := coll.Prewarm(context.Background(), s.prewarm); err != nil &&
			!errors.Is(err, context.Canceled) {
			return err
		}
	}

	// Each slot is 100 units tall; the viewport shows two slots and scrolls
	// one slot per step, wrapping back to the top.
	const slotExtent = 100.0
	visible := make([]playerpool.VisibleItem, s.slots)
	for i := range visible {
		visible[i] = playerpool.VisibleItem{
			Index:  i,
			Offset: float64(i) * slotExtent,
			Extent: slotExtent,
		}
	}

	for step := 0; step <= s.scrollSteps; step++ {
		top := float64(step%s.slots) * slotExtent
		coll.UpdateViewport(visible, playerpool.Viewport{
			Start: top,
			End:   top + 2*slotExtent,
		})
		time.Sleep(s.stepEvery)
	}

	// Simulate the app being backgrounded mid-scroll and coming back.
	coll.Background()
	time.Sleep(200 * time.Millisecond)
	coll.Foreground()
	time.Sleep(s.stepEvery)

	printReport(coll, mon)
	return nil
}

func printReport(coll *playerpool.Collection, mon *monitoring.Monitoring) {
	p := coll.Pool()
	fmt.Printf("\nengines: created=%d idle=%d in-use=%d\n",
		p.Created(), p.IdleCount(), p.InUseCount())

	metrics := mon.GetMetrics()
	ids := make([]string, 0, len(metrics))
	for id := range metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("slot             status            items  failures")
	for _, id := range ids {
		st := metrics[id]
		fmt.Printf("%-16s %-16s %6d  %8d\n", id, st.Status, st.Iterations, st.Failures)
	}
}
