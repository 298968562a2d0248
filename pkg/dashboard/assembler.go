package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

const (
	// DefaultCacheTTL is how long an assembled dashboard is served from cache
	DefaultCacheTTL = 5 * time.Minute

	// DefaultConcurrency bounds parallel timestamp requests per cycle
	DefaultConcurrency = 10

	// DefaultCoverage is the static infrastructure coverage card value
	DefaultCoverage = "99.9%"
)

var errSuperseded = errors.New("fetch cycle superseded by a newer refresh")

// Assembler runs fetch-and-compute cycles against a Source and shapes the
// result into dashboard cards. It never returns an error: failures produce
// fallback data.
//
// Concurrent fetches of one selector share a single cycle. A forced refresh
// cancels the cycle in flight and its result is discarded.
type Assembler struct {
	source      Source
	store       Store
	aggregator  *metrics.Aggregator
	observer    Observer
	ttl         time.Duration
	coverage    string
	concurrency int
	now         func() time.Time

	group singleflight.Group

	mu          sync.Mutex
	status      APIStatus
	generations map[string]uint64
	cancels     map[string]context.CancelFunc
	writes      map[string]*sync.Mutex
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithStore replaces the default in-memory cache.
func WithStore(store Store) Option {
	return func(a *Assembler) {
		if store != nil {
			a.store = store
		}
	}
}

// WithAggregator replaces the default aggregator.
func WithAggregator(aggregator *metrics.Aggregator) Option {
	return func(a *Assembler) {
		if aggregator != nil {
			a.aggregator = aggregator
		}
	}
}

// WithObserver registers an observer notified after every cycle.
func WithObserver(observer Observer) Option {
	return func(a *Assembler) {
		a.observer = observer
	}
}

// WithTTL overrides the cache lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(a *Assembler) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithCoverage sets the static coverage card value.
func WithCoverage(coverage string) Option {
	return func(a *Assembler) {
		if coverage != "" {
			a.coverage = coverage
		}
	}
}

// WithConcurrency bounds parallel timestamp requests.
func WithConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAssembler creates an assembler reading from source. A nil source means
// the upstream is not configured: every fetch returns fallback data without
// network calls.
func NewAssembler(source Source, opts ...Option) *Assembler {
	a := &Assembler{
		source:      source,
		store:       NewMemoryStore(),
		aggregator:  metrics.NewAggregator(metrics.Policy{}, metrics.DefaultStrategies()),
		ttl:         DefaultCacheTTL,
		coverage:    DefaultCoverage,
		concurrency: DefaultConcurrency,
		now:         time.Now,
		status:      StatusChecking,
		generations: make(map[string]uint64),
		cancels:     make(map[string]context.CancelFunc),
		writes:      make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configured reports whether the assembler has an upstream source.
func (a *Assembler) Configured() bool {
	return a.source != nil
}

// Fetch returns the dashboard for selector, from cache when a fresh entry
// exists and forceRefresh is false.
func (a *Assembler) Fetch(ctx context.Context, selector string, forceRefresh bool) *Data {
	if selector == "" {
		selector = metrics.DefaultTimeframe
	}
	if a.source == nil {
		return FallbackData(StatusChecking, selector, a.now())
	}
	if !metrics.IsTimeframe(selector) {
		logger.Warnf("Rejecting dashboard fetch for unknown timeframe %q", selector)
		return FallbackData(StatusError, selector, a.now())
	}

	for {
		if forceRefresh {
			a.supersede(selector)
		} else if entry, ok := a.store.Get(ctx, selector); ok && entry.Fresh(a.now(), a.ttl) {
			logger.Debugf("Serving cached dashboard for %s", selector)
			return entry.Data
		}

		gen := a.generation(selector)
		force := forceRefresh
		ch := a.group.DoChan(selector, func() (interface{}, error) {
			return a.cycle(ctx, selector, gen, force)
		})

		select {
		case res := <-ch:
			if errors.Is(res.Err, errSuperseded) {
				// A newer cycle owns the selector now, wait for it or its cache entry
				forceRefresh = false
				continue
			}
			return res.Val.(*Data)
		case <-ctx.Done():
			return FallbackData(StatusError, selector, a.now())
		}
	}
}

// Refresh forces a new cycle for selector.
func (a *Assembler) Refresh(ctx context.Context, selector string) *Data {
	return a.Fetch(ctx, selector, true)
}

// CheckHealth reports upstream reachability. It is false when unconfigured.
func (a *Assembler) CheckHealth(ctx context.Context) bool {
	if a.source == nil {
		return false
	}
	return a.source.HealthCheck(ctx)
}

// Status returns the outcome of the most recent cycle.
func (a *Assembler) Status() APIStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Reset returns the status to checking.
func (a *Assembler) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = StatusChecking
}

// writeLock orders cache writes for selector without holding mu across the store.
func (a *Assembler) writeLock(selector string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.writes[selector]
	if !ok {
		lock = &sync.Mutex{}
		a.writes[selector] = lock
	}
	return lock
}

func (a *Assembler) generation(selector string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generations[selector]
}

// supersede invalidates and cancels the cycle in flight for selector.
func (a *Assembler) supersede(selector string) {
	a.mu.Lock()
	a.generations[selector]++
	if cancel, ok := a.cancels[selector]; ok {
		cancel()
		delete(a.cancels, selector)
	}
	a.mu.Unlock()

	a.group.Forget(selector)
}

func (a *Assembler) cycle(parent context.Context, selector string, gen uint64, force bool) (interface{}, error) {
	// Another cycle may have filled the cache since the caller looked
	if !force {
		if entry, ok := a.store.Get(parent, selector); ok && entry.Fresh(a.now(), a.ttl) {
			return entry.Data, nil
		}
	}

	// The cycle is shared by every waiting caller, so it outlives the caller that started it.
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	defer cancel()

	a.mu.Lock()
	if a.generations[selector] != gen {
		a.mu.Unlock()
		return nil, errSuperseded
	}
	a.cancels[selector] = cancel
	a.mu.Unlock()

	start := a.now()
	data, err := a.assemble(ctx, selector)

	// A newer cycle for selector waits here until this write lands, so the cache never goes back in time
	write := a.writeLock(selector)
	write.Lock()

	a.mu.Lock()
	if a.generations[selector] != gen {
		a.mu.Unlock()
		write.Unlock()
		logger.Debugf("Discarding superseded dashboard cycle for %s", selector)
		return nil, errSuperseded
	}
	delete(a.cancels, selector)
	if err != nil {
		a.status = StatusError
	} else {
		a.status = StatusHealthy
	}
	a.mu.Unlock()

	if err != nil {
		write.Unlock()
		logger.Errorf("Dashboard fetch cycle failed for %s: %v", selector, err)
		data = FallbackData(StatusError, selector, a.now())
	} else {
		a.store.Set(ctx, selector, &Entry{Data: data, FetchedAt: a.now()})
		write.Unlock()
		logger.Infof("Dashboard for %s assembled in %v (%d incidents)", selector, a.now().Sub(start), data.Metrics.IncidentCount)
	}

	if a.observer != nil {
		a.observer.Observe(data)
	}
	return data, nil
}

func (a *Assembler) assemble(ctx context.Context, selector string) (*Data, error) {
	window, err := metrics.WindowFor(selector, a.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, selector)
	}

	current, err := a.source.List(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents for current window: %w", err)
	}

	var previous []metrics.Incident
	if window.Previous != nil {
		previous, err = a.source.List(ctx, *window.Previous)
		if err != nil {
			return nil, fmt.Errorf("failed to list incidents for previous window: %w", err)
		}
	}

	enriched := a.enrich(ctx, current, previous)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg := a.aggregator.Calculate(enriched[0], enriched[1], window)
	return present(agg, selector, a.coverage, a.now()), nil
}

// enrich attaches lifecycle timestamps to copies of every incident in sets.
// A failed lookup leaves that incident with no timestamps.
func (a *Assembler) enrich(ctx context.Context, sets ...[]metrics.Incident) [][]metrics.Incident {
	var g errgroup.Group
	g.SetLimit(a.concurrency)

	out := make([][]metrics.Incident, len(sets))
	for s, set := range sets {
		out[s] = make([]metrics.Incident, len(set))
		for i := range set {
			g.Go(func() error {
				var timestamps []metrics.Timestamp
				if ctx.Err() == nil {
					var err error
					timestamps, err = a.source.Timestamps(ctx, set[i].ID)
					if err != nil {
						timestamps = nil
						logger.Warnf("Failed to fetch timestamps for incident %s: %v", set[i].ID, err)
					}
				}
				out[s][i] = set[i].WithTimestamps(timestamps)
				return nil
			})
		}
	}
	_ = g.Wait()

	return out
}
