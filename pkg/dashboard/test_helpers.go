package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

// ErrTestUpstream is returned by FakeSource when configured to fail.
var ErrTestUpstream = errors.New("test upstream unavailable")

// FakeSource is an in-memory Source for tests. Incidents are listed without
// timestamps; lookups are answered from their Timestamps field.
type FakeSource struct {
	Current  []metrics.Incident
	Previous []metrics.Incident

	// FailTimestamps lists incident IDs whose timestamp lookup fails
	FailTimestamps map[string]bool

	// ListErr makes every listing fail
	ListErr error

	// BlockFirstList makes the first listing wait for its context to end
	BlockFirstList bool

	Healthy bool

	listCalls      atomic.Int32
	timestampCalls atomic.Int32
}

func (f *FakeSource) List(ctx context.Context, window metrics.TimeWindow) ([]metrics.Incident, error) {
	n := f.listCalls.Add(1)
	if f.BlockFirstList && n == 1 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	// Only the current window carries a previous one
	source := f.Previous
	if window.Previous != nil {
		source = f.Current
	}
	out := make([]metrics.Incident, len(source))
	for i := range source {
		out[i] = source[i]
		out[i].Timestamps = nil
	}
	return out, nil
}

func (f *FakeSource) Timestamps(_ context.Context, incidentID string) ([]metrics.Timestamp, error) {
	f.timestampCalls.Add(1)
	if f.FailTimestamps[incidentID] {
		return nil, ErrTestUpstream
	}
	for _, set := range [][]metrics.Incident{f.Current, f.Previous} {
		for i := range set {
			if set[i].ID == incidentID {
				return set[i].Timestamps, nil
			}
		}
	}
	return nil, nil
}

func (f *FakeSource) HealthCheck(context.Context) bool {
	return f.Healthy
}

// ListCalls returns the number of listings served.
func (f *FakeSource) ListCalls() int {
	return int(f.listCalls.Load())
}

// TimestampCalls returns the number of timestamp lookups served.
func (f *FakeSource) TimestampCalls() int {
	return int(f.timestampCalls.Load())
}

// FakeCacher is an in-memory Cacher that JSON encodes values like Redis does.
type FakeCacher struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	Err    error
}

// NewFakeCacher creates an empty FakeCacher.
func NewFakeCacher() *FakeCacher {
	return &FakeCacher{
		values: make(map[string][]byte),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *FakeCacher) SetCache(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.Err != nil {
		return c.Err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *FakeCacher) GetCache(_ context.Context, key string, dest interface{}) (bool, error) {
	if c.Err != nil {
		return false, c.Err
	}
	c.mu.Lock()
	data, ok := c.values[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

// TTL returns the expiration recorded for key.
func (c *FakeCacher) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key]
}

// RecordingObserver collects every observed dashboard.
type RecordingObserver struct {
	mu   sync.Mutex
	seen []*Data
}

func (o *RecordingObserver) Observe(data *Data) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, data)
}

// Seen returns the observed dashboards in order.
func (o *RecordingObserver) Seen() []*Data {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Data(nil), o.seen...)
}

// CreateTestIncident creates an incident created at created with lifecycle
// timestamps at the given offsets.
func CreateTestIncident(id string, created time.Time, offsets map[string]time.Duration) metrics.Incident {
	incident := metrics.Incident{
		ID:        id,
		Name:      "Test incident " + id,
		CreatedAt: created.UTC().Format(time.RFC3339),
		Severity:  metrics.Severity{ID: "sev-major", Name: "Major", Rank: 2},
		Status:    metrics.Status{ID: "st-closed", Name: "Closed", Category: "closed"},
	}
	for name, offset := range offsets {
		incident.Timestamps = append(incident.Timestamps, metrics.Timestamp{
			Name:       name,
			OccurredAt: created.Add(offset).UTC().Format(time.RFC3339),
		})
	}
	return incident
}

// BlockingStore is a MemoryStore whose Set signals Entered and then waits for
// Release to be closed.
type BlockingStore struct {
	*MemoryStore
	Entered chan struct{}
	Release chan struct{}
	once    sync.Once
}

// NewBlockingStore creates a BlockingStore with open channels.
func NewBlockingStore() *BlockingStore {
	return &BlockingStore{
		MemoryStore: NewMemoryStore(),
		Entered:     make(chan struct{}),
		Release:     make(chan struct{}),
	}
}

// Set implements Store.
func (s *BlockingStore) Set(ctx context.Context, key string, entry *Entry) {
	s.once.Do(func() { close(s.Entered) })
	<-s.Release
	s.MemoryStore.Set(ctx, key, entry)
}
