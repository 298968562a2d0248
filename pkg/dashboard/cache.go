package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
)

// Entry is a cached dashboard together with the time it was fetched.
type Entry struct {
	Data      *Data     `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the entry holds data younger than ttl at now.
func (e *Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return e != nil && e.Data != nil && now.Sub(e.FetchedAt) < ttl
}

// Store keeps assembled dashboards keyed by timeframe selector.
// Implementations treat their own failures as a miss.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, entry *Entry)
}

// MemoryStore is a process-local Store. Get returns the stored pointer.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	return entry, ok
}

func (m *MemoryStore) Set(_ context.Context, key string, entry *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
}

// Cacher is the subset of storage.RedisClient used by RedisStore.
type Cacher interface {
	SetCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetCache(ctx context.Context, key string, dest interface{}) (bool, error)
}

// RedisStore shares dashboards between replicas through Redis. Entries
// expire on the Redis side after ttl.
type RedisStore struct {
	cacher Cacher
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore on top of cacher.
func NewRedisStore(cacher Cacher, ttl time.Duration) *RedisStore {
	return &RedisStore{cacher: cacher, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) (*Entry, bool) {
	var entry Entry
	found, err := r.cacher.GetCache(ctx, cacheKey(key), &entry)
	if err != nil {
		logger.Warnf("Dashboard cache read failed for %s: %v", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &entry, true
}

func (r *RedisStore) Set(ctx context.Context, key string, entry *Entry) {
	if err := r.cacher.SetCache(ctx, cacheKey(key), entry, r.ttl); err != nil {
		logger.Warnf("Dashboard cache write failed for %s: %v", key, err)
	}
}

func cacheKey(selector string) string {
	return "dashboard:" + selector
}
