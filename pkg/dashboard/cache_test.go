package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Fresh(t *testing.T) {
	data := FallbackData(StatusChecking, "30d", testNow)

	tests := []struct {
		name     string
		entry    *Entry
		age      time.Duration
		expected bool
	}{
		{name: "nil entry", entry: nil, expected: false},
		{name: "nil data", entry: &Entry{FetchedAt: testNow}, expected: false},
		{name: "young", entry: &Entry{Data: data, FetchedAt: testNow}, age: 4 * time.Minute, expected: true},
		{name: "expired", entry: &Entry{Data: data, FetchedAt: testNow}, age: 5 * time.Minute, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.Fresh(testNow.Add(tt.age), DefaultCacheTTL))
		})
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok := store.Get(ctx, "30d")
	assert.False(t, ok)

	entry := &Entry{Data: FallbackData(StatusHealthy, "30d", testNow), FetchedAt: testNow}
	store.Set(ctx, "30d", entry)

	got, ok := store.Get(ctx, "30d")
	require.True(t, ok)
	assert.Same(t, entry, got)

	_, ok = store.Get(ctx, "7d")
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	cacher := NewFakeCacher()
	store := NewRedisStore(cacher, 2*time.Minute)
	ctx := context.Background()

	_, ok := store.Get(ctx, "30d")
	assert.False(t, ok)

	assembler := newTestAssembler(newTestSource())
	data := assembler.Fetch(ctx, "30d", false)
	store.Set(ctx, "30d", &Entry{Data: data, FetchedAt: testNow})

	assert.Equal(t, 2*time.Minute, cacher.TTL("dashboard:30d"))

	got, ok := store.Get(ctx, "30d")
	require.True(t, ok)
	assert.True(t, got.FetchedAt.Equal(testNow))
	assert.Equal(t, data.KPIData, got.Data.KPIData)
	assert.Equal(t, data.Metrics, got.Data.Metrics)
}

func TestRedisStore_ErrorsAreMisses(t *testing.T) {
	cacher := NewFakeCacher()
	cacher.Err = ErrTestUpstream
	store := NewRedisStore(cacher, time.Minute)
	ctx := context.Background()

	store.Set(ctx, "30d", &Entry{Data: FallbackData(StatusHealthy, "30d", testNow), FetchedAt: testNow})
	_, ok := store.Get(ctx, "30d")
	assert.False(t, ok)
}

func TestAssembler_SharedStore(t *testing.T) {
	cacher := NewFakeCacher()
	source := newTestSource()
	ctx := context.Background()

	first := newTestAssembler(source, WithStore(NewRedisStore(cacher, time.Minute)))
	second := newTestAssembler(source, WithStore(NewRedisStore(cacher, time.Minute)))

	live := first.Fetch(ctx, "30d", false)
	shared := second.Fetch(ctx, "30d", false)

	assert.Equal(t, live.KPIData, shared.KPIData)
	assert.Equal(t, 2, source.ListCalls(), "second replica is served from the shared cache")
}
