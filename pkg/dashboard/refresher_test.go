package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefresher_Disabled(t *testing.T) {
	configured := newTestAssembler(newTestSource())

	tests := []struct {
		name       string
		assembler  *Assembler
		timeframes []string
		interval   time.Duration
	}{
		{name: "nil assembler", assembler: nil, timeframes: []string{"30d"}, interval: time.Minute},
		{name: "unconfigured upstream", assembler: NewAssembler(nil), timeframes: []string{"30d"}, interval: time.Minute},
		{name: "zero interval", assembler: configured, timeframes: []string{"30d"}, interval: 0},
		{name: "no timeframes", assembler: configured, timeframes: nil, interval: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := NewRefresher(tt.assembler, tt.timeframes, tt.interval)
			assert.Nil(t, refresher)

			// nil refreshers are inert
			refresher.Start()
			refresher.Stop()
		})
	}
}

func TestRefresher_StartStop(t *testing.T) {
	source := newTestSource()
	assembler := newTestAssembler(source)

	refresher := NewRefresher(assembler, []string{"7d", "30d"}, 10*time.Millisecond)
	require.NotNil(t, refresher)

	done := make(chan struct{})
	go func() {
		refresher.Start()
		close(done)
	}()

	// Two selectors with two listings each per pass
	require.Eventually(t, func() bool { return source.ListCalls() >= 8 }, 2*time.Second, 5*time.Millisecond)

	refresher.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}

	assert.Equal(t, StatusHealthy, assembler.Status())
}
