package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_Extract(t *testing.T) {
	ttd := Strategy{Kind: StrategyDurationMetric, Names: []string{"time_to_detect"}}
	ack := Strategy{Kind: StrategyTimestamp, Names: []string{"acknowledged", "investigating"}}

	t.Run("timestamp difference in minutes", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, map[string]time.Duration{"acknowledged": 90 * time.Second})

		v, ok := ack.Extract(&incident)
		require.True(t, ok)
		assert.Equal(t, 1.5, v)
	})

	t.Run("first matching timestamp in list order", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, nil)
		incident.Timestamps = []Timestamp{
			{Name: "reported", OccurredAt: testBase.Format(time.RFC3339)},
			{Name: "investigating", OccurredAt: testBase.Add(10 * time.Minute).Format(time.RFC3339)},
			{Name: "acknowledged", OccurredAt: testBase.Add(5 * time.Minute).Format(time.RFC3339)},
		}

		v, ok := ack.Extract(&incident)
		require.True(t, ok)
		assert.Equal(t, 10.0, v)
	})

	t.Run("missing timestamp is excluded", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, map[string]time.Duration{"resolved": time.Hour})

		_, ok := ack.Extract(&incident)
		assert.False(t, ok)
	})

	t.Run("malformed timestamp is excluded", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, nil)
		incident.Timestamps = []Timestamp{{Name: "acknowledged", OccurredAt: "not-a-time"}}

		_, ok := ack.Extract(&incident)
		assert.False(t, ok)
	})

	t.Run("unparseable candidate falls through to the next name", func(t *testing.T) {
		tests := []struct {
			name     string
			first    string
			expected float64
		}{
			{name: "empty value", first: "", expected: 5.0},
			{name: "malformed value", first: "not-a-time", expected: 5.0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				incident := CreateTestIncident("1", testBase, nil)
				incident.Timestamps = []Timestamp{
					{Name: "acknowledged", OccurredAt: tt.first},
					{Name: "investigating", OccurredAt: testBase.Add(5 * time.Minute).Format(time.RFC3339)},
				}

				v, ok := ack.Extract(&incident)
				require.True(t, ok)
				assert.Equal(t, tt.expected, v)
			})
		}
	})

	t.Run("duration metric converted to minutes", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, nil)
		incident.DurationMetrics = []DurationMetric{{ID: "time_to_detect", Seconds: 300}}

		v, ok := ttd.Extract(&incident)
		require.True(t, ok)
		assert.Equal(t, 5.0, v)
	})

	t.Run("duration metric matched by name", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, nil)
		incident.DurationMetrics = []DurationMetric{{ID: "01H", Name: "time_to_detect", Seconds: 60}}

		v, ok := ttd.Extract(&incident)
		require.True(t, ok)
		assert.Equal(t, 1.0, v)
	})

	t.Run("no fallback between kinds", func(t *testing.T) {
		incident := CreateTestIncident("1", testBase, map[string]time.Duration{"acknowledged": time.Minute})
		byMetric := Strategy{Kind: StrategyDurationMetric, Names: []string{"acknowledged"}}

		_, ok := byMetric.Extract(&incident)
		assert.False(t, ok)
	})
}

func TestStrategies_Validate(t *testing.T) {
	assert.NoError(t, DefaultStrategies().Validate())

	invalid := DefaultStrategies()
	invalid.MTTR = Strategy{Kind: StrategyTimestamp}
	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mttr")

	assert.Error(t, Strategy{Kind: "average", Names: []string{"x"}}.Validate())
}
