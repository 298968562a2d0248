package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		kind     MetricKind
		expected string
	}{
		{name: "minutes", value: 45, kind: KindTime, expected: "45 min"},
		{name: "fractional minutes", value: 4.25, kind: KindTime, expected: "4.25 min"},
		{name: "zero minutes", value: 0, kind: KindTime, expected: "0 min"},
		{name: "hours and minutes", value: 125, kind: KindTime, expected: "2h 5m"},
		{name: "exact hour", value: 60, kind: KindTime, expected: "1h 0m"},
		{name: "rounded minutes", value: 90.4, kind: KindTime, expected: "1h 30m"},
		{name: "small count", value: 247, kind: KindCount, expected: "247"},
		{name: "grouped count", value: 1234567, kind: KindCount, expected: "1,234,567"},
		{name: "percentage", value: 99.5, kind: KindPercentage, expected: "99.50%"},
		{name: "percentage rounding", value: 99.976, kind: KindPercentage, expected: "99.98%"},
		{name: "positive trend", value: 12.34, kind: KindTrend, expected: "+12.3%"},
		{name: "negative trend", value: -8, kind: KindTrend, expected: "-8.0%"},
		{name: "zero trend", value: 0, kind: KindTrend, expected: "0.0%"},
		{name: "unknown kind", value: 3.5, kind: MetricKind("ratio"), expected: "3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMetric(tt.value, tt.kind))
		})
	}
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		value    float64
		expected Trend
	}{
		{value: 0.05, expected: TrendStable},
		{value: -0.09, expected: TrendStable},
		{value: 0, expected: TrendStable},
		{value: 0.1, expected: TrendUp},
		{value: 5, expected: TrendUp},
		{value: -5, expected: TrendDown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TrendDirection(tt.value), "value %v", tt.value)
	}
}
