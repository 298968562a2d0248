package dashboard

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MetricKind selects how FormatMetric renders a value.
type MetricKind string

const (
	KindTime       MetricKind = "time"
	KindCount      MetricKind = "count"
	KindPercentage MetricKind = "percentage"
	KindTrend      MetricKind = "trend"
)

// stableThreshold is the absolute trend below which a KPI is considered flat.
const stableThreshold = 0.1

var countPrinter = message.NewPrinter(language.English)

// FormatTime renders a duration in minutes, e.g. "45 min" or "2h 5m".
func FormatTime(minutes float64) string {
	if minutes < 60 {
		return strconv.FormatFloat(minutes, 'f', -1, 64) + " min"
	}
	hours := math.Floor(minutes / 60)
	rest := math.Round(math.Mod(minutes, 60))
	return fmt.Sprintf("%dh %dm", int(hours), int(rest))
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatPercentage renders v with two decimals, e.g. "99.97%".
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatTrend renders a percentage change with one decimal. Positive values
// carry a leading "+".
func FormatTrend(v float64) string {
	s := fmt.Sprintf("%.1f%%", v)
	if v > 0 {
		return "+" + s
	}
	return s
}

// TrendDirection maps a percentage change onto an arrow.
func TrendDirection(v float64) Trend {
	switch {
	case math.Abs(v) < stableThreshold:
		return TrendStable
	case v > 0:
		return TrendUp
	default:
		return TrendDown
	}
}

// FormatMetric renders v according to kind.
func FormatMetric(v float64, kind MetricKind) string {
	switch kind {
	case KindTime:
		return FormatTime(v)
	case KindCount:
		return FormatCount(int(math.Round(v)))
	case KindPercentage:
		return FormatPercentage(v)
	case KindTrend:
		return FormatTrend(v)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
