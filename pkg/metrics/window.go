package metrics

import (
	"errors"
	"sort"
	"time"
)

// ErrUnknownTimeframe is returned for a selector that has no window definition.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

// DefaultTimeframe is used when no selector is requested.
const DefaultTimeframe = "30d"

// TimeWindow is a reporting period. Previous, when set, has the same length
// and ends where the current window starts.
type TimeWindow struct {
	Start    time.Time   `json:"start"`
	End      time.Time   `json:"end"`
	Previous *TimeWindow `json:"previous,omitempty"`
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

var timeframes = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// Timeframes returns the known selectors ordered by window length.
func Timeframes() []string {
	names := make([]string, 0, len(timeframes))
	for name := range timeframes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return timeframes[names[i]] < timeframes[names[j]]
	})
	return names
}

// IsTimeframe reports whether selector is a known timeframe.
func IsTimeframe(selector string) bool {
	_, ok := timeframes[selector]
	return ok
}

// WindowFor builds the window for selector ending at now, together with the
// immediately preceding window of the same length.
func WindowFor(selector string, now time.Time) (TimeWindow, error) {
	length, ok := timeframes[selector]
	if !ok {
		return TimeWindow{}, ErrUnknownTimeframe
	}

	start := now.Add(-length)
	return TimeWindow{
		Start: start,
		End:   now,
		Previous: &TimeWindow{
			Start: start.Add(-length),
			End:   start,
		},
	}, nil
}
