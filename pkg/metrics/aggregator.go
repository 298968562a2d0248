package metrics

import "math"

// Aggregator computes KPIs for a window of incidents. It performs no I/O and
// never mutates its input.
type Aggregator struct {
	policy     Policy
	strategies Strategies
}

// NewAggregator creates an aggregator. Invalid strategies are replaced by the
// defaults for that metric so a misconfigured deployment still produces
// comparable numbers.
func NewAggregator(policy Policy, strategies Strategies) *Aggregator {
	defaults := DefaultStrategies()
	if strategies.MTTA.Validate() != nil {
		strategies.MTTA = defaults.MTTA
	}
	if strategies.MTTR.Validate() != nil {
		strategies.MTTR = defaults.MTTR
	}
	if strategies.MTTD.Validate() != nil {
		strategies.MTTD = defaults.MTTD
	}

	return &Aggregator{
		policy:     policy,
		strategies: strategies,
	}
}

// Policy returns the classification filter in use.
func (a *Aggregator) Policy() Policy {
	return a.policy
}

// Strategies returns the extraction strategies in use.
func (a *Aggregator) Strategies() Strategies {
	return a.strategies
}

// Calculate derives the KPIs for current and the trends versus previous.
//
// The filter policy applies to the count, the severity breakdown and every
// mean in both windows. Uptime and the status breakdown are computed over the
// unfiltered current population.
func (a *Aggregator) Calculate(current, previous []Incident, window TimeWindow) Aggregated {
	selected := a.policy.Apply(current)
	selectedPrevious := a.policy.Apply(previous)

	result := Aggregated{
		MTTA:              MeanDuration(selected, a.strategies.MTTA),
		MTTR:              MeanDuration(selected, a.strategies.MTTR),
		MTTD:              MeanDuration(selected, a.strategies.MTTD),
		IncidentCount:     len(selected),
		SeverityBreakdown: SeverityBreakdown(selected),
		StatusBreakdown:   StatusBreakdown(current),
		Uptime:            CalculateUptime(current, window),
	}

	result.Trends = Trends{
		MTTA:          CalculateTrend(result.MTTA, MeanDuration(selectedPrevious, a.strategies.MTTA)),
		MTTR:          CalculateTrend(result.MTTR, MeanDuration(selectedPrevious, a.strategies.MTTR)),
		MTTD:          CalculateTrend(result.MTTD, MeanDuration(selectedPrevious, a.strategies.MTTD)),
		IncidentCount: CalculateTrend(float64(result.IncidentCount), float64(len(selectedPrevious))),
	}

	return result
}

// MeanDuration averages the durations extracted by strategy. Incidents that
// do not yield a value are skipped.
func MeanDuration(incidents []Incident, strategy Strategy) float64 {
	values := make([]float64, 0, len(incidents))
	for i := range incidents {
		if v, ok := strategy.Extract(&incidents[i]); ok {
			values = append(values, v)
		}
	}
	return Mean(values)
}

// Mean returns the arithmetic mean rounded to 2 decimals, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round(sum/float64(len(values)), 2)
}

// CalculateTrend returns the percentage change from previous to current
// rounded to 1 decimal. A previous value of 0 yields 0, so "no prior data"
// reads the same as "no change".
func CalculateTrend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round((current-previous)/previous*100, 1)
}

// CalculateUptime returns the share of the window not covered by incident
// durations, rounded to 2 decimals. Durations are summed, so overlapping
// incidents are counted twice and the result can drop below zero.
func CalculateUptime(incidents []Incident, window TimeWindow) float64 {
	total := window.Duration().Milliseconds()
	if total <= 0 {
		return 100
	}

	var downtime int64
	for i := range incidents {
		created, ok := incidents[i].CreatedTime()
		if !ok {
			continue
		}
		resolved, ok := incidents[i].FindTimestamp(ResolutionTimestampNames...)
		if !ok {
			continue
		}
		downtime += resolved.Sub(created).Milliseconds()
	}

	return round(float64(total-downtime)/float64(total)*100, 2)
}

// SeverityBreakdown counts incidents per severity name.
func SeverityBreakdown(incidents []Incident) map[string]int {
	breakdown := make(map[string]int)
	for i := range incidents {
		breakdown[incidents[i].Severity.Name]++
	}
	return breakdown
}

// StatusBreakdown counts incidents per status name.
func StatusBreakdown(incidents []Incident) map[string]int {
	breakdown := make(map[string]int)
	for i := range incidents {
		breakdown[incidents[i].Status.Name]++
	}
	return breakdown
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
