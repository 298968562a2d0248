package metrics

import "fmt"

// StrategyKind selects how a per-incident duration is obtained.
type StrategyKind string

const (
	// StrategyTimestamp subtracts the creation time from a named lifecycle timestamp
	StrategyTimestamp StrategyKind = "timestamp"

	// StrategyDurationMetric reads a duration pre-computed by the upstream
	StrategyDurationMetric StrategyKind = "duration_metric"
)

// ResolutionTimestampNames are the lifecycle events that end an incident's downtime.
var ResolutionTimestampNames = []string{"resolved", "closed"}

// Strategy extracts one duration from an incident. Names lists the timestamp
// names or duration metric IDs to look for.
type Strategy struct {
	Kind  StrategyKind `yaml:"kind" json:"kind"`
	Names []string     `yaml:"names" json:"names"`
}

// Strategies configures the extraction for each mean.
type Strategies struct {
	MTTA Strategy `yaml:"mtta" json:"mtta"`
	MTTR Strategy `yaml:"mttr" json:"mttr"`
	MTTD Strategy `yaml:"mttd" json:"mttd"`
}

// DefaultStrategies returns the extraction used when nothing is configured.
func DefaultStrategies() Strategies {
	return Strategies{
		MTTA: Strategy{Kind: StrategyTimestamp, Names: []string{"acknowledged", "investigating"}},
		MTTR: Strategy{Kind: StrategyTimestamp, Names: append([]string(nil), ResolutionTimestampNames...)},
		MTTD: Strategy{Kind: StrategyDurationMetric, Names: []string{"time_to_detect"}},
	}
}

// Validate checks that the strategy can be applied.
func (s Strategy) Validate() error {
	switch s.Kind {
	case StrategyTimestamp, StrategyDurationMetric:
	default:
		return fmt.Errorf("unsupported strategy kind %q", s.Kind)
	}
	if len(s.Names) == 0 {
		return fmt.Errorf("strategy %q requires at least one name", s.Kind)
	}
	return nil
}

// Validate checks every configured strategy.
func (s Strategies) Validate() error {
	for name, strategy := range map[string]Strategy{"mtta": s.MTTA, "mttr": s.MTTR, "mttd": s.MTTD} {
		if err := strategy.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Extract returns the duration in minutes for one incident. The second result
// is false when the incident does not contribute to the statistic. There is
// no fallback between kinds.
func (s Strategy) Extract(incident *Incident) (float64, bool) {
	switch s.Kind {
	case StrategyTimestamp:
		created, ok := incident.CreatedTime()
		if !ok {
			return 0, false
		}
		at, ok := incident.FindTimestamp(s.Names...)
		if !ok {
			return 0, false
		}
		return at.Sub(created).Minutes(), true
	case StrategyDurationMetric:
		seconds, ok := incident.FindDurationMetric(s.Names...)
		if !ok {
			return 0, false
		}
		return seconds / 60, true
	default:
		return 0, false
	}
}
