package metrics

import "time"

// Incident is the aggregator's view of a single incident record.
// Time values are kept as the raw strings received from the upstream so that
// a malformed value only removes that value from the computation instead of
// failing the decode of a whole page.
type Incident struct {
	// ID is the opaque upstream identifier, unique within a fetch window
	ID string `json:"id"`

	// Name is the human readable incident title
	Name string `json:"name,omitempty"`

	// CreatedAt is the RFC 3339 creation time
	CreatedAt string `json:"created_at"`

	// Severity of the incident
	Severity Severity `json:"severity"`

	// Status of the incident
	Status Status `json:"status"`

	// Timestamps are the named lifecycle events. Not guaranteed to be sorted.
	Timestamps []Timestamp `json:"timestamps,omitempty"`

	// DurationMetrics are durations pre-computed by the upstream
	DurationMetrics []DurationMetric `json:"duration_metrics,omitempty"`

	// CustomFields map classification fields to their selected values
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// Severity identifies the impact level of an incident.
type Severity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Status identifies the lifecycle state of an incident.
// Category is one of the upstream categories such as "live" or "closed".
type Status struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Timestamp is a named lifecycle event such as "acknowledged" or "resolved".
type Timestamp struct {
	Name       string `json:"name"`
	OccurredAt string `json:"occurred_at"`
}

// DurationMetric is a duration measured by the upstream system.
type DurationMetric struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
}

// CustomField holds the values selected for one classification field.
type CustomField struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// CreatedTime parses CreatedAt. It reports false when the value is missing or malformed.
func (i *Incident) CreatedTime() (time.Time, bool) {
	return parseTime(i.CreatedAt)
}

// FindTimestamp returns the time of the first timestamp, in list order,
// whose name is one of names and whose value parses. Empty or malformed
// entries are skipped so a later candidate can still match.
func (i *Incident) FindTimestamp(names ...string) (time.Time, bool) {
	for _, ts := range i.Timestamps {
		if !contains(names, ts.Name) {
			continue
		}
		if t, ok := parseTime(ts.OccurredAt); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindDurationMetric returns the seconds of the first duration metric whose
// ID or name is one of names.
func (i *Incident) FindDurationMetric(names ...string) (float64, bool) {
	for _, dm := range i.DurationMetrics {
		if contains(names, dm.ID) || contains(names, dm.Name) {
			return dm.Seconds, true
		}
	}
	return 0, false
}

// FieldValues returns the values of the custom field matching field by ID or
// name. The second result is false when the incident does not carry the field.
func (i *Incident) FieldValues(field string) ([]string, bool) {
	for _, cf := range i.CustomFields {
		if cf.ID == field || cf.Name == field {
			return cf.Values, true
		}
	}
	return nil, false
}

// IsResolved reports whether the incident carries a resolution timestamp.
func (i *Incident) IsResolved() bool {
	_, ok := i.FindTimestamp(ResolutionTimestampNames...)
	return ok
}

// WithTimestamps returns a copy of the incident carrying the given timestamps.
// The receiver is left untouched.
func (i Incident) WithTimestamps(timestamps []Timestamp) Incident {
	if timestamps == nil {
		timestamps = []Timestamp{}
	}
	i.Timestamps = timestamps
	return i
}

// Aggregated holds the KPIs derived from one window of incidents.
// It is recomputed on every fetch and never persisted on its own.
type Aggregated struct {
	// MTTA is the mean time to acknowledge in minutes
	MTTA float64 `json:"mtta"`

	// MTTR is the mean time to resolution in minutes
	MTTR float64 `json:"mttr"`

	// MTTD is the mean time to detect in minutes
	MTTD float64 `json:"mttd"`

	// IncidentCount is the number of incidents selected by the filter policy
	IncidentCount int `json:"incident_count"`

	// SeverityBreakdown counts filtered incidents per severity name
	SeverityBreakdown map[string]int `json:"severity_breakdown"`

	// StatusBreakdown counts all incidents per status name
	StatusBreakdown map[string]int `json:"status_breakdown"`

	// Uptime is the percentage of the window not covered by incident durations
	Uptime float64 `json:"uptime"`

	// Trends are percentage changes versus the previous window
	Trends Trends `json:"trends"`
}

// Trends holds percentage changes of each KPI versus the previous window.
type Trends struct {
	MTTA          float64 `json:"mtta"`
	MTTR          float64 `json:"mttr"`
	MTTD          float64 `json:"mttd"`
	IncidentCount float64 `json:"incident_count"`
}

func parseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
