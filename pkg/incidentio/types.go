package incidentio

import (
	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

// IncidentList represents a page of incidents returned by the incidents endpoint.
type IncidentList struct {
	Incidents      []Incident     `json:"incidents"`
	PaginationMeta PaginationMeta `json:"pagination_meta"`
}

// PaginationMeta carries the cursor for the next page.
// After is empty on the last page.
type PaginationMeta struct {
	After            string `json:"after,omitempty"`
	PageSize         int    `json:"page_size"`
	TotalRecordCount int    `json:"total_record_count,omitempty"`
}

// Incident represents a single incident as returned by incident.io.
// Time fields are kept as strings; see metrics.Incident.
type Incident struct {
	// ID is the unique identifier for this incident
	ID string `json:"id"`

	// Reference is the human-readable reference (e.g., "INC-123")
	Reference string `json:"reference,omitempty"`

	// Name is the incident title
	Name string `json:"name"`

	// Summary provides a brief description of the incident
	Summary string `json:"summary,omitempty"`

	// Severity indicates the impact level of the incident
	Severity Severity `json:"severity"`

	// Status indicates the current state of the incident
	Status IncidentStatus `json:"status"`

	// CreatedAt indicates when the incident was first created
	CreatedAt string `json:"created_at"`

	// UpdatedAt indicates when the incident was last modified
	UpdatedAt string `json:"updated_at,omitempty"`

	// Timestamps contains the lifecycle events when already embedded by the upstream
	Timestamps []Timestamp `json:"timestamps,omitempty"`

	// DurationMetrics carries durations computed by incident.io
	DurationMetrics []DurationMetricValue `json:"duration_metrics,omitempty"`

	// CustomFieldEntries carries the classification fields of the incident
	CustomFieldEntries []CustomFieldEntry `json:"custom_field_entries,omitempty"`
}

// Severity is a severity definition.
type Severity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rank        int    `json:"rank"`
	Description string `json:"description,omitempty"`
}

// IncidentStatus is a status definition. Category is one of "triage",
// "live", "learning", "closed", "declined", "merged", "canceled".
type IncidentStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Timestamp is a named lifecycle event of an incident.
type Timestamp struct {
	ID         string `json:"id,omitempty"`
	IncidentID string `json:"incident_id,omitempty"`
	Name       string `json:"name"`
	OccurredAt string `json:"occurred_at"`
}

// TimestampList is the response of the timestamps endpoint.
type TimestampList struct {
	Timestamps []Timestamp `json:"timestamps"`
}

// SeverityList is the response of the severities endpoint.
type SeverityList struct {
	Severities []Severity `json:"severities"`
}

// StatusList is the response of the incident statuses endpoint.
type StatusList struct {
	Statuses []IncidentStatus `json:"incident_statuses"`
}

// DurationMetricValue is one upstream-computed duration.
// ValueSeconds is nil while the metric cannot be computed yet.
type DurationMetricValue struct {
	DurationMetric DurationMetric `json:"duration_metric"`
	ValueSeconds   *float64       `json:"value_seconds,omitempty"`
}

// DurationMetric identifies a duration metric definition.
type DurationMetric struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomFieldEntry holds the values of one custom field.
type CustomFieldEntry struct {
	CustomField CustomField        `json:"custom_field"`
	Values      []CustomFieldValue `json:"values"`
}

// CustomField identifies a custom field definition.
type CustomField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomFieldValue is one selected value. Exactly one of the fields is set
// depending on the custom field type.
type CustomFieldValue struct {
	ValueText         string             `json:"value_text,omitempty"`
	ValueOption       *ValueOption       `json:"value_option,omitempty"`
	ValueCatalogEntry *ValueCatalogEntry `json:"value_catalog_entry,omitempty"`
}

// ValueOption is a select option.
type ValueOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ValueCatalogEntry is a catalog entry reference.
type ValueCatalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Text returns the display value of the custom field value.
func (v CustomFieldValue) Text() string {
	switch {
	case v.ValueCatalogEntry != nil:
		return v.ValueCatalogEntry.Name
	case v.ValueOption != nil:
		return v.ValueOption.Value
	default:
		return v.ValueText
	}
}

// ToIncident converts the wire representation into the aggregator's model.
func (i *Incident) ToIncident() metrics.Incident {
	incident := metrics.Incident{
		ID:        i.ID,
		Name:      i.Name,
		CreatedAt: i.CreatedAt,
		Severity: metrics.Severity{
			ID:   i.Severity.ID,
			Name: i.Severity.Name,
			Rank: i.Severity.Rank,
		},
		Status: metrics.Status{
			ID:       i.Status.ID,
			Name:     i.Status.Name,
			Category: i.Status.Category,
		},
		Timestamps: ToTimestamps(i.Timestamps),
	}

	for _, dm := range i.DurationMetrics {
		if dm.ValueSeconds == nil {
			continue
		}
		incident.DurationMetrics = append(incident.DurationMetrics, metrics.DurationMetric{
			ID:      dm.DurationMetric.ID,
			Name:    dm.DurationMetric.Name,
			Seconds: *dm.ValueSeconds,
		})
	}

	for _, entry := range i.CustomFieldEntries {
		values := make([]string, 0, len(entry.Values))
		for _, v := range entry.Values {
			if text := v.Text(); text != "" {
				values = append(values, text)
			}
		}
		incident.CustomFields = append(incident.CustomFields, metrics.CustomField{
			ID:     entry.CustomField.ID,
			Name:   entry.CustomField.Name,
			Values: values,
		})
	}

	return incident
}

// ToTimestamps converts wire timestamps into the aggregator's model.
func ToTimestamps(timestamps []Timestamp) []metrics.Timestamp {
	if len(timestamps) == 0 {
		return nil
	}
	converted := make([]metrics.Timestamp, len(timestamps))
	for i, ts := range timestamps {
		converted[i] = metrics.Timestamp{Name: ts.Name, OccurredAt: ts.OccurredAt}
	}
	return converted
}
