package incidentio

import (
	"context"
	"fmt"
	"time"

	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

// Incidents exposes the incident.io API in terms of the aggregator's model.
// It is the upstream source used by the dashboard assembler.
type Incidents struct {
	client   *Client
	limit    int
	status   string
	severity string
}

// NewIncidents creates an incidents source on top of client. limit caps the
// number of incidents fetched per window; zero uses DefaultLimit.
func NewIncidents(client *Client, limit int) *Incidents {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Incidents{
		client: client,
		limit:  limit,
	}
}

// WithFilters restricts listings to the given upstream status and severity.
func (i *Incidents) WithFilters(status, severity string) *Incidents {
	i.status = status
	i.severity = severity
	return i
}

// List fetches the incidents created inside window.
func (i *Incidents) List(ctx context.Context, window metrics.TimeWindow) ([]metrics.Incident, error) {
	start := time.Now()

	raw, err := i.client.ListIncidents(ctx, ListParams{
		Status:   i.status,
		Severity: i.severity,
		After:    window.Start,
		Before:   window.End,
		Limit:    i.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}

	incidents := make([]metrics.Incident, len(raw))
	for idx := range raw {
		incidents[idx] = raw[idx].ToIncident()
	}

	logger.Debugf("incident.io listing completed: %d items in %v", len(incidents), time.Since(start))
	return incidents, nil
}

// Timestamps fetches the lifecycle timestamps of one incident.
func (i *Incidents) Timestamps(ctx context.Context, incidentID string) ([]metrics.Timestamp, error) {
	raw, err := i.client.GetIncidentTimestamps(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	return ToTimestamps(raw), nil
}

// HealthCheck reports upstream reachability.
func (i *Incidents) HealthCheck(ctx context.Context) bool {
	return i.client.HealthCheck(ctx)
}
