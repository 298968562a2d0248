package dashboard

import (
	"context"
	"time"

	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

// APIStatus describes the outcome of the most recent fetch cycle.
type APIStatus string

const (
	// StatusChecking is the initial state and the state of an unconfigured upstream
	StatusChecking APIStatus = "checking"
	// StatusHealthy means the last cycle produced live data
	StatusHealthy APIStatus = "healthy"
	// StatusError means the last cycle failed and fallback data was served
	StatusError APIStatus = "error"
)

// Trend is the arrow shown next to a KPI.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// KPI is one display card of the dashboard.
type KPI struct {
	Value      string `json:"value"`
	Trend      Trend  `json:"trend"`
	TrendValue string `json:"trendValue"`
	Subtitle   string `json:"subtitle"`
}

// KPIData holds every card shown on the dashboard.
type KPIData struct {
	MTTA          KPI `json:"mtta"`
	MTTR          KPI `json:"mttr"`
	MTTD          KPI `json:"mttd"`
	IncidentCount KPI `json:"incidentCount"`
	Coverage      KPI `json:"coverage"`
	Uptime        KPI `json:"uptime"`
}

// Data is the assembled dashboard for one timeframe.
type Data struct {
	KPIData     KPIData   `json:"kpiData"`
	LastUpdated time.Time `json:"lastUpdated"`
	IsLive      bool      `json:"isLive"`
	APIStatus   APIStatus `json:"apiStatus"`
	Timeframe   string    `json:"timeframe"`

	// Metrics is the raw aggregation behind the cards, nil for fallback data
	Metrics *metrics.Aggregated `json:"metrics,omitempty"`
}

// Source is the upstream collaborator the assembler reads incidents from.
type Source interface {
	// List returns the incidents created inside window.
	List(ctx context.Context, window metrics.TimeWindow) ([]metrics.Incident, error)

	// Timestamps returns the lifecycle timestamps of one incident.
	Timestamps(ctx context.Context, incidentID string) ([]metrics.Timestamp, error)

	// HealthCheck reports upstream reachability.
	HealthCheck(ctx context.Context) bool
}

// Observer is notified once per completed fetch cycle.
type Observer interface {
	Observe(data *Data)
}
