package health

import "time"

// HealthResponse represents the health check response structure.
// It contains server status information for monitoring and health checks,
// including uptime, version, and service availability.
type HealthResponse struct {
	// Status indicates the current server status (e.g., "healthy", "degraded")
	Status string `json:"status"`

	// Timestamp is when the health check was performed
	Timestamp time.Time `json:"timestamp"`

	// Version is the server version information
	Version string `json:"version"`

	// Uptime is the server uptime duration
	Uptime string `json:"uptime"`

	// Upstream reports the incident.io collaborator
	Upstream UpstreamHealth `json:"upstream"`

	// Storage is "disabled", "healthy" or "unreachable"
	Storage string `json:"storage"`
}

// UpstreamHealth describes the incident.io upstream as seen by the server.
type UpstreamHealth struct {
	Configured bool `json:"configured"`
	Reachable  bool `json:"reachable"`

	// DashboardStatus is the outcome of the last dashboard cycle
	DashboardStatus string `json:"dashboard_status"`
}
