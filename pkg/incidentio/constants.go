package incidentio

import "time"

// API configuration constants
const (
	// DefaultBaseURL is the incident.io API root
	DefaultBaseURL = "https://api.incident.io"

	// IncidentsEndpoint lists incidents
	IncidentsEndpoint = "v2/incidents"

	// TimestampsEndpointFormat returns the lifecycle timestamps of one incident
	TimestampsEndpointFormat = "v2/incidents/%s/timestamps"

	// SeveritiesEndpoint lists severity definitions
	SeveritiesEndpoint = "v1/severities"

	// StatusesEndpoint lists incident status definitions
	StatusesEndpoint = "v1/incident_statuses"
)

// Query parameters understood by the incidents endpoint
const (
	ParamStatus        = "status[one_of]"
	ParamSeverity      = "severity[one_of]"
	ParamCreatedAfter  = "created_at[gte]"
	ParamCreatedBefore = "created_at[lte]"
	ParamCursor        = "after"
	ParamPageSize      = "page_size"
)

// HTTP configuration constants
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPageSize is the number of incidents requested per page
	DefaultPageSize = 100

	// DefaultLimit caps the number of incidents fetched per window
	DefaultLimit = 1000

	// DefaultRequestsPerSecond keeps the client below the upstream rate limit
	DefaultRequestsPerSecond = 15

	// DefaultBurst is the number of requests allowed above the steady rate
	DefaultBurst = 20
)

// Error messages
const (
	ErrMissingConfig    = "missing required configuration"
	ErrHTTPRequest      = "HTTP request failed"
	ErrIncidentFetch    = "failed to fetch incidents"
	ErrIncidentParse    = "failed to parse incident data"
	ErrTimestampFetch   = "failed to fetch incident timestamps"
	ErrSeverityFetch    = "failed to fetch severities"
	ErrStatusFetch      = "failed to fetch incident statuses"
	ErrRateLimiterWait  = "rate limiter wait failed"
	ErrReadResponseBody = "failed to read response"
)
