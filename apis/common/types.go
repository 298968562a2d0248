package common

// ErrorResponse represents a standardized error response structure.
// It provides consistent error formatting across all API endpoints.
type ErrorResponse struct {
	// Error indicates whether this is an error response
	Error bool `json:"error"`

	// Message contains the error message description
	Message string `json:"message"`
}

// UpstreamErrorResponse is returned by the forwarding endpoints. Status is
// set when the upstream answered with a non-2xx code, Message when the
// request could not be completed at all.
type UpstreamErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
