package incidentio

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/goccy/go-json"
)

// CreateTestIncident creates a test incident with default values
func CreateTestIncident(id string, createdAt time.Time) Incident {
	return Incident{
		ID:        id,
		Reference: "INC-" + id,
		Name:      "Test incident " + id,
		Summary:   "Test incident summary for " + id,
		Severity: Severity{
			ID:   "sev-major",
			Name: "Major",
			Rank: 2,
		},
		Status: IncidentStatus{
			ID:       "st-closed",
			Name:     "Closed",
			Category: "closed",
		},
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		UpdatedAt: createdAt.UTC().Format(time.RFC3339),
	}
}

// CreateTestIncidentList creates a test incident page with the provided incidents
func CreateTestIncidentList(incidents []Incident, after string) *IncidentList {
	return &IncidentList{
		Incidents: incidents,
		PaginationMeta: PaginationMeta{
			After:            after,
			PageSize:         len(incidents),
			TotalRecordCount: len(incidents),
		},
	}
}

// CreateTestServer starts an httptest server answering with handler.
func CreateTestServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// CreateTestClient creates a client against baseURL without throttling
func CreateTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-api-key", WithTimeout(5*time.Second), WithRateLimit(0, 0))
}

// WriteJSON writes v as a JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
