package dashboard

import "github.com/redhat-appstudio/incident-kpis/pkg/dashboard"

// TimeframesResponse lists the selectors accepted by the dashboard endpoints.
type TimeframesResponse struct {
	Timeframes []string `json:"timeframes"`
	Default    string   `json:"default"`
}

// StatusResponse reports the outcome of the last dashboard cycle.
type StatusResponse struct {
	APIStatus  dashboard.APIStatus `json:"apiStatus"`
	Configured bool                `json:"configured"`
}
