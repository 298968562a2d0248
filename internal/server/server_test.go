package server

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/incident-kpis/internal/config"
	"github.com/redhat-appstudio/incident-kpis/pkg/dashboard"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Port:        config.DefaultPort,
		Environment: config.DefaultEnvironment,
		LogLevel:    "error",
		Dashboard: config.DashboardConfig{
			DefaultTimeframe: "30d",
			CacheTTL:         time.Minute,
			Coverage:         "99.5%",
		},
	}
}

func TestNew_WithoutUpstream(t *testing.T) {
	srv := New(newTestConfig())
	require.NotNil(t, srv)
	assert.Nil(t, srv.refresher)
	assert.False(t, srv.assembler.Configured())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/v1/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var data dashboard.Data
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Equal(t, dashboard.StatusChecking, data.APIStatus)

	resp, err = srv.App().Test(httptest.NewRequest("GET", "/api/incidents", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestNew_ErrorHandler(t *testing.T) {
	srv := New(newTestConfig())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/v1/dashboard?timeframe=forever", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": true, "message": "unknown timeframe: forever"}`, string(body))
}

func TestNew_RootAndMetrics(t *testing.T) {
	srv := New(newTestConfig())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = srv.App().Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
