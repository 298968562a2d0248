package health

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/incident-kpis/pkg/dashboard"
)

type fakeUpstream struct {
	configured bool
	reachable  bool
	status     dashboard.APIStatus
}

func (f fakeUpstream) Configured() bool                 { return f.configured }
func (f fakeUpstream) CheckHealth(context.Context) bool { return f.reachable }
func (f fakeUpstream) Status() dashboard.APIStatus      { return f.status }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name            string
		upstream        Upstream
		storage         Pinger
		expectedStatus  string
		expectedStorage string
	}{
		{
			name:            "unconfigured upstream",
			upstream:        fakeUpstream{status: dashboard.StatusChecking},
			expectedStatus:  StatusHealthy,
			expectedStorage: StorageDisabled,
		},
		{
			name:            "reachable upstream with cache",
			upstream:        fakeUpstream{configured: true, reachable: true, status: dashboard.StatusHealthy},
			storage:         fakePinger{},
			expectedStatus:  StatusHealthy,
			expectedStorage: StorageHealthy,
		},
		{
			name:            "unreachable upstream",
			upstream:        fakeUpstream{configured: true, status: dashboard.StatusError},
			expectedStatus:  StatusDegraded,
			expectedStorage: StorageDisabled,
		},
		{
			name:            "unreachable cache",
			upstream:        fakeUpstream{configured: true, reachable: true},
			storage:         fakePinger{err: errors.New("connection refused")},
			expectedStatus:  StatusDegraded,
			expectedStorage: StorageUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			RegisterRoutes(app, NewHandler(tt.upstream, tt.storage))

			resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, tt.expectedStatus, response.Status)
			assert.Equal(t, tt.expectedStorage, response.Storage)
			assert.NotEmpty(t, response.Version)
		})
	}
}
