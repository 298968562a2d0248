package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/incident-kpis/apis/common"
	"github.com/redhat-appstudio/incident-kpis/pkg/incidentio"
)

func newTestApp(upstream Forwarder) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, NewHandler(upstream))
	return app
}

func do(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestGetIncidents_ForwardsQueryAndCredential(t *testing.T) {
	server := incidentio.CreateTestServer(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/incidents", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["status[one_of]"])
		_, _ = w.Write([]byte(`{"incidents":[],"pagination_meta":{"page_size":25}}`))
	})
	defer server.Close()

	app := newTestApp(incidentio.CreateTestClient(server.URL))
	resp, body := do(t, app, "/api/incidents?page_size=25&status%5Bone_of%5D=a&status%5Bone_of%5D=b")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, IncidentsMaxAge, resp.Header.Get(fiber.HeaderCacheControl))
	assert.JSONEq(t, `{"incidents":[],"pagination_meta":{"page_size":25}}`, string(body))
}

func TestGetSeverities_CacheControl(t *testing.T) {
	server := incidentio.CreateTestServer(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/severities", r.URL.Path)
		incidentio.WriteJSON(w, http.StatusOK, incidentio.SeverityList{})
	})
	defer server.Close()

	app := newTestApp(incidentio.CreateTestClient(server.URL))
	resp, _ := do(t, app, "/api/severities")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, SeveritiesMaxAge, resp.Header.Get(fiber.HeaderCacheControl))
}

func TestForward_UpstreamError(t *testing.T) {
	server := incidentio.CreateTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	app := newTestApp(incidentio.CreateTestClient(server.URL))
	resp, body := do(t, app, "/api/incidents")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderCacheControl))

	var response common.UpstreamErrorResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, common.UpstreamErrorResponse{Error: "Failed to fetch incidents", Status: http.StatusForbidden}, response)
}

func TestForward_TransportError(t *testing.T) {
	server := incidentio.CreateTestServer(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	app := newTestApp(incidentio.CreateTestClient(server.URL))
	resp, body := do(t, app, "/api/severities")

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var response common.UpstreamErrorResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "Internal server error", response.Error)
	assert.NotEmpty(t, response.Message)
}

func TestForward_NotConfigured(t *testing.T) {
	app := newTestApp(nil)
	resp, _ := do(t, app, "/api/incidents")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
