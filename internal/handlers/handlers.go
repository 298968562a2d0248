package handlers

import (
	"github.com/redhat-appstudio/incident-kpis/apis/dashboard"
	"github.com/redhat-appstudio/incident-kpis/apis/health"
	"github.com/redhat-appstudio/incident-kpis/apis/prometheus"
	"github.com/redhat-appstudio/incident-kpis/apis/proxy"
	"github.com/redhat-appstudio/incident-kpis/internal/version"

	"github.com/gofiber/fiber/v2"
)

// Dependencies carries the handlers registered by SetupRoutes.
type Dependencies struct {
	Health    *health.Handler
	Dashboard *dashboard.Handler
	Proxy     *proxy.Handler
	Recorder  *prometheus.Recorder
}

// SetupRoutes configures all HTTP routes for the Incident KPI Server.
// It registers API endpoints for health checks and other services using the API machinery pattern.
// This function should be called during server initialization.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// Register all APIs here - just add one line per API
	health.RegisterRoutes(app, deps.Health)
	dashboard.RegisterRoutes(app, deps.Dashboard)
	proxy.RegisterRoutes(app, deps.Proxy)
	prometheus.RegisterRoutes(app, deps.Recorder)

	// Root endpoint
	app.Get("/", RootHandler)
}

// RootHandler handles requests to the root endpoint ("/").
// It returns basic server information including name, version, and available API endpoints.
func RootHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Incident KPI Server",
		"version": version.GetShortVersion(),
		"docs":    "/api/v1/health",
		"endpoints": []string{
			"/api/v1/dashboard",
			"/api/v1/dashboard/refresh",
			"/api/incidents",
			"/api/severities",
			"/metrics",
		},
	})
}
