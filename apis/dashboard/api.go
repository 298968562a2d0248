package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the dashboard API routes under /api/v1/dashboard.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	group := app.Group("/api/v1/dashboard")

	group.Get("/", handler.GetDashboard)
	group.Post("/refresh", handler.RefreshDashboard)
	group.Get("/timeframes", handler.GetTimeframes)
	group.Get("/status", handler.GetStatus)
}
