package proxy

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the forwarding endpoints under /api.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	group := app.Group("/api")

	group.Get("/incidents", handler.GetIncidents)
	group.Get("/severities", handler.GetSeverities)
}
