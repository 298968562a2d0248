package prometheus

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes exposes the recorder's registry on /metrics for scraping.
func RegisterRoutes(app *fiber.App, recorder *Recorder) {
	if recorder != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(recorder.Registry(), promhttp.HandlerOpts{})))
	} else {
		app.Get("/metrics", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusServiceUnavailable).SendString("metrics not available")
		})
	}
}
