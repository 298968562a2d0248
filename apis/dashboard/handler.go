package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redhat-appstudio/incident-kpis/pkg/dashboard"
	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

// Handler serves assembled dashboards.
type Handler struct {
	assembler        *dashboard.Assembler
	defaultTimeframe string
}

// NewHandler creates a dashboard handler. An empty or unknown
// defaultTimeframe falls back to metrics.DefaultTimeframe.
func NewHandler(assembler *dashboard.Assembler, defaultTimeframe string) *Handler {
	if !metrics.IsTimeframe(defaultTimeframe) {
		defaultTimeframe = metrics.DefaultTimeframe
	}
	return &Handler{
		assembler:        assembler,
		defaultTimeframe: defaultTimeframe,
	}
}

// GetDashboard handles GET /api/v1/dashboard?timeframe=30d&refresh=true
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	timeframe, err := h.timeframe(c)
	if err != nil {
		return err
	}
	return c.JSON(h.assembler.Fetch(c.UserContext(), timeframe, c.QueryBool("refresh")))
}

// RefreshDashboard handles POST /api/v1/dashboard/refresh?timeframe=30d
func (h *Handler) RefreshDashboard(c *fiber.Ctx) error {
	timeframe, err := h.timeframe(c)
	if err != nil {
		return err
	}
	return c.JSON(h.assembler.Refresh(c.UserContext(), timeframe))
}

// GetTimeframes handles GET /api/v1/dashboard/timeframes
func (h *Handler) GetTimeframes(c *fiber.Ctx) error {
	return c.JSON(TimeframesResponse{
		Timeframes: metrics.Timeframes(),
		Default:    h.defaultTimeframe,
	})
}

// GetStatus handles GET /api/v1/dashboard/status
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		APIStatus:  h.assembler.Status(),
		Configured: h.assembler.Configured(),
	})
}

func (h *Handler) timeframe(c *fiber.Ctx) (string, error) {
	timeframe := c.Query("timeframe", h.defaultTimeframe)
	if !metrics.IsTimeframe(timeframe) {
		return "", fiber.NewError(fiber.StatusBadRequest, "unknown timeframe: "+timeframe)
	}
	return timeframe, nil
}
