package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/redhat-appstudio/incident-kpis/internal/version"
	"github.com/redhat-appstudio/incident-kpis/pkg/dashboard"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"

	StorageDisabled    = "disabled"
	StorageHealthy     = "healthy"
	StorageUnreachable = "unreachable"
)

var startTime = time.Now()

// Upstream is the part of the dashboard assembler the health check reads.
type Upstream interface {
	Configured() bool
	CheckHealth(ctx context.Context) bool
	Status() dashboard.APIStatus
}

// Pinger is implemented by storage backends able to report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler answers health check requests.
type Handler struct {
	upstream Upstream
	storage  Pinger
}

// NewHandler creates a health handler. storage may be nil when Redis is disabled.
func NewHandler(upstream Upstream, storage Pinger) *Handler {
	return &Handler{upstream: upstream, storage: storage}
}

// Health handles health check requests and returns server status information.
// The server itself is "healthy" as long as it answers; a configured but
// unreachable upstream or an unreachable cache marks it "degraded".
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx := c.UserContext()

	response := HealthResponse{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Version:   version.GetShortVersion(),
		Uptime:    time.Since(startTime).String(),
		Storage:   StorageDisabled,
	}

	if h.upstream != nil {
		response.Upstream = UpstreamHealth{
			Configured:      h.upstream.Configured(),
			Reachable:       h.upstream.CheckHealth(ctx),
			DashboardStatus: string(h.upstream.Status()),
		}
		if response.Upstream.Configured && !response.Upstream.Reachable {
			response.Status = StatusDegraded
		}
	}

	if h.storage != nil {
		response.Storage = StorageHealthy
		if err := h.storage.Ping(ctx); err != nil {
			response.Storage = StorageUnreachable
			response.Status = StatusDegraded
		}
	}

	return c.JSON(response)
}
