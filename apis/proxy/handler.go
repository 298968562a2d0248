package proxy

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/redhat-appstudio/incident-kpis/apis/common"
	"github.com/redhat-appstudio/incident-kpis/pkg/incidentio"
	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
)

const (
	// IncidentsMaxAge is the browser cache lifetime of incident listings
	IncidentsMaxAge = "max-age=300"

	// SeveritiesMaxAge is the browser cache lifetime of severity definitions
	SeveritiesMaxAge = "max-age=3600"

	errIncidentsFetch  = "Failed to fetch incidents"
	errSeveritiesFetch = "Failed to fetch severities"
	errInternal        = "Internal server error"
	errNotConfigured   = "incident.io API key is not configured"
)

// Forwarder performs authenticated upstream GETs.
type Forwarder interface {
	Forward(ctx context.Context, endpoint string, query url.Values) ([]byte, error)
}

// Handler forwards browser requests to incident.io with the API key attached
// server side.
type Handler struct {
	upstream Forwarder
}

// NewHandler creates a forwarding handler. A nil upstream answers 503.
func NewHandler(upstream Forwarder) *Handler {
	return &Handler{upstream: upstream}
}

// GetIncidents handles GET /api/incidents
func (h *Handler) GetIncidents(c *fiber.Ctx) error {
	return h.forward(c, incidentio.IncidentsEndpoint, IncidentsMaxAge, errIncidentsFetch)
}

// GetSeverities handles GET /api/severities
func (h *Handler) GetSeverities(c *fiber.Ctx) error {
	return h.forward(c, incidentio.SeveritiesEndpoint, SeveritiesMaxAge, errSeveritiesFetch)
}

func (h *Handler) forward(c *fiber.Ctx, endpoint, maxAge, failure string) error {
	if h.upstream == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(common.UpstreamErrorResponse{
			Error:  errNotConfigured,
			Status: fiber.StatusServiceUnavailable,
		})
	}

	body, err := h.upstream.Forward(c.UserContext(), endpoint, queryValues(c))
	if err != nil {
		var apiErr *incidentio.APIError
		if errors.As(err, &apiErr) {
			logger.Errorf("incident.io API error on %s: %d", endpoint, apiErr.StatusCode)
			return c.Status(apiErr.StatusCode).JSON(common.UpstreamErrorResponse{
				Error:  failure,
				Status: apiErr.StatusCode,
			})
		}

		logger.Errorf("Error forwarding %s: %v", endpoint, err)
		return c.Status(fiber.StatusInternalServerError).JSON(common.UpstreamErrorResponse{
			Error:   errInternal,
			Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderCacheControl, maxAge)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// queryValues copies every query parameter, repeated keys included.
func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
