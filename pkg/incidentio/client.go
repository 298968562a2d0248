package incidentio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
)

// APIError is returned for any non-2xx response from the upstream.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("incident.io API error: %d - %s", e.StatusCode, e.Message)
}

// Client handles HTTP communication with the incident.io API.
// The API key is attached by an oauth2 transport so callers never see it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit overrides the request rate sent to the upstream.
// A non-positive rate disables throttling.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewClient creates a new incident.io API client authenticated with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"},
	)
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = DefaultHTTPTimeout

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams filters the incidents listing.
type ListParams struct {
	Status   string
	Severity string
	After    time.Time
	Before   time.Time
	Limit    int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set(ParamStatus, p.Status)
	}
	if p.Severity != "" {
		q.Set(ParamSeverity, p.Severity)
	}
	if !p.After.IsZero() {
		q.Set(ParamCreatedAfter, p.After.UTC().Format(time.RFC3339))
	}
	if !p.Before.IsZero() {
		q.Set(ParamCreatedBefore, p.Before.UTC().Format(time.RFC3339))
	}
	return q
}

// ListIncidents fetches incidents matching params, following pagination
// cursors until the limit is reached or the last page is returned.
func (c *Client) ListIncidents(ctx context.Context, params ListParams) ([]Incident, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := params.values()
	incidents := make([]Incident, 0, min(limit, DefaultPageSize*2))
	page := 1

	for len(incidents) < limit {
		query.Set(ParamPageSize, strconv.Itoa(min(DefaultPageSize, limit-len(incidents))))

		var list IncidentList
		if err := c.get(ctx, IncidentsEndpoint, query, &list); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrIncidentFetch, err)
		}

		incidents = append(incidents, list.Incidents...)
		logger.Debugf("Fetched incidents page %d (%d items)", page, len(list.Incidents))

		if list.PaginationMeta.After == "" || len(list.Incidents) == 0 {
			break
		}
		query.Set(ParamCursor, list.PaginationMeta.After)
		page++
	}

	if len(incidents) > limit {
		incidents = incidents[:limit]
	}
	return incidents, nil
}

// GetIncidentTimestamps fetches the lifecycle timestamps of one incident.
func (c *Client) GetIncidentTimestamps(ctx context.Context, incidentID string) ([]Timestamp, error) {
	endpoint := fmt.Sprintf(TimestampsEndpointFormat, url.PathEscape(incidentID))

	var list TimestampList
	if err := c.get(ctx, endpoint, nil, &list); err != nil {
		return nil, fmt.Errorf("%s for %s: %w", ErrTimestampFetch, incidentID, err)
	}
	return list.Timestamps, nil
}

// GetSeverities fetches all severity definitions.
func (c *Client) GetSeverities(ctx context.Context) ([]Severity, error) {
	var list SeverityList
	if err := c.get(ctx, SeveritiesEndpoint, nil, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSeverityFetch, err)
	}
	return list.Severities, nil
}

// GetStatuses fetches all incident status definitions.
func (c *Client) GetStatuses(ctx context.Context) ([]IncidentStatus, error) {
	var list StatusList
	if err := c.get(ctx, StatusesEndpoint, nil, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrStatusFetch, err)
	}
	return list.Statuses, nil
}

// HealthCheck reports whether the upstream answers an authenticated request.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if _, err := c.Forward(ctx, SeveritiesEndpoint, nil); err != nil {
		logger.Warnf("incident.io API health check failed: %v", err)
		return false
	}
	return true
}

// Forward performs an authenticated GET and returns the raw response body.
// Non-2xx responses are returned as *APIError.
func (c *Client) Forward(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRateLimiterWait, err)
	}

	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrHTTPRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrReadResponseBody, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	body, err := c.Forward(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w", ErrIncidentParse, err)
	}
	return nil
}
