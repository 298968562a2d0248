package server

import (
	"log"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/redhat-appstudio/incident-kpis/apis/common"
	dashboardapi "github.com/redhat-appstudio/incident-kpis/apis/dashboard"
	"github.com/redhat-appstudio/incident-kpis/apis/health"
	"github.com/redhat-appstudio/incident-kpis/apis/prometheus"
	"github.com/redhat-appstudio/incident-kpis/apis/proxy"
	"github.com/redhat-appstudio/incident-kpis/internal/config"
	"github.com/redhat-appstudio/incident-kpis/internal/handlers"
	"github.com/redhat-appstudio/incident-kpis/internal/version"
	"github.com/redhat-appstudio/incident-kpis/pkg/dashboard"
	"github.com/redhat-appstudio/incident-kpis/pkg/incidentio"
	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
	"github.com/redhat-appstudio/incident-kpis/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server represents the HTTP server instance with all its components.
// It encapsulates the Fiber application, configuration, the dashboard
// assembler and its cache warmer.
type Server struct {
	// app is the Fiber HTTP application instance
	app *fiber.App

	// cfg contains the server configuration
	cfg *config.Config

	// assembler builds dashboards from incident.io data
	assembler *dashboard.Assembler

	// refresher keeps the dashboard cache warm, nil when disabled
	refresher *dashboard.Refresher

	// storageClient backs the shared cache, nil when Redis is disabled
	storageClient *storage.RedisClient
}

// New creates and initializes a new Server instance with the provided configuration.
// It sets up the Fiber application with middleware, routes, and the dashboard
// services. The server will be ready to start after this function returns.
func New(cfg *config.Config) *Server {
	// Initialize logger first
	if err := logger.InitFromConfig(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	app := newApp()

	// Initialize incident.io client if configured
	var (
		client *incidentio.Client
		source dashboard.Source
	)
	if cfg.IncidentIO.Configured() {
		client = incidentio.NewClient(cfg.IncidentIO.BaseURL, cfg.IncidentIO.APIKey,
			incidentio.WithTimeout(cfg.IncidentIO.Timeout),
			incidentio.WithRateLimit(requestsPerSecond(cfg.IncidentIO), burst(cfg.IncidentIO)),
		)
		source = incidentio.NewIncidents(client, cfg.IncidentIO.Limit).
			WithFilters(cfg.IncidentIO.Status, cfg.IncidentIO.Severity)
		logger.Infof("incident.io upstream enabled - Base URL: %s", baseURL(cfg.IncidentIO.BaseURL))
	} else if cfg.IncidentIO.Enabled {
		logger.Warnf("incident.io enabled but INCIDENT_IO_API_KEY environment variable not set, serving fallback data")
	} else {
		logger.Infof("incident.io upstream: disabled, serving fallback data")
	}

	// Initialize storage client if enabled
	var storageClient *storage.RedisClient
	if cfg.Storage.Redis.Enabled {
		storageConfig := storage.StorageConfig{
			Redis: storage.RedisConfig{
				Enabled:   cfg.Storage.Redis.Enabled,
				Address:   cfg.Storage.Redis.Address,
				Password:  cfg.Storage.Redis.Password,
				Database:  cfg.Storage.Redis.Database,
				KeyPrefix: cfg.Storage.Redis.KeyPrefix,
			},
		}

		var err error
		storageClient, err = storage.NewManager(storageConfig)
		if err != nil {
			logger.Fatalf("Failed to initialize Redis storage client: %v", err)
		}
		logger.Infof("Redis dashboard cache initialized successfully - Address: %s", cfg.Storage.Redis.Address)
	}

	if err := cfg.Strategies.Validate(); err != nil {
		logger.Warnf("Invalid metric strategies (%v), using defaults where needed", err)
	}

	recorder := prometheus.NewRecorder()
	opts := []dashboard.Option{
		dashboard.WithAggregator(metrics.NewAggregator(cfg.Filter, cfg.Strategies)),
		dashboard.WithTTL(cfg.Dashboard.CacheTTL),
		dashboard.WithCoverage(cfg.Dashboard.Coverage),
		dashboard.WithConcurrency(cfg.IncidentIO.EnrichmentConcurrency),
		dashboard.WithObserver(recorder),
	}
	if storageClient != nil {
		opts = append(opts, dashboard.WithStore(dashboard.NewRedisStore(storageClient, cfg.Dashboard.CacheTTL)))
	}
	assembler := dashboard.NewAssembler(source, opts...)

	// Route dependencies must stay untyped nil when a backend is absent
	var (
		pinger    health.Pinger
		forwarder proxy.Forwarder
	)
	if storageClient != nil {
		pinger = storageClient
	}
	if client != nil {
		forwarder = client
	}

	handlers.SetupRoutes(app, handlers.Dependencies{
		Health:    health.NewHandler(assembler, pinger),
		Dashboard: dashboardapi.NewHandler(assembler, cfg.Dashboard.DefaultTimeframe),
		Proxy:     proxy.NewHandler(forwarder),
		Recorder:  recorder,
	})

	refresher := dashboard.NewRefresher(assembler, cfg.Dashboard.WarmTimeframes, cfg.Dashboard.RefreshInterval)

	return &Server{
		app:           app,
		cfg:           cfg,
		assembler:     assembler,
		refresher:     refresher,
		storageClient: storageClient,
	}
}

// newApp creates the Fiber application with the faster JSON encoder and the
// shared middleware stack.
func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "Incident KPI Server " + version.GetVersion(),
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(common.ErrorResponse{
				Error:   true,
				Message: err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	return app
}

// Start starts the cache warmer and the HTTP server.
// Returns an error if the server fails to start.
func (s *Server) Start() error {
	if s.refresher != nil {
		logger.Info("Starting dashboard refresher thread...")
		go s.refresher.Start()
	}

	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown stops the cache warmer, the HTTP server and the storage client.
func (s *Server) Shutdown() error {
	s.refresher.Stop()

	err := s.app.Shutdown()
	if s.storageClient != nil {
		if closeErr := s.storageClient.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

func requestsPerSecond(cfg config.IncidentIOConfig) float64 {
	if cfg.RequestsPerSecond > 0 {
		return cfg.RequestsPerSecond
	}
	return incidentio.DefaultRequestsPerSecond
}

func burst(cfg config.IncidentIOConfig) int {
	if cfg.Burst > 0 {
		return cfg.Burst
	}
	return incidentio.DefaultBurst
}

func baseURL(url string) string {
	if url == "" {
		return incidentio.DefaultBaseURL
	}
	return url
}
