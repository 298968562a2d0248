package config

import (
	"time"

	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

// Config represents the main application configuration structure.
// It contains all configuration settings for the Incident KPI Server,
// including server settings, the incident.io upstream, dashboard
// assembly and storage.
type Config struct {
	// HTTP server port (e.g., "3000")
	Port string

	// Application environment (e.g., "development", "production")
	Environment string

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string

	// IncidentIO upstream configuration
	IncidentIO IncidentIOConfig

	// Dashboard assembly configuration
	Dashboard DashboardConfig

	// Filter is the classification filter applied to counts and means
	Filter metrics.Policy

	// Strategies select how MTTA, MTTR and MTTD durations are extracted
	Strategies metrics.Strategies

	// Storage configuration for the shared dashboard cache
	Storage StorageConfig
}

// IncidentIOConfig holds configuration for the incident.io API.
type IncidentIOConfig struct {
	// Whether the upstream is enabled (true/false)
	Enabled bool

	// API root (e.g., "https://api.incident.io")
	BaseURL string

	// API key injected as a bearer credential
	APIKey string

	// Maximum number of incidents fetched per window
	Limit int

	// Upstream status and severity filters applied to listings
	Status   string
	Severity string

	// Client side throttling
	RequestsPerSecond float64
	Burst             int

	// HTTP timeout for a single upstream request
	Timeout time.Duration

	// Parallel timestamp requests per fetch cycle
	EnrichmentConcurrency int
}

// Configured reports whether the upstream can be called.
func (c IncidentIOConfig) Configured() bool {
	return c.Enabled && c.APIKey != ""
}

// DashboardConfig holds configuration for dashboard assembly.
type DashboardConfig struct {
	// Selector used when a request does not name one (e.g., "30d")
	DefaultTimeframe string

	// How long an assembled dashboard is served from cache
	CacheTTL time.Duration

	// Interval of the background cache warmer, zero disables it
	RefreshInterval time.Duration

	// Selectors refreshed by the cache warmer
	WarmTimeframes []string

	// Static infrastructure coverage value (e.g., "99.9%")
	Coverage string
}

// ServerConfig represents server-related configuration settings.
// It contains HTTP server configuration including port, environment,
// and logging settings that can be overridden by command-line flags.
type ServerConfig struct {
	// HTTP server port (e.g., "3000")
	Port string `yaml:"port"`

	// Application environment (e.g., "development", "production")
	Environment string `yaml:"environment"`

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string `yaml:"log_level"`
}

// IncidentIOYAMLConfig represents the upstream configuration from YAML files.
type IncidentIOYAMLConfig struct {
	Enabled               bool    `yaml:"enabled"`
	BaseURL               string  `yaml:"base_url"`
	APIKey                string  `yaml:"api_key"`
	Limit                 int     `yaml:"limit"`
	Status                string  `yaml:"status"`
	Severity              string  `yaml:"severity"`
	RequestsPerSecond     float64 `yaml:"requests_per_second"`
	Burst                 int     `yaml:"burst"`
	Timeout               string  `yaml:"timeout"`
	EnrichmentConcurrency int     `yaml:"enrichment_concurrency"`
}

// DashboardYAMLConfig represents dashboard configuration from YAML files.
// Durations are strings such as "5m".
type DashboardYAMLConfig struct {
	DefaultTimeframe string   `yaml:"default_timeframe"`
	CacheTTL         string   `yaml:"cache_ttl"`
	RefreshInterval  string   `yaml:"refresh_interval"`
	WarmTimeframes   []string `yaml:"warm_timeframes"`
	Coverage         string   `yaml:"coverage"`
}

// StorageConfig holds configuration for the shared dashboard cache.
type StorageConfig struct {
	// Redis storage configuration
	Redis RedisYAMLConfig `yaml:"redis"`
}

// RedisYAMLConfig represents Redis configuration from YAML files.
type RedisYAMLConfig struct {
	// Whether Redis storage is enabled (true/false)
	Enabled bool `yaml:"enabled"`

	// Redis server address (e.g., "localhost:6379")
	Address string `yaml:"address"`

	// Redis password for authentication
	Password string `yaml:"password"`

	// Redis database number (0-15)
	Database int `yaml:"database"`

	// Key prefix for all Redis keys (e.g., "incident-kpis")
	KeyPrefix string `yaml:"key_prefix"`
}

// YAMLConfig represents the structure of the YAML configuration file.
type YAMLConfig struct {
	Server     ServerConfig         `yaml:"server"`
	IncidentIO IncidentIOYAMLConfig `yaml:"incidentio"`
	Dashboard  DashboardYAMLConfig  `yaml:"dashboard"`
	Filter     metrics.Policy       `yaml:"filter"`
	Strategies metrics.Strategies   `yaml:"strategies"`
	Storage    StorageConfig        `yaml:"storage"`
}
