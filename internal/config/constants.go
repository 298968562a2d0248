package config

import "time"

// Default configuration values
const (
	// DefaultPort is the default HTTP server port
	DefaultPort = "3000"

	// DefaultEnvironment is the default deployment environment
	DefaultEnvironment = "development"

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"

	// DefaultConfigPath is the YAML configuration file read at startup
	DefaultConfigPath = "configs/config.yaml"

	// DefaultCacheTTL is how long an assembled dashboard is served from cache
	DefaultCacheTTL = 5 * time.Minute

	// DefaultTimeframe is the dashboard window used when none is requested
	DefaultTimeframe = "30d"

	// DefaultCoverage is the static infrastructure coverage shown on the dashboard
	DefaultCoverage = "99.9%"

	// DefaultEnrichmentConcurrency bounds parallel timestamp requests per cycle
	DefaultEnrichmentConcurrency = 10

	// DefaultRedisKeyPrefix prefixes every Redis key
	DefaultRedisKeyPrefix = "incident-kpis"
)

// Valid environment values
const (
	ValidEnvironmentDevelopment = "development"
	ValidEnvironmentProduction  = "production"
)

// Valid log level values
const (
	ValidLogLevelDebug = "debug"
	ValidLogLevelInfo  = "info"
	ValidLogLevelWarn  = "warn"
	ValidLogLevelError = "error"
)
