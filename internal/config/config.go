package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

var (
	// Cache for configuration to avoid repeated file reads
	configCache *Config
	configOnce  sync.Once
)

// Load creates a new Config instance using YAML configuration and the
// environment only.
func Load() *Config {
	return LoadWithFlags(nil)
}

// LoadCached creates a cached Config instance using only YAML configuration.
// This function caches the configuration after the first load.
func LoadCached() *Config {
	configOnce.Do(func() {
		configCache = LoadWithFlags(nil)
	})
	return configCache
}

// Flags defines the interface for command-line flag access.
type Flags interface {
	GetPort() string
	GetEnvironment() string
	GetLogLevel() string
	GetConfigPath() string
}

// LoadWithFlags creates a new Config instance by loading configuration from
// YAML files and applying environment and command-line overrides.
//
// Configuration precedence (highest to lowest):
// 1. Command-line flags (for server settings only)
// 2. Environment variables
// 3. YAML configuration files
// 4. Default values
func LoadWithFlags(flgs Flags) *Config {
	path := getEnv("CONFIG_PATH", DefaultConfigPath)
	if flgs != nil && flgs.GetConfigPath() != "" {
		path = flgs.GetConfigPath()
	}
	yamlConfig := loadFromYAML(path)

	port := getEnv("PORT", yamlConfig.Server.Port)
	if port == "" {
		port = DefaultPort
	}
	if flgs != nil && flgs.GetPort() != "" {
		port = flgs.GetPort()
	}

	environment := getEnv("ENVIRONMENT", yamlConfig.Server.Environment)
	if environment == "" {
		environment = DefaultEnvironment
	}
	if flgs != nil && flgs.GetEnvironment() != "" {
		environment = flgs.GetEnvironment()
	}

	logLevel := getEnv("LOG_LEVEL", yamlConfig.Server.LogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	if flgs != nil && flgs.GetLogLevel() != "" {
		logLevel = flgs.GetLogLevel()
	}

	// The API key is a secret and normally only comes from the environment
	apiKey := getEnv("INCIDENT_IO_API_KEY", yamlConfig.IncidentIO.APIKey)
	baseURL := getEnv("INCIDENT_IO_BASE_URL", yamlConfig.IncidentIO.BaseURL)
	enabled := yamlConfig.IncidentIO.Enabled
	if v, err := strconv.ParseBool(os.Getenv("INCIDENT_IO_ENABLED")); err == nil {
		enabled = v
	}

	concurrency := yamlConfig.IncidentIO.EnrichmentConcurrency
	if concurrency <= 0 {
		concurrency = DefaultEnrichmentConcurrency
	}

	defaultTimeframe := yamlConfig.Dashboard.DefaultTimeframe
	if defaultTimeframe == "" {
		defaultTimeframe = DefaultTimeframe
	}

	coverage := yamlConfig.Dashboard.Coverage
	if coverage == "" {
		coverage = DefaultCoverage
	}

	// Redis configuration - support environment variables
	redisConfig := yamlConfig.Storage.Redis
	redisHost := getEnv("REDIS_HOST", "")
	redisPort := getEnv("REDIS_PORT", "")
	redisPassword := getEnv("REDIS_PASSWORD", redisConfig.Password)

	redisAddress := redisConfig.Address
	if redisHost != "" && redisPort != "" {
		redisAddress = redisHost + ":" + redisPort
	} else if redisHost != "" {
		redisAddress = redisHost + ":6379"
	}

	keyPrefix := redisConfig.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}

	return &Config{
		Port:        port,
		Environment: environment,
		LogLevel:    logLevel,
		IncidentIO: IncidentIOConfig{
			Enabled:               enabled,
			BaseURL:               baseURL,
			APIKey:                apiKey,
			Limit:                 yamlConfig.IncidentIO.Limit,
			Status:                yamlConfig.IncidentIO.Status,
			Severity:              yamlConfig.IncidentIO.Severity,
			RequestsPerSecond:     yamlConfig.IncidentIO.RequestsPerSecond,
			Burst:                 yamlConfig.IncidentIO.Burst,
			Timeout:               parseDuration(yamlConfig.IncidentIO.Timeout, 0),
			EnrichmentConcurrency: concurrency,
		},
		Dashboard: DashboardConfig{
			DefaultTimeframe: defaultTimeframe,
			CacheTTL:         parseDuration(yamlConfig.Dashboard.CacheTTL, DefaultCacheTTL),
			RefreshInterval:  parseDuration(yamlConfig.Dashboard.RefreshInterval, 0),
			WarmTimeframes:   yamlConfig.Dashboard.WarmTimeframes,
			Coverage:         coverage,
		},
		Filter:     yamlConfig.Filter,
		Strategies: withDefaultStrategies(yamlConfig.Strategies),
		Storage: StorageConfig{
			Redis: RedisYAMLConfig{
				Enabled:   redisConfig.Enabled,
				Address:   redisAddress,
				Password:  redisPassword,
				Database:  redisConfig.Database,
				KeyPrefix: keyPrefix,
			},
		},
	}
}

func loadFromYAML(path string) *YAMLConfig {
	config := &YAMLConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return &YAMLConfig{}
	}
	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// withDefaultStrategies fills every metric left out of the YAML file with
// its default extraction.
func withDefaultStrategies(s metrics.Strategies) metrics.Strategies {
	defaults := metrics.DefaultStrategies()
	if s.MTTA.Kind == "" {
		s.MTTA = defaults.MTTA
	}
	if s.MTTR.Kind == "" {
		s.MTTR = defaults.MTTR
	}
	if s.MTTD.Kind == "" {
		s.MTTD = defaults.MTTD
	}
	return s
}
