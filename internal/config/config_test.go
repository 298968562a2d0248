package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/incident-kpis/pkg/metrics"
)

const sampleYAML = `
server:
  port: "8081"
  environment: production
  log_level: debug
incidentio:
  enabled: true
  base_url: https://incidents.example.com
  api_key: from-yaml
  limit: 250
  requests_per_second: 5
  timeout: 10s
dashboard:
  default_timeframe: 7d
  cache_ttl: 2m
  refresh_interval: 10m
  warm_timeframes: [7d, 30d]
filter:
  severity_id: sev-critical
  field_id: cf-product
  categories: [Payments]
strategies:
  mttd:
    kind: timestamp
    names: [detected]
storage:
  redis:
    enabled: true
    address: redis:6379
`

type testFlags struct {
	port, env, level, path string
}

func (f testFlags) GetPort() string        { return f.port }
func (f testFlags) GetEnvironment() string { return f.env }
func (f testFlags) GetLogLevel() string    { return f.level }
func (f testFlags) GetConfigPath() string  { return f.path }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWithFlags_YAML(t *testing.T) {
	t.Setenv("INCIDENT_IO_API_KEY", "")
	path := writeConfig(t, sampleYAML)

	cfg := LoadWithFlags(testFlags{path: path})

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, ValidEnvironmentProduction, cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)

	assert.True(t, cfg.IncidentIO.Configured())
	assert.Equal(t, "https://incidents.example.com", cfg.IncidentIO.BaseURL)
	assert.Equal(t, "from-yaml", cfg.IncidentIO.APIKey)
	assert.Equal(t, 250, cfg.IncidentIO.Limit)
	assert.Equal(t, 10*time.Second, cfg.IncidentIO.Timeout)
	assert.Equal(t, DefaultEnrichmentConcurrency, cfg.IncidentIO.EnrichmentConcurrency)

	assert.Equal(t, "7d", cfg.Dashboard.DefaultTimeframe)
	assert.Equal(t, 2*time.Minute, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, []string{"7d", "30d"}, cfg.Dashboard.WarmTimeframes)
	assert.Equal(t, DefaultCoverage, cfg.Dashboard.Coverage)

	assert.Equal(t, metrics.Policy{SeverityID: "sev-critical", FieldID: "cf-product", Categories: []string{"Payments"}}, cfg.Filter)
	assert.Equal(t, metrics.StrategyTimestamp, cfg.Strategies.MTTD.Kind)
	assert.Equal(t, metrics.DefaultStrategies().MTTA, cfg.Strategies.MTTA, "missing strategies use defaults")

	assert.True(t, cfg.Storage.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, DefaultRedisKeyPrefix, cfg.Storage.Redis.KeyPrefix)
}

func TestLoadWithFlags_Precedence(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("PORT", "9000")
	t.Setenv("INCIDENT_IO_API_KEY", "from-env")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg := LoadWithFlags(testFlags{path: path, level: "warn"})

	assert.Equal(t, "9000", cfg.Port, "environment overrides YAML")
	assert.Equal(t, "warn", cfg.LogLevel, "flags override everything")
	assert.Equal(t, "from-env", cfg.IncidentIO.APIKey)
	assert.Equal(t, "cache.internal:6379", cfg.Storage.Redis.Address)

	cfg = LoadWithFlags(testFlags{path: path, port: "7000"})
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadWithFlags_Defaults(t *testing.T) {
	t.Setenv("INCIDENT_IO_API_KEY", "")
	cfg := LoadWithFlags(testFlags{path: filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.IncidentIO.Configured())
	assert.Equal(t, DefaultCacheTTL, cfg.Dashboard.CacheTTL)
	assert.Equal(t, DefaultTimeframe, cfg.Dashboard.DefaultTimeframe)
	assert.Zero(t, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, metrics.DefaultStrategies(), cfg.Strategies)
}

func TestLoadFromYAML_Malformed(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	cfg := loadFromYAML(path)
	assert.Equal(t, &YAMLConfig{}, cfg)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("1m", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("-1m", time.Hour))
}
