package logger

import (
	"github.com/redhat-appstudio/incident-kpis/internal/config"
)

// FromConfig derives the logger configuration from the application config.
// Production deployments log JSON, everything else logs to the console.
func FromConfig(cfg *config.Config) *Config {
	loggerConfig := DefaultConfig()

	if cfg.LogLevel != "" {
		loggerConfig.Level = LogLevel(cfg.LogLevel)
	}

	if cfg.Environment == config.ValidEnvironmentProduction {
		loggerConfig.Format = FormatJSON
	}

	return loggerConfig
}

func InitFromConfig(cfg *config.Config) error {
	return Init(FromConfig(cfg))
}
