package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/redhat-appstudio/incident-kpis/internal/config"
	"github.com/redhat-appstudio/incident-kpis/internal/version"
)

const (
	AppName        = "Incident KPI Server"
	AppDescription = "Incident response KPIs computed from incident.io"
)

var (
	validEnvironments = []string{config.ValidEnvironmentDevelopment, config.ValidEnvironmentProduction}
	validLogLevels    = []string{config.ValidLogLevelDebug, config.ValidLogLevelInfo, config.ValidLogLevelWarn, config.ValidLogLevelError}
)

// environmentHelp lists the settings that only come from the environment or config.yaml.
const environmentHelp = `
Environment:
  INCIDENT_IO_API_KEY       incident.io API key; without it fallback data is served
  INCIDENT_IO_BASE_URL      incident.io API root (default: https://api.incident.io)
  INCIDENT_IO_ENABLED       set to false to serve fallback data even with a key
  REDIS_HOST, REDIS_PORT    shared dashboard cache between replicas
  REDIS_PASSWORD
  CONFIG_PATH               same as -config

Examples:
  incident-kpis -env production -log-level warn
  incident-kpis -port 8080 -config /etc/incident-kpis/config.yaml
`

// ServerFlags are the command-line overrides. Empty values leave the
// setting to the environment, config.yaml or the built-in default.
type ServerFlags struct {
	Port        string
	Environment string
	LogLevel    string
	ConfigPath  string

	Help    bool
	Version bool

	fs *flag.FlagSet
}

func parseFlags(args []string, output io.Writer) (*ServerFlags, error) {
	f := &ServerFlags{fs: flag.NewFlagSet("incident-kpis", flag.ContinueOnError)}
	fs := f.fs
	fs.SetOutput(output)

	fs.StringVar(&f.Port, "port", "", fmt.Sprintf("HTTP port (default %s)", config.DefaultPort))
	fs.StringVar(&f.Environment, "env", "", fmt.Sprintf("environment: %s (default %s)",
		strings.Join(validEnvironments, ", "), config.DefaultEnvironment))
	fs.StringVar(&f.LogLevel, "log-level", "", fmt.Sprintf("log level: %s (default %s)",
		strings.Join(validLogLevels, ", "), config.DefaultLogLevel))
	fs.StringVar(&f.ConfigPath, "config", "", fmt.Sprintf("YAML configuration file (default %s)", config.DefaultConfigPath))

	for _, name := range []string{"help", "h"} {
		fs.BoolVar(&f.Help, name, false, "show help and exit")
	}
	for _, name := range []string{"version", "v"} {
		fs.BoolVar(&f.Version, name, false, "show version and exit")
	}
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *ServerFlags) showHelp(w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n\nUsage:\n  incident-kpis [flags]\n\nFlags:\n", AppName, AppDescription)
	f.fs.SetOutput(w)
	f.fs.PrintDefaults()
	fmt.Fprint(w, environmentHelp)
}

func (f *ServerFlags) showVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", AppName, version.GetVersion())
	fmt.Fprintf(w, "Build info: %s\n", version.GetBuildInfo())
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
}

func (f *ServerFlags) validate() error {
	if f.Environment != "" && !slices.Contains(validEnvironments, f.Environment) {
		return fmt.Errorf("invalid environment: %s (must be one of: %s)", f.Environment, strings.Join(validEnvironments, ", "))
	}
	if f.LogLevel != "" && !slices.Contains(validLogLevels, f.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", f.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return nil
}

// config.Flags

func (f *ServerFlags) GetPort() string { return f.Port }
func (f *ServerFlags) GetEnvironment() string { return f.Environment }
func (f *ServerFlags) GetLogLevel() string { return f.LogLevel }
func (f *ServerFlags) GetConfigPath() string { return f.ConfigPath }
