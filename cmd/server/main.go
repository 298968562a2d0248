package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redhat-appstudio/incident-kpis/internal/config"
	"github.com/redhat-appstudio/incident-kpis/internal/server"
	"github.com/redhat-appstudio/incident-kpis/pkg/logger"

	"github.com/joho/godotenv"
)

// main is the entry point for the Incident KPI Server application.
// It performs the following operations:
//  1. Parses command-line flags for server configuration
//  2. Loads environment variables from .env file if present
//  3. Loads configuration from YAML files with flag overrides
//  4. Initializes the HTTP server with the dashboard services
//  5. Starts the dashboard cache warmer (if enabled)
//  6. Begins listening for HTTP requests until SIGINT or SIGTERM
func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if flags.Help {
		flags.showHelp(os.Stdout)
		return
	}
	if flags.Version {
		flags.showVersion(os.Stdout)
		return
	}
	if err := flags.validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadWithFlags(flags)

	// Create and start server
	srv := server.New(cfg)
	defer logger.Sync()

	logger.Infof(" Starting on port %s", cfg.Port)
	logger.Infof(" Environment: %s", cfg.Environment)
	logger.Infof("Log level: %s", cfg.LogLevel)

	if cfg.IncidentIO.Configured() {
		logger.Infof("incident.io upstream: enabled (limit: %d)", cfg.IncidentIO.Limit)
	} else {
		logger.Infof("incident.io upstream: not configured")
	}

	if cfg.Dashboard.RefreshInterval > 0 {
		logger.Infof("Dashboard refresher: enabled (interval: %s, timeframes: %v)", cfg.Dashboard.RefreshInterval, cfg.Dashboard.WarmTimeframes)
	} else {
		logger.Infof("Dashboard refresher: disabled")
	}

	if !cfg.Filter.IsZero() {
		logger.Infof("Classification filter: severity %q, field %q, categories %v", cfg.Filter.SeverityID, cfg.Filter.FieldID, cfg.Filter.Categories)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
