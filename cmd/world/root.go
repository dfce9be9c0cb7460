package main

import (
	"fmt"

	"github.com/deppfellow/world-api/internal/config"
	"github.com/deppfellow/world-api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "world",
	Short: "HTTP service around the world city/country dataset",
	Long: `world serves city lookups, population ratios and city registration
over HTTP, backed by PostgreSQL. Configuration is read from WORLD_*
environment variables (and a .env file when present).`,
	SilenceUsage: true,
}

// app is what every command needs before doing real work.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:           cfg,
		log:           logger.NewLogger(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}
