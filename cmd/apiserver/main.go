// API server entry point for the legal research engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/turtacn/LegalSpend-Research/internal/bootstrap"
	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/LegalSpend-Research/internal/interfaces/http"
)

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lexrisk-apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before configuration")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		return err
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	gin.SetMode(cfg.Server.Mode)

	logger.Info("starting legal research API server",
		logging.String("version", version),
		logging.Int("http_port", cfg.Server.Port),
		logging.String("research_base_url", cfg.Research.BaseURL),
		logging.Bool("authenticated", cfg.Research.APIKey != ""),
		logging.Bool("metrics", cfg.Metrics.Enabled),
	)

	if *configPath != "" {
		if err := watchLogLevel(*configPath, logger); err != nil {
			logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	engine, err := bootstrap.NewEngine(cfg, logger)
	if err != nil {
		return err
	}
	srv := httpserver.NewServer(cfg.Server, engine.Handler(version), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("HTTP server error", logging.Err(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
