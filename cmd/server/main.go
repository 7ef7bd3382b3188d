package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/hvztracker/internal/api"
	"github.com/mcoot/hvztracker/internal/config"
	"github.com/mcoot/hvztracker/internal/factory"
)

func main() {
	// Configuration comes from the environment, optionally seeded by .env
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	// run owns every deferred cleanup, so exit only after it returns
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) (err error) {
	factoryCfg, err := factory.FromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("configure application: %w", err)
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		// Drains queued notifications and closes storage
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close application", slog.String("error", closeErr.Error()))
			if err == nil {
				err = closeErr
			}
		}
	}()

	if cfg.BootstrapAPIKey != "" {
		if err := app.AuthService.Bootstrap(context.Background(), cfg.BootstrapAPIKey); err != nil {
			return fmt.Errorf("register bootstrap api key: %w", err)
		}
		logger.Info("bootstrap api key registered")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger: logger,
		App:    app,
	})
	server := api.NewServer(router, api.ServerConfigFrom(cfg), logger)
	// Feed streams only end when their hub closes
	server.OnShutdown(app.HubManager.CloseAll)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Housekeeping for in-memory caches
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.AuthService.CleanVerified()
				app.HubManager.CleanupEmptyHubs()
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return server.Shutdown(context.Background())
	}
}
