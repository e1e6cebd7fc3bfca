package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"careergenie-jobs/internal/aggregator"
	"careergenie-jobs/internal/api/routes"
	"careergenie-jobs/internal/cache"
	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/internal/providers"
	"careergenie-jobs/internal/scheduler"
	"careergenie-jobs/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseGlobalLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting CareerGenie Job Aggregator")

	// Cache store: Redis when reachable, otherwise a pass-through. A down
	// cache degrades to uncached searches, it never blocks startup.
	var store cache.Store = cache.NewNoop()
	if cfg.Cache.Enabled {
		redisStore, err := cache.NewRedis(cfg)
		if err != nil {
			logger.Warn("Cache unavailable, continuing without caching", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			store = redisStore
		}
	}
	defer store.Close()

	// Persistence sink is optional
	var sink aggregator.Sink
	var pgSink *storage.PostgresSink
	if cfg.Storage.Enabled {
		pgSink, err = storage.NewPostgres(context.Background(), cfg)
		if err != nil {
			logger.Warn("Storage unavailable, continuing without persistence", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			sink = pgSink
			defer pgSink.Close()
		}
	}

	// Provider registry and orchestrator
	registry := providers.BuildRegistry(cfg)
	agg := aggregator.New(cfg, registry, store, sink)

	// Background refresh of configured searches
	var refresher *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		refresher = scheduler.New(cfg, agg)
		refresher.Start()
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, agg, store)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if refresher != nil {
			logger.Info("Stopping scheduler...")
			refresher.Stop()
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{
		"address": address,
	})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
