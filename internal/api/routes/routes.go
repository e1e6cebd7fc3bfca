package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"careergenie-jobs/internal/aggregator"
	"careergenie-jobs/internal/api/handlers"
	"careergenie-jobs/internal/api/middleware"
	"careergenie-jobs/internal/cache"
	"careergenie-jobs/internal/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, agg *aggregator.Aggregator, store cache.Store) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.WriteTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(agg, store))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(agg, store))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/jobs/search", handlers.SearchHandler(agg))
		v1.GET("/jobs/:id", handlers.JobDetailsHandler(agg))
		v1.GET("/sources", handlers.SourcesHandler(agg))

		// Cache administration routes
		cacheGroup := v1.Group("/cache")
		{
			cacheGroup.DELETE("", handlers.CacheClearHandler(store))
			cacheGroup.GET("/stats", handlers.CacheStatsHandler(store))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "CareerGenie Job Aggregator",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
