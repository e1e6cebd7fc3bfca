package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"careergenie-jobs/internal/aggregator"
	"careergenie-jobs/internal/cache"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    utils.FormatDuration(time.Since(startTime)),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests. The service is ready
// when at least one provider can serve searches; the cache is optional.
func ReadinessHandler(agg *aggregator.Aggregator, store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Debug("Readiness check requested", map[string]interface{}{"request_id": requestID})

		checks := map[string]string{"api": "ok"}

		sources := agg.Sources()
		status := "ready"
		code := http.StatusOK
		if len(sources) == 0 {
			checks["providers"] = "none available"
			status = "not ready"
			code = http.StatusServiceUnavailable
		} else {
			checks["providers"] = "ok"
		}

		stats := store.Stats(c.Request().Context())
		if stats.Enabled {
			checks["cache"] = stats.Backend
		} else {
			checks["cache"] = "disabled"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    utils.FormatDuration(time.Since(startTime)),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Liveness check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    utils.FormatDuration(time.Since(startTime)),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status
func StatusHandler(agg *aggregator.Aggregator, store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Debug("Status check requested", map[string]interface{}{"request_id": requestID})

		checks := map[string]string{
			"api": "operational",
		}
		for _, source := range agg.Sources() {
			checks["provider:"+source] = "available"
		}

		stats := store.Stats(c.Request().Context())
		if stats.Enabled {
			checks["cache"] = "operational"
		} else {
			checks["cache"] = "disabled"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    utils.FormatDuration(time.Since(startTime)),
			Checks:    checks,
		})
	}
}
