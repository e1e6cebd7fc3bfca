package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"careergenie-jobs/internal/cache"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

// CacheClearHandler removes every cached search result
func CacheClearHandler(store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		deleted, err := store.Clear(c.Request().Context())
		if err != nil {
			logger.Error("Cache clear failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "cache_clear_failed",
				Message:   "Failed to clear the search cache",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Cache cleared via admin endpoint", map[string]interface{}{
			"request_id": requestID,
			"deleted":    deleted,
		})

		return c.JSON(http.StatusOK, models.CacheClearResponse{
			Success:     true,
			KeysCleared: int(deleted),
		})
	}
}

// CacheStatsHandler reports cache backend state
func CacheStatsHandler(store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats := store.Stats(c.Request().Context())

		return c.JSON(http.StatusOK, models.CacheStatsResponse{
			Enabled:        stats.Enabled,
			TotalKeys:      int(stats.Keys),
			TotalSizeBytes: stats.Bytes,
			TotalSizeMB:    math.Round(float64(stats.Bytes)/(1024*1024)*100) / 100,
			Error:          stats.Error,
		})
	}
}
