package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"careergenie-jobs/internal/aggregator"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
	"careergenie-jobs/pkg/utils"
)

var validate = validator.New()

// SearchHandler handles aggregated job search requests
func SearchHandler(agg *aggregator.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Info("Search request received", map[string]interface{}{
			"request_id": requestID,
		})

		var req models.SearchRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind search request", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Search request validation failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		jobs, cached := agg.Search(c.Request().Context(), &req)

		sources := make(map[string]bool)
		for i := range jobs {
			sources[jobs[i].Source] = true
		}
		sourceList := make([]string, 0, len(sources))
		for source := range sources {
			sourceList = append(sourceList, source)
		}

		response := models.SearchResponse{
			Success:        true,
			Jobs:           jobs,
			Total:          len(jobs),
			Cached:         cached,
			Sources:        sourceList,
			ProcessingTime: utils.FormatDuration(time.Since(startTime)),
			RequestID:      requestID,
		}

		logger.Info("Search request completed", map[string]interface{}{
			"request_id":      requestID,
			"query":           req.Query,
			"jobs":            len(jobs),
			"cached":          cached,
			"processing_time": utils.FormatDuration(time.Since(startTime)),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// JobDetailsHandler looks a single job up by its external ID. The source
// defaults to jsearch and can be overridden with the source query param.
func JobDetailsHandler(agg *aggregator.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		jobID := c.Param("id")
		source := c.QueryParam("source")

		job, err := agg.JobDetails(c.Request().Context(), source, jobID)
		if err != nil {
			logger.Error("Job detail lookup failed", map[string]interface{}{
				"request_id": requestID,
				"job_id":     jobID,
				"source":     source,
				"error":      err.Error(),
			})

			status := http.StatusBadGateway
			code := "detail_fetch_failed"
			var ce *utils.CustomError
			if errors.As(err, &ce) {
				switch ce.Code {
				case http.StatusNotFound:
					status, code = http.StatusNotFound, "job_not_found"
				case http.StatusBadRequest:
					status, code = http.StatusBadRequest, "unsupported_source"
				}
			}

			return c.JSON(status, models.ErrorResponse{
				Error:     code,
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.JobDetailsResponse{
			Success:   true,
			Job:       job,
			RequestID: requestID,
		})
	}
}

// SourcesHandler lists the job sources currently available for searching
func SourcesHandler(agg *aggregator.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		sources := agg.Sources()

		return c.JSON(http.StatusOK, models.SourcesResponse{
			Sources: sources,
			Total:   len(sources),
		})
	}
}
