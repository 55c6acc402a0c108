package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/orchestrator"
	"webcv-utils/pkg/models"
)

var validate = validator.New()

// FetchJobHandler handles job posting fetch requests
func FetchJobHandler(cfg *config.Config, orch *orchestrator.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()

		var req models.FetchJobRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind fetch request", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("invalid_request", "Invalid request format", requestID))
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Fetch request validation failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("validation_failed", err.Error(), requestID))
		}

		logger.Info("Fetch request received", map[string]interface{}{
			"request_id": requestID,
			"url":        req.URL,
		})

		job, engine, cached, err := orch.FetchJobDetails(c.Request().Context(), req.URL, req.Options)
		if err != nil {
			logger.Error("Fetch request failed", map[string]interface{}{
				"request_id": requestID,
				"url":        req.URL,
				"error":      err.Error(),
			})
			return errorJSON(c, requestID, err)
		}

		logger.Info("Fetch request completed", map[string]interface{}{
			"request_id":      requestID,
			"job_title":       job.Title,
			"company":         job.CompanyName,
			"engine":          engine,
			"cached":          cached,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, models.FetchJobResponse{
			Success:        true,
			Job:            job,
			ProcessingTime: time.Since(startTime),
			Engine:         engine,
			Cached:         cached,
			RequestID:      requestID,
		})
	}
}
