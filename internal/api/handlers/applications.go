package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/orchestrator"
	"webcv-utils/internal/store"
	"webcv-utils/pkg/models"
)

// GenerateApplicationHandler handles application generation requests. The
// posting comes either from a URL (fetched inline) or pre-fetched in the
// request body.
func GenerateApplicationHandler(cfg *config.Config, orch *orchestrator.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()

		var req models.GenerateApplicationRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("invalid_request", "Invalid request format", requestID))
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("validation_failed", err.Error(), requestID))
		}
		if req.URL == "" && req.Job == nil {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("validation_failed", "either url or job must be provided", requestID))
		}

		logger.Info("Generation request received", map[string]interface{}{
			"request_id": requestID,
			"user_id":    req.UserID,
			"model":      req.Model,
			"url":        req.URL,
		})

		ctx := c.Request().Context()

		var result *orchestrator.GenerationResult
		var job *models.JobPosting
		var err error
		if req.Job != nil {
			job = req.Job
			result, err = orch.GenerateApplication(ctx, req.UserID, req.Model, job)
		} else {
			result, job, err = orch.GenerateFromURL(ctx, req.UserID, req.Model, req.URL, req.Options)
		}
		if err != nil {
			logger.Error("Generation request failed", map[string]interface{}{
				"request_id": requestID,
				"user_id":    req.UserID,
				"error":      err.Error(),
			})
			return errorJSON(c, requestID, err)
		}

		var applicationID string
		if req.Save {
			app, saveErr := orch.SaveApplication(ctx, req.UserID, job, result)
			if saveErr != nil {
				logger.Error("Failed to save generated application", map[string]interface{}{
					"request_id": requestID,
					"user_id":    req.UserID,
					"error":      saveErr.Error(),
				})
				return errorJSON(c, requestID, saveErr)
			}
			applicationID = app.ID
		}

		logger.Info("Generation request completed", map[string]interface{}{
			"request_id":      requestID,
			"user_id":         req.UserID,
			"model":           string(result.Model),
			"degraded":        result.Degraded,
			"saved":           req.Save,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, models.GenerateApplicationResponse{
			Success:        true,
			CoverLetter:    result.CoverLetter,
			Resume:         result.Resume,
			Degraded:       result.Degraded,
			ApplicationID:  applicationID,
			Model:          string(result.Model),
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		})
	}
}

// ListApplicationsHandler lists a user's saved applications
func ListApplicationsHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		userID := c.QueryParam("user_id")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("validation_failed", "user_id query parameter is required", requestID))
		}

		apps, err := st.ListApplications(c.Request().Context(), userID)
		if err != nil {
			return errorJSON(c, requestID, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"applications": apps,
			"count":        len(apps),
			"request_id":   requestID,
		})
	}
}

// GetApplicationHandler returns one saved application by ID
func GetApplicationHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		app, err := st.GetApplication(c.Request().Context(), c.Param("id"))
		if err != nil {
			return errorJSON(c, requestID, err)
		}
		return c.JSON(http.StatusOK, app)
	}
}

// DeleteApplicationHandler removes a saved application
func DeleteApplicationHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		if err := st.DeleteApplication(c.Request().Context(), c.Param("id")); err != nil {
			return errorJSON(c, requestID, err)
		}

		logging.GetGlobalLogger().Info("Application deleted", map[string]interface{}{
			"request_id":     requestID,
			"application_id": c.Param("id"),
		})

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"request_id": requestID,
			"timestamp":  time.Now(),
		})
	}
}
