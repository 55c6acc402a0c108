package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"webcv-utils/internal/logging"
	"webcv-utils/internal/settings"
	"webcv-utils/pkg/models"
)

// GetSettingsHandler returns a user's provider settings with decoded keys
func GetSettingsHandler(svc *settings.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		userID := c.Param("user_id")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("validation_failed", "user_id is required", requestID))
		}

		result, err := svc.GetUserSettings(c.Request().Context(), userID)
		if err != nil {
			return errorJSON(c, requestID, err)
		}
		return c.JSON(http.StatusOK, result)
	}
}

// UpdateSettingsHandler merges the submitted fields into a user's stored
// settings
func UpdateSettingsHandler(svc *settings.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.GetGlobalLogger()

		userID := c.Param("user_id")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("validation_failed", "user_id is required", requestID))
		}

		var req models.UpdateSettingsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse("invalid_request", "Invalid request format", requestID))
		}

		result, err := svc.Update(c.Request().Context(), userID, &req)
		if err != nil {
			return errorJSON(c, requestID, err)
		}

		logger.Info("Settings updated", map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
		})
		return c.JSON(http.StatusOK, result)
	}
}
