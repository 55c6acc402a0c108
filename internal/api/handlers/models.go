package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"webcv-utils/internal/ai"
	"webcv-utils/pkg/models"
)

// ModelsHandler lists the models currently available for generation. Cloud
// models are always listed; local models only when the local runtime
// reports them installed.
func ModelsHandler(avail *ai.AvailabilityService) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		return c.JSON(http.StatusOK, models.ModelsResponse{
			Models:    avail.AvailableModels(c.Request().Context()),
			RequestID: requestID,
		})
	}
}
