package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"webcv-utils/internal/store"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// errorJSON maps pipeline errors to the standard error envelope. Typed
// errors carry their own status code and kind label; everything else is a
// plain 500.
func errorJSON(c echo.Context, requestID string, err error) error {
	var ce *utils.CustomError
	if errors.As(err, &ce) {
		code := string(ce.Kind)
		if code == "" {
			code = "internal_error"
		}
		return c.JSON(ce.Code, models.NewErrorResponse(code, ce.Error(), requestID))
	}

	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, models.NewErrorResponse("not_found", "Record not found", requestID))
	}

	return c.JSON(http.StatusInternalServerError, models.NewErrorResponse("internal_error", err.Error(), requestID))
}

// requestIDFrom returns the request ID set by the validation middleware,
// generating one for paths that bypass it
func requestIDFrom(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}
