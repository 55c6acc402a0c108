package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// longRunningPaths get the extended timeout: inference against a local
// model can legitimately take minutes
var longRunningPaths = []string{
	"/api/v1/applications/generate",
}

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the standard timeout to most endpoints and
// a longer one to generation endpoints
func SelectiveTimeoutConfig(standard, long time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timeout := standard
			for _, path := range longRunningPaths {
				if strings.HasPrefix(c.Path(), path) || strings.HasPrefix(c.Request().URL.Path, path) {
					timeout = long
					break
				}
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
