package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"webcv-utils/internal/config"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// ReadinessHandler reports whether the service can take traffic. The
// posting cache is optional so a Redis failure only degrades the check.
func ReadinessHandler(cache *utils.JobPostingCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}

		status := "ready"
		if cache == nil {
			checks["cache"] = "disabled"
		} else if err := cache.Ping(c.Request().Context()); err != nil {
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler provides service status including the configured engine
// and default model
func StatusHandler(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":            "operational",
				"scraper_engine": cfg.Scraper.Engine,
				"default_model":  cfg.AI.DefaultModel,
			},
		})
	}
}
