package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"webcv-utils/internal/ai"
	"webcv-utils/internal/api/handlers"
	"webcv-utils/internal/api/middleware"
	"webcv-utils/internal/config"
	"webcv-utils/internal/orchestrator"
	"webcv-utils/internal/settings"
	"webcv-utils/internal/store"
	"webcv-utils/pkg/utils"
)

// Dependencies carries everything the route handlers need
type Dependencies struct {
	Config       *config.Config
	Orchestrator *orchestrator.Orchestrator
	Store        store.Store
	Settings     *settings.Service
	Availability *ai.AvailabilityService
	Cache        *utils.JobPostingCache
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	cfg := deps.Config

	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.NewRateLimiter(cfg).Middleware())
	// Generation endpoints get the local-inference timeout, everything else
	// the standard read timeout
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, cfg.AI.LocalTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Cache))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(cfg))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.POST("/fetch", handlers.FetchJobHandler(cfg, deps.Orchestrator))
		}

		applications := v1.Group("/applications")
		{
			applications.POST("/generate", handlers.GenerateApplicationHandler(cfg, deps.Orchestrator))
			applications.GET("", handlers.ListApplicationsHandler(deps.Store))
			applications.GET("/:id", handlers.GetApplicationHandler(deps.Store))
			applications.DELETE("/:id", handlers.DeleteApplicationHandler(deps.Store))
		}

		userSettings := v1.Group("/settings")
		{
			userSettings.GET("/:user_id", handlers.GetSettingsHandler(deps.Settings))
			userSettings.PUT("/:user_id", handlers.UpdateSettingsHandler(deps.Settings))
		}

		v1.GET("/models", handlers.ModelsHandler(deps.Availability))
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "WebCV Application Generator",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
