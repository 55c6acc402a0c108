package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"webcv-utils/internal/ai"
	"webcv-utils/internal/api/routes"
	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/orchestrator"
	"webcv-utils/internal/scraper"
	"webcv-utils/internal/settings"
	"webcv-utils/internal/store"
	"webcv-utils/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting WebCV application generator", map[string]interface{}{
		"engine":        cfg.Scraper.Engine,
		"default_model": cfg.AI.DefaultModel,
	})

	// Persistence
	st, err := store.New(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Optional posting cache
	var cache *utils.JobPostingCache
	if cfg.Redis.Enabled {
		cache = utils.NewJobPostingCache(cfg.Redis.URL, cfg.Scraper.CacheTTL)
	}
	if cache != nil {
		logger.Info("Posting cache enabled", map[string]interface{}{"ttl": cfg.Scraper.CacheTTL.String()})
	}

	// Services
	settingsService := settings.NewService(st)
	factory := ai.NewFactory(cfg, settingsService)
	availability := ai.NewAvailabilityService(cfg)
	engines := scraper.NewEngineFactory(cfg)
	orch := orchestrator.New(cfg, engines, cache, factory, st)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, routes.Dependencies{
		Config:       cfg,
		Orchestrator: orch,
		Store:        st,
		Settings:     settingsService,
		Availability: availability,
		Cache:        cache,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if cache != nil {
			if err := cache.Close(); err != nil {
				logger.Error("Error closing posting cache", map[string]interface{}{"error": err.Error()})
			}
		}
		if err := st.Close(); err != nil {
			logger.Error("Error closing store", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
