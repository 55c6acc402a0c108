package scraper

import (
	"context"

	"webcv-utils/pkg/models"
)

// Engine defines the interface for all fetching engines
type Engine interface {
	// ScrapeJob fetches and normalizes a job posting from the given URL
	ScrapeJob(ctx context.Context, url string, options *models.FetchOptions) (*models.JobPosting, error)

	// Name returns the engine identifier used in responses and logs
	Name() string

	// IsHealthy returns true if the engine is ready to process requests
	IsHealthy() bool

	// Cleanup releases any resources held by the engine
	Cleanup()
}

// EngineFactory creates engines based on engine type
type EngineFactory interface {
	// CreateEngine creates a new engine instance for the given name
	CreateEngine(engine string) (Engine, error)

	// GetSupportedEngines returns a list of supported engine types
	GetSupportedEngines() []string
}
