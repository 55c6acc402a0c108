package scraper

import (
	"fmt"

	"webcv-utils/internal/config"
	"webcv-utils/internal/scraper/engines/firecrawl"
	"webcv-utils/internal/scraper/engines/headed"
	"webcv-utils/internal/scraper/engines/readability"
)

// DefaultEngineFactory implements EngineFactory
type DefaultEngineFactory struct {
	config *config.Config
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config) EngineFactory {
	return &DefaultEngineFactory{config: cfg}
}

// CreateEngine creates a new engine instance for the given name
func (f *DefaultEngineFactory) CreateEngine(engine string) (Engine, error) {
	switch engine {
	case "readability", "", "auto":
		return readability.NewReadabilityScraper(f.config), nil
	case "firecrawl":
		return firecrawl.NewFirecrawlScraper(f.config)
	case "headed":
		return headed.NewRodScraper(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported fetch engine: %s", engine)
	}
}

// GetSupportedEngines returns a list of supported engine types
func (f *DefaultEngineFactory) GetSupportedEngines() []string {
	return []string{"readability", "firecrawl", "headed"}
}
