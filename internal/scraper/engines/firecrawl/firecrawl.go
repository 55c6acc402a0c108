package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/mendableai/firecrawl-go"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/logging/types"
	"webcv-utils/internal/scraper/extract"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// FirecrawlScraper implements the Engine interface using the hosted
// Firecrawl API, for pages the plain HTTP engine cannot handle
type FirecrawlScraper struct {
	config *config.Config
	app    *firecrawl.FirecrawlApp
	logger types.Logger
}

// NewFirecrawlScraper creates a new Firecrawl scraper instance
func NewFirecrawlScraper(cfg *config.Config) (*FirecrawlScraper, error) {
	logger := logging.GetGlobalLogger()

	app, err := firecrawl.NewFirecrawlApp(
		cfg.Firecrawl.APIKey,
		cfg.Firecrawl.APIURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firecrawl client: %w", err)
	}

	logger.Info("Firecrawl scraper initialized", map[string]interface{}{
		"api_url": cfg.Firecrawl.APIURL,
	})

	return &FirecrawlScraper{
		config: cfg,
		app:    app,
		logger: logger,
	}, nil
}

// ScrapeJob fetches a job posting via Firecrawl and normalizes it
func (f *FirecrawlScraper) ScrapeJob(ctx context.Context, url string, options *models.FetchOptions) (*models.JobPosting, error) {
	f.logger.Info("Fetching job posting", map[string]interface{}{
		"url":    url,
		"engine": f.Name(),
	})

	doc, err := f.scrape(url)
	if err != nil {
		return nil, err
	}

	var meta extract.Metadata
	markdown := doc.Markdown

	if doc.HTML != "" {
		meta = extract.ParseMetadata(doc.HTML)
		if markdown == "" {
			content, err := extract.FallbackContent(doc.HTML)
			if err != nil {
				return nil, utils.NewFetchError("failed to extract page content", err)
			}
			markdown, err = extract.ToMarkdown(content)
			if err != nil {
				return nil, utils.NewFetchError("failed to convert content to markdown", err)
			}
		}
	} else if markdown != "" {
		meta = extract.Metadata{Title: extract.FirstHeading(markdown)}
	}

	markdown = extract.Normalize(markdown, meta)
	if markdown == "" {
		return nil, utils.NewFetchError(fmt.Sprintf("no content extracted from %s", url), nil)
	}

	f.logger.Info("Job posting fetched", map[string]interface{}{
		"url":            url,
		"title":          meta.Title,
		"company":        meta.CompanyName,
		"content_length": len(markdown),
	})

	return models.NewJobPosting(meta.Title, meta.CompanyName, markdown, url), nil
}

// scrape performs the Firecrawl call with bounded retry
func (f *FirecrawlScraper) scrape(url string) (*firecrawl.FirecrawlDocument, error) {
	scrapeParams := &firecrawl.ScrapeParams{
		Formats: f.config.Firecrawl.Formats,
	}

	var doc *firecrawl.FirecrawlDocument
	var err error

	for attempt := 1; attempt <= f.config.Firecrawl.MaxRetries; attempt++ {
		doc, err = f.app.ScrapeURL(url, scrapeParams)
		if err == nil {
			break
		}

		f.logger.Warn("Firecrawl scrape attempt failed", map[string]interface{}{
			"attempt":     attempt,
			"max_retries": f.config.Firecrawl.MaxRetries,
			"url":         url,
			"error":       err.Error(),
		})

		if attempt < f.config.Firecrawl.MaxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	if err != nil {
		return nil, utils.NewFetchError(fmt.Sprintf("firecrawl scraping failed after %d attempts", f.config.Firecrawl.MaxRetries), err)
	}
	if doc == nil || (doc.Markdown == "" && doc.HTML == "") {
		return nil, utils.NewFetchError("no content in Firecrawl response", nil)
	}
	return doc, nil
}

// Name returns the engine identifier
func (f *FirecrawlScraper) Name() string {
	return "firecrawl"
}

// IsHealthy checks if the engine is ready to process requests
func (f *FirecrawlScraper) IsHealthy() bool {
	return f.app != nil && f.config.Firecrawl.APIKey != ""
}

// Cleanup releases any resources used by the engine
func (f *FirecrawlScraper) Cleanup() {}
