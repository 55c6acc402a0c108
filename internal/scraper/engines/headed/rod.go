package headed

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/logging/types"
	"webcv-utils/internal/scraper/extract"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// RodScraper implements the Engine interface with a real browser for
// JS-heavy job boards that serve empty shells to plain HTTP clients.
// Each request gets its own short-lived browser.
type RodScraper struct {
	config *config.Config
	logger types.Logger
}

// NewRodScraper creates a new headed scraper instance
func NewRodScraper(cfg *config.Config) *RodScraper {
	return &RodScraper{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ScrapeJob renders the page in a browser and normalizes the result
func (r *RodScraper) ScrapeJob(ctx context.Context, url string, options *models.FetchOptions) (*models.JobPosting, error) {
	r.logger.Info("Fetching job posting", map[string]interface{}{
		"url":    url,
		"engine": r.Name(),
	})

	html, err := r.renderPage(ctx, url)
	if err != nil {
		return nil, err
	}

	meta := extract.ParseMetadata(html)

	content, err := extract.FallbackContent(html)
	if err != nil {
		return nil, utils.NewFetchError("failed to extract page content", err)
	}

	markdown, err := extract.ToMarkdown(content)
	if err != nil {
		return nil, utils.NewFetchError("failed to convert content to markdown", err)
	}

	markdown = extract.Normalize(markdown, meta)
	if markdown == "" {
		return nil, utils.NewFetchError(fmt.Sprintf("no content extracted from %s", url), nil)
	}

	return models.NewJobPosting(meta.Title, meta.CompanyName, markdown, url), nil
}

// renderPage launches a browser, loads the page and returns its HTML
func (r *RodScraper) renderPage(ctx context.Context, url string) (string, error) {
	l := launcher.New().
		Headless(r.config.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	if r.config.Scraper.UserAgent != "" {
		l = l.Set("user-agent", r.config.Scraper.UserAgent)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return "", utils.NewFetchError("failed to launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", utils.NewFetchError("failed to connect to browser", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			r.logger.Debug("Failed to close browser", map[string]interface{}{"error": err.Error()})
		}
		l.Cleanup()
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		return "", utils.NewFetchError("failed to create stealth page", err)
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", utils.NewFetchError(fmt.Sprintf("navigation to %s failed", url), err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", utils.NewFetchError("page load failed", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", utils.NewFetchError("failed to read page HTML", err)
	}
	return html, nil
}

// Name returns the engine identifier
func (r *RodScraper) Name() string {
	return "headed"
}

// IsHealthy reports whether the engine can serve requests
func (r *RodScraper) IsHealthy() bool {
	return true
}

// Cleanup releases engine resources
func (r *RodScraper) Cleanup() {}
