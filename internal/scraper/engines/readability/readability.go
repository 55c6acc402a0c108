package readability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	readability "github.com/go-shiori/go-readability"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/logging/types"
	"webcv-utils/internal/scraper/extract"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// maxBodySize caps how much of a page we read; postings are never this big
const maxBodySize = 10 << 20

// ReadabilityScraper fetches pages with plain HTTP and distills the main
// content with a readability pass, falling back to a tag-stripping pass for
// pages readability declines
type ReadabilityScraper struct {
	config *config.Config
	client *http.Client
	logger types.Logger
}

// NewReadabilityScraper creates a new readability-based scraper instance
func NewReadabilityScraper(cfg *config.Config) *ReadabilityScraper {
	return &ReadabilityScraper{
		config: cfg,
		client: &http.Client{Timeout: cfg.Scraper.RequestTimeout},
		logger: logging.GetGlobalLogger(),
	}
}

// ScrapeJob fetches a job posting and normalizes it to markdown
func (r *ReadabilityScraper) ScrapeJob(ctx context.Context, rawURL string, options *models.FetchOptions) (*models.JobPosting, error) {
	r.logger.Info("Fetching job posting", map[string]interface{}{
		"url":    rawURL,
		"engine": r.Name(),
	})

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		return nil, utils.NewFetchError(fmt.Sprintf("invalid URL: %s", rawURL), err)
	}

	body, err := r.fetch(ctx, rawURL, options)
	if err != nil {
		return nil, err
	}

	html := string(body)
	meta := extract.ParseMetadata(html)

	contentHTML := r.readableContent(body, parsedURL, &meta)
	if contentHTML == "" {
		contentHTML, err = extract.FallbackContent(html)
		if err != nil {
			return nil, utils.NewFetchError("failed to extract page content", err)
		}
	}

	markdown, err := extract.ToMarkdown(contentHTML)
	if err != nil {
		return nil, utils.NewFetchError("failed to convert content to markdown", err)
	}

	markdown = extract.Normalize(markdown, meta)
	if markdown == "" {
		return nil, utils.NewFetchError(fmt.Sprintf("no content extracted from %s", rawURL), nil)
	}

	r.logger.Info("Job posting fetched", map[string]interface{}{
		"url":            rawURL,
		"title":          meta.Title,
		"company":        meta.CompanyName,
		"content_length": len(markdown),
	})

	return models.NewJobPosting(meta.Title, meta.CompanyName, markdown, rawURL), nil
}

// fetch performs the HTTP GET with browser-like headers
func (r *ReadabilityScraper) fetch(ctx context.Context, rawURL string, options *models.FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, utils.NewFetchError("failed to build request", err)
	}

	userAgent := r.config.Scraper.UserAgent
	if options != nil && options.UserAgent != "" {
		userAgent = options.UserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, utils.NewFetchError(fmt.Sprintf("request to %s failed", rawURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, utils.NewFetchError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, rawURL), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, utils.NewFetchError("failed to read response body", err)
	}
	return body, nil
}

// readableContent runs the readability pass. Returns empty when the page
// does not qualify, letting the caller fall back to tag stripping.
func (r *ReadabilityScraper) readableContent(body []byte, pageURL *url.URL, meta *extract.Metadata) string {
	if !readability.Check(bytes.NewReader(body)) {
		return ""
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		r.logger.Debug("Readability pass failed, using fallback extraction", map[string]interface{}{
			"url":   pageURL.String(),
			"error": err.Error(),
		})
		return ""
	}

	if meta.Title == "" {
		meta.Title = article.Title
	}
	if meta.CompanyName == "" {
		meta.CompanyName = article.SiteName
	}
	return article.Content
}

// Name returns the engine identifier
func (r *ReadabilityScraper) Name() string {
	return "readability"
}

// IsHealthy reports whether the engine can serve requests
func (r *ReadabilityScraper) IsHealthy() bool {
	return true
}

// Cleanup releases engine resources
func (r *ReadabilityScraper) Cleanup() {}
