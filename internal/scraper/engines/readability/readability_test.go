package readability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcv-utils/internal/config"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

func scraperConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scraper.RequestTimeout = 5 * time.Second
	cfg.Scraper.UserAgent = "test-agent/1.0"
	return cfg
}

const postingHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Fallback</title>
	<meta property="og:title" content="Senior Backend Engineer">
	<meta property="og:site_name" content="Initech">
</head>
<body>
	<script>doNotInclude();</script>
	<article>
		<h1>Senior Backend Engineer</h1>
		<p>We are looking for a Go engineer to join our platform team in Copenhagen.
		You will design, build and operate the services behind our product.</p>
		<h2>Responsibilities</h2>
		<ul>
			<li>Design and build backend services in Go</li>
			<li>Own services from development through production</li>
		</ul>
	</article>
</body>
</html>`

func TestScrapeJobEndToEnd(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	scraper := NewReadabilityScraper(scraperConfig())
	job, err := scraper.ScrapeJob(context.Background(), server.URL+"/jobs/123", nil)
	require.NoError(t, err)

	assert.Equal(t, "test-agent/1.0", userAgent)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Initech", job.CompanyName)
	assert.Equal(t, server.URL+"/jobs/123", job.URL)

	assert.Contains(t, job.Description, "Go engineer")
	assert.Contains(t, job.Description, "backend services in Go")
	assert.NotContains(t, job.Description, "doNotInclude")
	assert.True(t, job.HasMetadata())
	require.NotNil(t, job.DatePosted)
	assert.WithinDuration(t, time.Now(), *job.DatePosted, time.Minute)
}

func TestScrapeJobUntitledPageGetsDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>We need an engineer for our platform team.</p></body></html>`))
	}))
	defer server.Close()

	scraper := NewReadabilityScraper(scraperConfig())
	job, err := scraper.ScrapeJob(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultJobTitle, job.Title)
	assert.Equal(t, "", job.CompanyName)
	require.NotNil(t, job.DatePosted)
	assert.False(t, job.HasMetadata())
}

func TestScrapeJobOptionsOverrideUserAgent(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	scraper := NewReadabilityScraper(scraperConfig())
	_, err := scraper.ScrapeJob(context.Background(), server.URL, &models.FetchOptions{UserAgent: "custom/2.0"})
	require.NoError(t, err)
	assert.Equal(t, "custom/2.0", userAgent)
}

func TestScrapeJobNon2xxIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	scraper := NewReadabilityScraper(scraperConfig())
	_, err := scraper.ScrapeJob(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindFetch))

	var ce *utils.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Detail, "403")
}

func TestScrapeJobInvalidURLIsFetchError(t *testing.T) {
	scraper := NewReadabilityScraper(scraperConfig())
	_, err := scraper.ScrapeJob(context.Background(), "not-a-url", nil)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindFetch))
}

func TestScrapeJobUnreachableHostIsFetchError(t *testing.T) {
	scraper := NewReadabilityScraper(scraperConfig())
	_, err := scraper.ScrapeJob(context.Background(), "http://127.0.0.1:1/jobs", nil)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindFetch))
}

func TestEngineIdentity(t *testing.T) {
	scraper := NewReadabilityScraper(scraperConfig())
	assert.Equal(t, "readability", scraper.Name())
	assert.True(t, scraper.IsHealthy())
}
