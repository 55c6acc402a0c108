package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
)

// JobPostingCache caches fetched job postings in Redis so repeated
// generations against the same URL skip the scrape. All methods are
// nil-safe: without Redis the pipeline just fetches every time.
type JobPostingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewJobPostingCache creates a Redis-backed posting cache. Returns nil when
// redisURL is empty or unparseable, which disables caching.
func NewJobPostingCache(redisURL string, ttl time.Duration) *JobPostingCache {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logging.GetGlobalLogger().Warn("Invalid Redis URL, posting cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &JobPostingCache{
		client: redis.NewClient(opts),
		ttl:    ttl,
		logger: logging.GetGlobalLogger(),
	}
}

// Get returns the cached posting for a URL, or nil on miss. Cache errors
// are logged and treated as misses.
func (c *JobPostingCache) Get(ctx context.Context, url string) *models.JobPosting {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, c.key(url)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Posting cache read failed", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		}
		return nil
	}

	var posting models.JobPosting
	if err := json.Unmarshal([]byte(data), &posting); err != nil {
		c.logger.Warn("Posting cache entry corrupt, dropping", map[string]interface{}{"url": url})
		c.client.Del(ctx, c.key(url))
		return nil
	}
	return &posting
}

// Set stores a posting. Failures are logged, never propagated.
func (c *JobPostingCache) Set(ctx context.Context, posting *models.JobPosting) {
	if c == nil || posting == nil {
		return
	}

	data, err := json.Marshal(posting)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, c.key(posting.URL), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Posting cache write failed", map[string]interface{}{
			"url":   posting.URL,
			"error": err.Error(),
		})
	}
}

// Ping tests the Redis connection
func (c *JobPostingCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *JobPostingCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *JobPostingCache) key(url string) string {
	return fmt.Sprintf("jobposting:url:%s", url)
}
