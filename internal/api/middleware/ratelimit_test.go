package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"webcv-utils/internal/config"
)

func rateLimitConfig(rpm, burst int, enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.RateLimit.RequestsPerMinute = rpm
	cfg.RateLimit.Burst = burst
	cfg.RateLimit.Enabled = enabled
	return cfg
}

func newLimitedEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.Use(NewRateLimiter(cfg).Middleware())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func get(e *echo.Echo, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterEnforcesBurst(t *testing.T) {
	e := newLimitedEcho(rateLimitConfig(1, 2, true))

	assert.Equal(t, http.StatusOK, get(e, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, get(e, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get(e, "10.0.0.1"))
}

func TestRateLimiterIsPerIP(t *testing.T) {
	e := newLimitedEcho(rateLimitConfig(1, 1, true))

	assert.Equal(t, http.StatusOK, get(e, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get(e, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, get(e, "10.0.0.2"), "another client has its own bucket")
}

func TestRateLimiterDisabled(t *testing.T) {
	e := newLimitedEcho(rateLimitConfig(1, 1, false))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, get(e, "10.0.0.1"))
	}
}
