package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestIDUnique(t *testing.T) {
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
	assert.NotEmpty(t, GenerateApplicationID())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "æøå...", Truncate("æøåæøå", 3), "runes, not bytes")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "2.50s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "1.5m", FormatDuration(90*time.Second))
	assert.Equal(t, "1.5h", FormatDuration(90*time.Minute))
}

func TestGetStringOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetStringOrDefault("", "fallback"))
	assert.Equal(t, "value", GetStringOrDefault("value", "fallback"))
}
