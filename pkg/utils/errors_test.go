package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsCarryStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, NewFetchError("x", nil).Code)
	assert.Equal(t, http.StatusBadRequest, NewMissingCredentialError("openai").Code)
	assert.Equal(t, http.StatusBadGateway, NewTransportError("openai", errors.New("x")).Code)
	assert.Equal(t, http.StatusBadGateway, NewUpstreamError("openai", 500, "x").Code)
	assert.Equal(t, http.StatusBadGateway, NewEmptyResponseError("openai").Code)
	assert.Equal(t, http.StatusBadGateway, NewParseError("x", errors.New("x")).Code)
}

func TestIsKindMatchesWrappedErrors(t *testing.T) {
	cause := NewMissingCredentialError("groq")
	wrapped := fmt.Errorf("resolving provider: %w", cause)

	assert.True(t, IsKind(wrapped, KindMissingCredential))
	assert.False(t, IsKind(wrapped, KindFetch))
	assert.False(t, IsKind(errors.New("plain"), KindFetch))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("openai", cause)
	assert.ErrorIs(t, err, cause)
}

func TestUpstreamErrorTruncatesBody(t *testing.T) {
	body := strings.Repeat("x", 1000)
	err := NewUpstreamError("openai", 500, body)
	assert.LessOrEqual(t, len(err.Detail), len("provider openai: status 500: ")+303)
}

func TestParseErrorKeepsRawOutput(t *testing.T) {
	err := NewParseError("not json", errors.New("invalid character"))
	assert.Equal(t, "not json", err.Detail)
	assert.True(t, IsKind(err, KindParse))
}

func TestErrorStringIncludesDetail(t *testing.T) {
	err := NewFetchError("unexpected status 403", nil)
	assert.Contains(t, err.Error(), "unexpected status 403")
}
