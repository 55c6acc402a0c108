package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

func TestLocalGenerateWireFormat(t *testing.T) {
	var captured ollamaGenerateRequest
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Model:    captured.Model,
			Response: `{"TailoredProfile": {}}`,
			Done:     true,
		})
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, 5*time.Second)

	text, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelMistral7B))
	require.NoError(t, err)
	assert.Equal(t, `{"TailoredProfile": {}}`, text)

	assert.Equal(t, "/api/generate", path)
	assert.Equal(t, "mistral", captured.Model)
	assert.Equal(t, "user prompt", captured.Prompt)
	assert.Equal(t, "system prompt", captured.System)
	assert.False(t, captured.Stream)
	assert.Equal(t, "json", captured.Format, "resume calls request structured output")
	assert.Equal(t, float32(0.7), captured.Options.Temperature)
}

func TestLocalCoverLetterOmitsJSONFormat(t *testing.T) {
	var captured ollamaGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "Dear Hiring Manager,", Done: true})
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, 5*time.Second)

	text, err := provider.GenerateCoverLetter(context.Background(), testRequest(models.ModelPhi3Mini))
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,", text)
	assert.Empty(t, captured.Format)
	assert.Equal(t, "phi3", captured.Model)
}

func TestLocalResumeErrorsAreTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, 5*time.Second)

	_, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelMistral7B))
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindUpstream))
}

func TestLocalEmptyResponseIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Done: true})
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, 5*time.Second)

	_, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelMistral7B))
	assert.True(t, utils.IsKind(err, utils.KindEmptyResponse))
}

func TestLocalCoverLetterDegradesWhenRuntimeDown(t *testing.T) {
	provider := NewLocalProvider("http://127.0.0.1:1", 500*time.Millisecond)

	text, err := provider.GenerateCoverLetter(context.Background(), testRequest(models.ModelMistral7B))
	require.NoError(t, err)
	assert.Contains(t, text, "Cover letter generation failed")
	assert.Contains(t, text, string(models.ProviderLocal))
}

func TestLocalTrimsTrailingSlash(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL+"/", 5*time.Second)

	_, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelMistral7B))
	require.NoError(t, err)
	assert.Equal(t, "/api/generate", path)
}
