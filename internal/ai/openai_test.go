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

func chatCompletionFixture(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": ` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func testRequest(model models.AIModel) Request {
	return Request{
		Model:       model,
		System:      "system prompt",
		Prompt:      "user prompt",
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

func TestChatCompletionWireFormat(t *testing.T) {
	var captured chatCompletionRequest
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(chatCompletionFixture(`{"TailoredProfile": {}}`)))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", 5*time.Second).WithEndpoint(server.URL)

	text, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelGPT4o))
	require.NoError(t, err)
	assert.Equal(t, `{"TailoredProfile": {}}`, text)

	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "gpt-4o", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system prompt", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, float32(0.7), captured.Temperature)
	assert.Equal(t, 4096, captured.MaxTokens)

	require.NotNil(t, captured.ResponseFormat, "resume calls request structured output")
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestCoverLetterOmitsResponseFormat(t *testing.T) {
	var captured chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(chatCompletionFixture("Dear Hiring Manager,")))
	}))
	defer server.Close()

	provider := NewGroqProvider("gsk-test", 5*time.Second).WithEndpoint(server.URL)

	text, err := provider.GenerateCoverLetter(context.Background(), testRequest(models.ModelLlama33_70B))
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,", text)
	assert.Nil(t, captured.ResponseFormat, "plain text calls must not force JSON output")
	assert.Equal(t, "llama-3.3-70b-versatile", captured.Model)
}

func TestResumeUpstreamErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit"}}`))
	}))
	defer server.Close()

	provider := NewDeepSeekProvider("sk-test", 5*time.Second).WithEndpoint(server.URL)

	_, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelDeepSeekChat))
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindUpstream))

	var ce *utils.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Detail, "429")
	assert.Contains(t, ce.Detail, "rate limit")
}

func TestResumeEmptyChoicesIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", 5*time.Second).WithEndpoint(server.URL)

	_, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelGPT4o))
	assert.True(t, utils.IsKind(err, utils.KindEmptyResponse))
}

func TestCoverLetterFailureDegradesToDiagnostic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", 5*time.Second).WithEndpoint(server.URL)

	text, err := provider.GenerateCoverLetter(context.Background(), testRequest(models.ModelGPT4o))
	require.NoError(t, err, "cover letter failures degrade instead of erroring")
	assert.Contains(t, text, "Cover letter generation failed")
	assert.Contains(t, text, string(models.ProviderOpenAI))
}

func TestTransportErrorIsTyped(t *testing.T) {
	provider := NewOpenAIProvider("sk-test", 500*time.Millisecond).
		WithEndpoint("http://127.0.0.1:1/unreachable")

	_, err := provider.GenerateTailoredResume(context.Background(), testRequest(models.ModelGPT4o))
	assert.True(t, utils.IsKind(err, utils.KindTransport))
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, models.ProviderOpenAI, NewOpenAIProvider("k", time.Second).Name())
	assert.Equal(t, models.ProviderGroq, NewGroqProvider("k", time.Second).Name())
	assert.Equal(t, models.ProviderDeepSeek, NewDeepSeekProvider("k", time.Second).Name())
}
