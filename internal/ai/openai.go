package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

const (
	openAIEndpoint   = "https://api.openai.com/v1/chat/completions"
	groqEndpoint     = "https://api.groq.com/openai/v1/chat/completions"
	deepSeekEndpoint = "https://api.deepseek.com/v1/chat/completions"
)

// ChatCompletionProvider talks to any OpenAI-compatible chat completions
// API. OpenAI, Groq and DeepSeek all share this wire format.
type ChatCompletionProvider struct {
	name     models.AIProvider
	endpoint string
	apiKey   string
	client   *http.Client
	logger   logging.Logger
}

// NewOpenAIProvider creates an adapter for the OpenAI API
func NewOpenAIProvider(apiKey string, timeout time.Duration) *ChatCompletionProvider {
	return newChatCompletionProvider(models.ProviderOpenAI, openAIEndpoint, apiKey, timeout)
}

// NewGroqProvider creates an adapter for Groq's OpenAI-compatible API
func NewGroqProvider(apiKey string, timeout time.Duration) *ChatCompletionProvider {
	return newChatCompletionProvider(models.ProviderGroq, groqEndpoint, apiKey, timeout)
}

// NewDeepSeekProvider creates an adapter for DeepSeek's OpenAI-compatible API
func NewDeepSeekProvider(apiKey string, timeout time.Duration) *ChatCompletionProvider {
	return newChatCompletionProvider(models.ProviderDeepSeek, deepSeekEndpoint, apiKey, timeout)
}

func newChatCompletionProvider(name models.AIProvider, endpoint, apiKey string, timeout time.Duration) *ChatCompletionProvider {
	return &ChatCompletionProvider{
		name:     name,
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.GetGlobalLogger(),
	}
}

// WithEndpoint overrides the API endpoint, used by tests to point the
// adapter at a fake upstream
func (p *ChatCompletionProvider) WithEndpoint(endpoint string) *ChatCompletionProvider {
	p.endpoint = endpoint
	return p
}

func (p *ChatCompletionProvider) Name() models.AIProvider {
	return p.name
}

func (p *ChatCompletionProvider) GenerateCoverLetter(ctx context.Context, req Request) (string, error) {
	text, err := p.generate(ctx, req, false)
	if err != nil {
		p.logger.Warn("Cover letter generation degraded", map[string]interface{}{
			"provider": string(p.name),
			"model":    string(req.Model),
			"error":    err.Error(),
		})
		return coverLetterDiagnostic(p.name, err), nil
	}
	return text, nil
}

func (p *ChatCompletionProvider) GenerateTailoredResume(ctx context.Context, req Request) (string, error) {
	return p.generate(ctx, req, true)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	Temperature    float32             `json:"temperature"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// generate performs one chat completion call. structured requests JSON
// output via response_format where the resume envelope is expected.
func (p *ChatCompletionProvider) generate(ctx context.Context, req Request, structured bool) (string, error) {
	payload := chatCompletionRequest{
		Model: req.Model.WireName(),
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if structured {
		payload.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", utils.NewTransportError(string(p.name), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", utils.NewTransportError(string(p.name), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", utils.NewTransportError(string(p.name), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", utils.NewTransportError(string(p.name), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", utils.NewUpstreamError(string(p.name), resp.StatusCode, string(respBody))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", utils.NewUpstreamError(string(p.name), resp.StatusCode, string(respBody))
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", utils.NewEmptyResponseError(string(p.name))
	}

	return completion.Choices[0].Message.Content, nil
}
