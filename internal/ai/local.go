package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// LocalProvider serves models running on a local Ollama endpoint. Local
// inference is slow on commodity hardware, so the client timeout is much
// longer than for cloud providers and callers run requests one at a time.
type LocalProvider struct {
	endpoint string
	client   *http.Client
	logger   logging.Logger
}

// NewLocalProvider creates an adapter for a local Ollama endpoint
func NewLocalProvider(endpoint string, timeout time.Duration) *LocalProvider {
	return &LocalProvider{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logging.GetGlobalLogger(),
	}
}

func (p *LocalProvider) Name() models.AIProvider {
	return models.ProviderLocal
}

func (p *LocalProvider) GenerateCoverLetter(ctx context.Context, req Request) (string, error) {
	text, err := p.generate(ctx, req, false)
	if err != nil {
		p.logger.Warn("Cover letter generation degraded", map[string]interface{}{
			"provider": string(models.ProviderLocal),
			"model":    string(req.Model),
			"error":    err.Error(),
		})
		return coverLetterDiagnostic(models.ProviderLocal, err), nil
	}
	return text, nil
}

func (p *LocalProvider) GenerateTailoredResume(ctx context.Context, req Request) (string, error) {
	return p.generate(ctx, req, true)
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

func (p *LocalProvider) generate(ctx context.Context, req Request, structured bool) (string, error) {
	payload := ollamaGenerateRequest{
		Model:   req.Model.WireName(),
		Prompt:  req.Prompt,
		System:  req.System,
		Stream:  false,
		Options: ollamaOptions{Temperature: req.Temperature},
	}
	if structured {
		payload.Format = "json"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderLocal), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderLocal), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderLocal), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderLocal), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", utils.NewUpstreamError(string(models.ProviderLocal), resp.StatusCode, string(respBody))
	}

	var generated ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return "", utils.NewUpstreamError(string(models.ProviderLocal), resp.StatusCode, string(respBody))
	}

	if generated.Response == "" {
		return "", utils.NewEmptyResponseError(string(models.ProviderLocal))
	}

	return generated.Response, nil
}
