package ai

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// GeminiProvider serves Gemini models through the official genai client
type GeminiProvider struct {
	apiKey string
	logger logging.Logger
}

// NewGeminiProvider creates an adapter for the Gemini API
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		logger: logging.GetGlobalLogger(),
	}
}

func (p *GeminiProvider) Name() models.AIProvider {
	return models.ProviderGemini
}

func (p *GeminiProvider) GenerateCoverLetter(ctx context.Context, req Request) (string, error) {
	text, err := p.generate(ctx, req, false)
	if err != nil {
		p.logger.Warn("Cover letter generation degraded", map[string]interface{}{
			"provider": string(models.ProviderGemini),
			"model":    string(req.Model),
			"error":    err.Error(),
		})
		return coverLetterDiagnostic(models.ProviderGemini, err), nil
	}
	return text, nil
}

func (p *GeminiProvider) GenerateTailoredResume(ctx context.Context, req Request) (string, error) {
	return p.generate(ctx, req, true)
}

func (p *GeminiProvider) generate(ctx context.Context, req Request, structured bool) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderGemini), err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model.WireName())
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}
	if structured {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderGemini), err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if sb.Len() == 0 {
		return "", utils.NewEmptyResponseError(string(models.ProviderGemini))
	}

	return sb.String(), nil
}
