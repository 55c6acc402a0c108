package ai

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// AnthropicProvider serves Claude models through the official SDK
type AnthropicProvider struct {
	client anthropic.Client
	logger logging.Logger
}

// NewAnthropicProvider creates an adapter for the Anthropic API
func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		logger: logging.GetGlobalLogger(),
	}
}

func (p *AnthropicProvider) Name() models.AIProvider {
	return models.ProviderAnthropic
}

func (p *AnthropicProvider) GenerateCoverLetter(ctx context.Context, req Request) (string, error) {
	text, err := p.generate(ctx, req)
	if err != nil {
		p.logger.Warn("Cover letter generation degraded", map[string]interface{}{
			"provider": string(models.ProviderAnthropic),
			"model":    string(req.Model),
			"error":    err.Error(),
		})
		return coverLetterDiagnostic(models.ProviderAnthropic, err), nil
	}
	return text, nil
}

func (p *AnthropicProvider) GenerateTailoredResume(ctx context.Context, req Request) (string, error) {
	// The Messages API has no JSON response mode; the prompt instructions
	// carry the structure requirement and the parser tolerates fences.
	return p.generate(ctx, req)
}

func (p *AnthropicProvider) generate(ctx context.Context, req Request) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model.WireName()),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(float64(req.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: req.Prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", utils.NewTransportError(string(models.ProviderAnthropic), err)
	}

	var sb strings.Builder
	for _, content := range message.Content {
		sb.WriteString(content.AsText().Text)
	}

	if sb.Len() == 0 {
		return "", utils.NewEmptyResponseError(string(models.ProviderAnthropic))
	}

	return sb.String(), nil
}
