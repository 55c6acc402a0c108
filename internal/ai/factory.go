package ai

import (
	"context"
	"fmt"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// SettingsSource supplies per-user credentials and preferences to the factory
type SettingsSource interface {
	GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error)
}

// BuilderFunc constructs a provider adapter from config and an API key
type BuilderFunc func(cfg *config.Config, apiKey string) Provider

// Factory resolves a model choice into a ready provider adapter. Providers
// are registered in a map, so adding a backend is one Register call.
type Factory struct {
	cfg      *config.Config
	settings SettingsSource
	builders map[models.AIProvider]BuilderFunc
	logger   logging.Logger
}

// NewFactory creates a factory with all built-in providers registered
func NewFactory(cfg *config.Config, settings SettingsSource) *Factory {
	f := &Factory{
		cfg:      cfg,
		settings: settings,
		builders: make(map[models.AIProvider]BuilderFunc),
		logger:   logging.GetGlobalLogger(),
	}

	f.Register(models.ProviderOpenAI, func(cfg *config.Config, apiKey string) Provider {
		return NewOpenAIProvider(apiKey, cfg.AI.CloudTimeout)
	})
	f.Register(models.ProviderGroq, func(cfg *config.Config, apiKey string) Provider {
		return NewGroqProvider(apiKey, cfg.AI.CloudTimeout)
	})
	f.Register(models.ProviderDeepSeek, func(cfg *config.Config, apiKey string) Provider {
		return NewDeepSeekProvider(apiKey, cfg.AI.CloudTimeout)
	})
	f.Register(models.ProviderGemini, func(cfg *config.Config, apiKey string) Provider {
		return NewGeminiProvider(apiKey)
	})
	f.Register(models.ProviderAnthropic, func(cfg *config.Config, apiKey string) Provider {
		return NewAnthropicProvider(apiKey)
	})
	f.Register(models.ProviderLocal, func(cfg *config.Config, _ string) Provider {
		return NewLocalProvider(cfg.AI.LocalEndpoint, cfg.AI.LocalTimeout)
	})

	return f
}

// Register adds or replaces the builder for a provider
func (f *Factory) Register(provider models.AIProvider, builder BuilderFunc) {
	f.builders[provider] = builder
}

// Resolve picks the effective model and constructs its provider adapter.
// Model precedence: explicit request, then the user's default, then the
// configured default. Cloud providers fail fast with a missing-credential
// error before any network call is made.
func (f *Factory) Resolve(ctx context.Context, userID, requestedModel string) (Provider, models.AIModel, error) {
	var settings *models.UserSettings
	if f.settings != nil {
		s, err := f.settings.GetUserSettings(ctx, userID)
		if err != nil {
			f.logger.Warn("Failed to load user settings, falling back to defaults", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		} else {
			settings = s
		}
	}

	model := f.pickModel(requestedModel, settings)
	provider := model.Provider()

	builder, ok := f.builders[provider]
	if !ok {
		return nil, model, utils.NewInternalServerError(fmt.Sprintf("no adapter registered for provider %s", provider))
	}

	apiKey := settings.KeyFor(provider)
	if provider != models.ProviderLocal && apiKey == "" {
		return nil, model, utils.NewMissingCredentialError(string(provider))
	}

	return builder(f.cfg, apiKey), model, nil
}

// NewRequest builds a generation request with the config-level knobs applied
func (f *Factory) NewRequest(model models.AIModel, system, prompt string) Request {
	return Request{
		Model:       model,
		System:      system,
		Prompt:      prompt,
		Temperature: f.cfg.AI.Temperature,
		MaxTokens:   f.cfg.AI.MaxTokens,
	}
}

func (f *Factory) pickModel(requested string, settings *models.UserSettings) models.AIModel {
	if requested != "" {
		return models.ParseModel(requested)
	}
	if settings != nil && settings.DefaultModel != "" {
		return models.ParseModel(settings.DefaultModel)
	}
	return models.ParseModel(f.cfg.AI.DefaultModel)
}
