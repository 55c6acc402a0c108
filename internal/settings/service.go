package settings

import (
	"context"
	"encoding/base64"
	"errors"

	"webcv-utils/internal/logging"
	"webcv-utils/internal/store"
	"webcv-utils/pkg/models"
)

// Service manages per-user provider credentials and the default model.
// Keys are base64-obfuscated at rest so they never appear in plain text in
// database dumps; this is obfuscation, not encryption.
type Service struct {
	store  store.Store
	logger logging.Logger
}

// NewService creates a settings service backed by the given store
func NewService(st store.Store) *Service {
	return &Service{
		store:  st,
		logger: logging.GetGlobalLogger(),
	}
}

// GetUserSettings returns the user's settings with API keys decoded. A user
// without stored settings gets an empty settings object, never an error.
func (s *Service) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	stored, err := s.store.GetUserSettings(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.UserSettings{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	decoded := *stored
	for _, provider := range cloudProviders {
		decoded.SetKeyFor(provider, decodeKey(stored.KeyFor(provider)))
	}
	return &decoded, nil
}

// Update applies the request on top of the stored settings. Empty request
// fields leave the stored value untouched.
func (s *Service) Update(ctx context.Context, userID string, req *models.UpdateSettingsRequest) (*models.UserSettings, error) {
	stored, err := s.store.GetUserSettings(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		stored = &models.UserSettings{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	applyKey(stored, models.ProviderOpenAI, req.OpenAIAPIKey)
	applyKey(stored, models.ProviderGemini, req.GeminiAPIKey)
	applyKey(stored, models.ProviderAnthropic, req.AnthropicAPIKey)
	applyKey(stored, models.ProviderGroq, req.GroqAPIKey)
	applyKey(stored, models.ProviderDeepSeek, req.DeepSeekAPIKey)

	if req.DefaultModel != "" {
		stored.DefaultModel = string(models.ParseModel(req.DefaultModel))
	}

	if err := s.store.SaveUserSettings(ctx, stored); err != nil {
		return nil, err
	}

	s.logger.Info("User settings updated", map[string]interface{}{"user_id": userID})
	return s.GetUserSettings(ctx, userID)
}

var cloudProviders = []models.AIProvider{
	models.ProviderOpenAI,
	models.ProviderGemini,
	models.ProviderAnthropic,
	models.ProviderGroq,
	models.ProviderDeepSeek,
}

func applyKey(settings *models.UserSettings, provider models.AIProvider, plain string) {
	if plain != "" {
		settings.SetKeyFor(provider, encodeKey(plain))
	}
}

func encodeKey(plain string) string {
	if plain == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

func decodeKey(encoded string) string {
	if encoded == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Pre-obfuscation rows hold plain keys, pass them through
		return encoded
	}
	return string(decoded)
}
