package settings

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcv-utils/internal/store"
	"webcv-utils/pkg/models"
)

// memStore implements just enough of Store for settings tests
type memStore struct {
	store.Store
	settings map[string]*models.UserSettings
}

func newMemStore() *memStore {
	return &memStore{settings: make(map[string]*models.UserSettings)}
}

func (s *memStore) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if stored, ok := s.settings[userID]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (s *memStore) SaveUserSettings(ctx context.Context, settings *models.UserSettings) error {
	copied := *settings
	s.settings[settings.UserID] = &copied
	return nil
}

func TestGetUserSettingsUnknownUserIsEmptyNotError(t *testing.T) {
	svc := NewService(newMemStore())

	settings, err := svc.GetUserSettings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", settings.UserID)
	assert.Empty(t, settings.OpenAIAPIKey)
	assert.Empty(t, settings.DefaultModel)
}

func TestUpdateObfuscatesKeysAtRest(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)

	result, err := svc.Update(context.Background(), "u1", &models.UpdateSettingsRequest{
		OpenAIAPIKey: "sk-plain-key",
	})
	require.NoError(t, err)

	// The caller gets the plain key back
	assert.Equal(t, "sk-plain-key", result.OpenAIAPIKey)

	// The stored row holds the encoded form
	stored := st.settings["u1"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "sk-plain-key", stored.OpenAIAPIKey)
	decoded, err := base64.StdEncoding.DecodeString(stored.OpenAIAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-plain-key", string(decoded))
}

func TestUpdateEmptyFieldsLeaveStoredValues(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Update(context.Background(), "u1", &models.UpdateSettingsRequest{
		OpenAIAPIKey: "sk-first",
		GroqAPIKey:   "gsk-first",
	})
	require.NoError(t, err)

	result, err := svc.Update(context.Background(), "u1", &models.UpdateSettingsRequest{
		GroqAPIKey: "gsk-second",
	})
	require.NoError(t, err)

	assert.Equal(t, "sk-first", result.OpenAIAPIKey, "untouched key survives a partial update")
	assert.Equal(t, "gsk-second", result.GroqAPIKey)
}

func TestUpdateSetsDefaultModel(t *testing.T) {
	svc := NewService(newMemStore())

	result, err := svc.Update(context.Background(), "u1", &models.UpdateSettingsRequest{
		DefaultModel: "deepseek-chat",
	})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", result.DefaultModel)
}

func TestUpdateUnknownDefaultModelFallsBack(t *testing.T) {
	svc := NewService(newMemStore())

	result, err := svc.Update(context.Background(), "u1", &models.UpdateSettingsRequest{
		DefaultModel: "gpt-9-ultra",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.DefaultModel), result.DefaultModel)
}

func TestGetUserSettingsDecodesAllProviders(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Update(context.Background(), "u1", &models.UpdateSettingsRequest{
		OpenAIAPIKey:    "k-openai",
		GeminiAPIKey:    "k-gemini",
		AnthropicAPIKey: "k-anthropic",
		GroqAPIKey:      "k-groq",
		DeepSeekAPIKey:  "k-deepseek",
	})
	require.NoError(t, err)

	settings, err := svc.GetUserSettings(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "k-openai", settings.KeyFor(models.ProviderOpenAI))
	assert.Equal(t, "k-gemini", settings.KeyFor(models.ProviderGemini))
	assert.Equal(t, "k-anthropic", settings.KeyFor(models.ProviderAnthropic))
	assert.Equal(t, "k-groq", settings.KeyFor(models.ProviderGroq))
	assert.Equal(t, "k-deepseek", settings.KeyFor(models.ProviderDeepSeek))
}

func TestDecodeKeyPassesPlainRowsThrough(t *testing.T) {
	// Rows written before obfuscation hold plain keys with characters
	// outside the base64 alphabet
	assert.Equal(t, "sk-plain_key!", decodeKey("sk-plain_key!"))
	assert.Equal(t, "", decodeKey(""))
}
