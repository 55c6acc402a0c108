package models

import "time"

// UserSettings holds per-user provider credentials and the preferred model.
// API key fields are stored base64-obfuscated; the settings service decodes
// them before handing settings to callers.
type UserSettings struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UserID          string    `gorm:"uniqueIndex" json:"user_id"`
	OpenAIAPIKey    string    `json:"openai_api_key,omitempty"`
	GeminiAPIKey    string    `json:"gemini_api_key,omitempty"`
	AnthropicAPIKey string    `json:"anthropic_api_key,omitempty"`
	GroqAPIKey      string    `json:"groq_api_key,omitempty"`
	DeepSeekAPIKey  string    `json:"deepseek_api_key,omitempty"`
	DefaultModel    string    `json:"default_model,omitempty"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// KeyFor returns the stored API key for the given provider. Local models
// need no credential, so Local always returns an empty string.
func (s *UserSettings) KeyFor(provider AIProvider) string {
	if s == nil {
		return ""
	}
	switch provider {
	case ProviderOpenAI:
		return s.OpenAIAPIKey
	case ProviderGemini:
		return s.GeminiAPIKey
	case ProviderAnthropic:
		return s.AnthropicAPIKey
	case ProviderGroq:
		return s.GroqAPIKey
	case ProviderDeepSeek:
		return s.DeepSeekAPIKey
	default:
		return ""
	}
}

// SetKeyFor stores an API key for the given provider
func (s *UserSettings) SetKeyFor(provider AIProvider, key string) {
	switch provider {
	case ProviderOpenAI:
		s.OpenAIAPIKey = key
	case ProviderGemini:
		s.GeminiAPIKey = key
	case ProviderAnthropic:
		s.AnthropicAPIKey = key
	case ProviderGroq:
		s.GroqAPIKey = key
	case ProviderDeepSeek:
		s.DeepSeekAPIKey = key
	}
}
