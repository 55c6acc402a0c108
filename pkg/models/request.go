package models

import "time"

// FetchJobRequest represents the request payload for fetching a job posting
type FetchJobRequest struct {
	URL     string        `json:"url" validate:"required,url"`
	Options *FetchOptions `json:"options,omitempty"`
}

// FetchOptions provides additional configuration for fetch requests
type FetchOptions struct {
	Engine    string        `json:"engine,omitempty"`     // "readability", "firecrawl", "headed"
	Timeout   time.Duration `json:"timeout,omitempty"`    // Request timeout
	UserAgent string        `json:"user_agent,omitempty"` // Custom user agent
	NoCache   bool          `json:"no_cache,omitempty"`   // Bypass the posting cache
}

// GenerateApplicationRequest represents the request payload for generating a
// cover letter + tailored resume. Either URL or Job must be set.
type GenerateApplicationRequest struct {
	UserID  string        `json:"user_id" validate:"required"`
	Model   string        `json:"model,omitempty"`
	URL     string        `json:"url,omitempty" validate:"omitempty,url"`
	Job     *JobPosting   `json:"job,omitempty"`
	Options *FetchOptions `json:"options,omitempty"`
	Save    bool          `json:"save,omitempty"`
}

// UpdateSettingsRequest represents the request payload for updating a user's
// provider credentials and default model. Keys arrive in plain text and are
// obfuscated before storage; empty fields leave the stored value untouched.
type UpdateSettingsRequest struct {
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	GroqAPIKey      string `json:"groq_api_key,omitempty"`
	DeepSeekAPIKey  string `json:"deepseek_api_key,omitempty"`
	DefaultModel    string `json:"default_model,omitempty"`
}
