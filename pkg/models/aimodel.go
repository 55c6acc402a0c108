package models

// AIProvider identifies which adapter serves a model
type AIProvider string

const (
	ProviderOpenAI    AIProvider = "openai"
	ProviderGemini    AIProvider = "gemini"
	ProviderAnthropic AIProvider = "anthropic"
	ProviderGroq      AIProvider = "groq"
	ProviderDeepSeek  AIProvider = "deepseek"
	ProviderLocal     AIProvider = "local"
)

// AIModel is a model users can pick for generation
type AIModel string

const (
	ModelGPT4o          AIModel = "gpt-4o"
	ModelGemini20Flash  AIModel = "gemini-2.0-flash"
	ModelClaude35Sonnet AIModel = "claude-3-5-sonnet"
	ModelLlama33_70B    AIModel = "llama-3.3-70b"
	ModelDeepSeekChat   AIModel = "deepseek-chat"
	ModelMistral7B      AIModel = "mistral-7b"
	ModelLlama31_8B     AIModel = "llama-3.1-8b"
	ModelPhi3Mini       AIModel = "phi-3-mini"
	ModelGPT4All        AIModel = "gpt4all"
)

// DefaultModel is used when a request names no model and the user has no
// default configured
const DefaultModel = ModelGPT4o

// modelProviders is the single source of truth for model routing
var modelProviders = map[AIModel]AIProvider{
	ModelGPT4o:          ProviderOpenAI,
	ModelGemini20Flash:  ProviderGemini,
	ModelClaude35Sonnet: ProviderAnthropic,
	ModelLlama33_70B:    ProviderGroq,
	ModelDeepSeekChat:   ProviderDeepSeek,
	ModelMistral7B:      ProviderLocal,
	ModelLlama31_8B:     ProviderLocal,
	ModelPhi3Mini:       ProviderLocal,
	ModelGPT4All:        ProviderLocal,
}

// wireNames maps a model to the identifier its provider's API expects
var wireNames = map[AIModel]string{
	ModelGPT4o:          "gpt-4o",
	ModelGemini20Flash:  "gemini-2.0-flash",
	ModelClaude35Sonnet: "claude-3-5-sonnet-latest",
	ModelLlama33_70B:    "llama-3.3-70b-versatile",
	ModelDeepSeekChat:   "deepseek-chat",
	ModelMistral7B:      "mistral",
	ModelLlama31_8B:     "llama3.1",
	ModelPhi3Mini:       "phi3",
	ModelGPT4All:        "gpt4all",
}

// AllModels returns every known model in a stable order
func AllModels() []AIModel {
	return []AIModel{
		ModelGPT4o,
		ModelGemini20Flash,
		ModelClaude35Sonnet,
		ModelLlama33_70B,
		ModelDeepSeekChat,
		ModelMistral7B,
		ModelLlama31_8B,
		ModelPhi3Mini,
		ModelGPT4All,
	}
}

// Provider returns the provider that serves the model. Unknown models route
// to the default model's provider.
func (m AIModel) Provider() AIProvider {
	if p, ok := modelProviders[m]; ok {
		return p
	}
	return modelProviders[DefaultModel]
}

// WireName returns the identifier sent to the provider's API
func (m AIModel) WireName() string {
	if n, ok := wireNames[m]; ok {
		return n
	}
	return wireNames[DefaultModel]
}

// IsLocal reports whether the model runs on the local inference endpoint
func (m AIModel) IsLocal() bool {
	return m.Provider() == ProviderLocal
}

// ParseModel maps a model string back to an AIModel. Unknown or empty
// strings fall back to DefaultModel so a stale client never breaks routing.
func ParseModel(s string) AIModel {
	m := AIModel(s)
	if _, ok := modelProviders[m]; ok {
		return m
	}
	return DefaultModel
}
