package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryModelHasProviderAndWireName(t *testing.T) {
	for _, m := range AllModels() {
		assert.NotEmpty(t, m.Provider(), "model %s has no provider", m)
		assert.NotEmpty(t, m.WireName(), "model %s has no wire name", m)
	}
}

func TestParseModelRoundTrip(t *testing.T) {
	for _, m := range AllModels() {
		assert.Equal(t, m, ParseModel(string(m)))
	}
}

func TestParseModelFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultModel, ParseModel(""))
	assert.Equal(t, DefaultModel, ParseModel("gpt-9-ultra"))
}

func TestProviderRouting(t *testing.T) {
	cases := map[AIModel]AIProvider{
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
	for model, provider := range cases {
		assert.Equal(t, provider, model.Provider())
	}
}

func TestIsLocal(t *testing.T) {
	assert.True(t, ModelMistral7B.IsLocal())
	assert.True(t, ModelGPT4All.IsLocal())
	assert.False(t, ModelGPT4o.IsLocal())
	assert.False(t, ModelClaude35Sonnet.IsLocal())
}

func TestWireNamesDifferWhereAPIsRequire(t *testing.T) {
	assert.Equal(t, "claude-3-5-sonnet-latest", ModelClaude35Sonnet.WireName())
	assert.Equal(t, "llama-3.3-70b-versatile", ModelLlama33_70B.WireName())
	assert.Equal(t, "mistral", ModelMistral7B.WireName())
	assert.Equal(t, "gpt-4o", ModelGPT4o.WireName())
}
