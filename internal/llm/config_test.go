package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_GeminiTiers(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)

	tests := []struct {
		tier  ModelTier
		model string
	}{
		{TierLite, "gemini-2.5-flash-lite"},
		{TierStandard, "gemini-2.5-flash"},
		{TierAdvanced, "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.model, config.ModelFor(tt.tier), "tier %s", tt.tier)
	}
}

func TestModelFor_FallbackChain(t *testing.T) {
	onlyLite := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "lite-only"},
	}

	// Unknown tier walks standard then lite.
	assert.Equal(t, "lite-only", onlyLite.ModelFor("unknown"))
	assert.Equal(t, "lite-only", onlyLite.ModelFor(TierAdvanced))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.ModelFor(TierAdvanced))
}

func TestTemperatureFor(t *testing.T) {
	config := DefaultConfig()

	// Drafting tier keeps variance; extraction tiers run cold.
	assert.InDelta(t, 0.6, config.TemperatureFor(TierAdvanced), 0.001)
	assert.InDelta(t, 0.1, config.TemperatureFor(TierStandard), 0.001)

	// Tiers without an entry fall back to the cold JSON temperature.
	bare := &Config{Provider: ProviderGemini}
	assert.InDelta(t, 0.1, bare.TemperatureFor(TierAdvanced), 0.001)
}

func TestWithModel_CopiesNotMutates(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", config.ModelFor(TierAdvanced))
	assert.Equal(t, "custom-model", custom.ModelFor(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", custom.ModelFor(TierLite))

	// Temperatures carry over to the copy.
	assert.InDelta(t, 0.6, custom.TemperatureFor(TierAdvanced), 0.001)
}
