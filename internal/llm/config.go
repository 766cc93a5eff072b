// Package llm wraps the Gemini API behind a small client interface with
// tiered model selection: cheap models for classification, a mid model for
// structured extraction, and the strongest model for drafting prose.
package llm

import "maps"

// ModelTier names a capability level; callers pick a tier, never a model.
type ModelTier string

const (
	TierLite     ModelTier = "lite"     // classification, short summaries
	TierStandard ModelTier = "standard" // offer field extraction, structured output
	TierAdvanced ModelTier = "advanced" // negotiation script drafting
)

// Provider identifies an LLM backend. Only Gemini is implemented; the other
// constants reserve config values so a future backend is not a breaking
// change.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// jsonTemperature is used for all JSON-mode generation regardless of tier.
// Structured outputs feed schema validation and want repeatable answers.
const jsonTemperature float32 = 0.1

// Config maps model tiers to provider models and sampling temperatures.
type Config struct {
	Provider     Provider
	Models       map[ModelTier]string
	Temperatures map[ModelTier]float32
}

// DefaultConfig is the production configuration, currently Gemini.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration.
// Extraction tiers run cold; the advanced tier keeps some variance so
// generated scripts do not all read identically.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperatures: map[ModelTier]float32{
			TierLite:     0.1,
			TierStandard: 0.1,
			TierAdvanced: 0.6,
		},
	}
}

// ModelFor returns the model name for a tier, walking down to standard and
// then lite when the requested tier has no model configured.
func (c *Config) ModelFor(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// TemperatureFor returns the sampling temperature for a tier, defaulting to
// the cold JSON temperature when the tier has none configured.
func (c *Config) TemperatureFor(tier ModelTier) float32 {
	if temp, ok := c.Temperatures[tier]; ok {
		return temp
	}
	return jsonTemperature
}

// WithModel returns a copy of the Config with one tier's model replaced.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := &Config{
		Provider:     c.Provider,
		Models:       maps.Clone(c.Models),
		Temperatures: maps.Clone(c.Temperatures),
	}
	if clone.Models == nil {
		clone.Models = make(map[ModelTier]string)
	}
	clone.Models[tier] = model
	return clone
}
