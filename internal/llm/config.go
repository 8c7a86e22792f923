// Package llm provides centralized LLM configuration and client abstractions.
// The engine uses LLMs only at ingestion time, to classify raw documentation
// into artifact records; selection itself never calls a model.
package llm

// ModelTier names a capability level so call sites pick "how much model"
// they need instead of a concrete model name.
type ModelTier string

const (
	// TierLite handles fragment splitting and kind classification.
	TierLite ModelTier = "lite"
	// TierStandard handles signature view generation.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles multi-document analysis.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider, the only one wired up.
const ProviderGemini Provider = "gemini"

// Config maps model tiers to concrete provider models.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig maps the tiers onto the Gemini model family.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, falling back through standard
// and lite when the tier itself is unmapped. Empty means nothing usable is
// configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, candidate := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[candidate]; ok {
			return model
		}
	}
	return ""
}
