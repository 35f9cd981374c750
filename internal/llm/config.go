// Package llm provides completion clients for the text-generation
// providers used by itinerary generation.
package llm

import "fmt"

// Provider identifies a text-generation backend.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// DefaultProvider is used when a request does not name one.
const DefaultProvider = ProviderGemini

// Default models per provider.
const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

// ParseProvider validates a provider identifier. An empty id resolves to
// the default provider.
func ParseProvider(id string) (Provider, error) {
	switch Provider(id) {
	case "":
		return DefaultProvider, nil
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown provider %q", id)
	}
}

// Config holds provider credentials and model overrides.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

// geminiModel returns the configured Gemini model or the default.
func (c *Config) geminiModel() string {
	if c.GeminiModel != "" {
		return c.GeminiModel
	}
	return defaultGeminiModel
}

// openAIModel returns the configured OpenAI model or the default.
func (c *Config) openAIModel() string {
	if c.OpenAIModel != "" {
		return c.OpenAIModel
	}
	return defaultOpenAIModel
}
