package llm

import (
	"context"
	"fmt"
)

// Message roles understood by every provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a single-message conversation from a prompt.
func UserMessage(prompt string) []Message {
	return []Message{{Role: RoleUser, Content: prompt}}
}

// Client is an abstraction over text-generation providers.
type Client interface {
	// Complete sends the conversation to the provider and returns the
	// generated text. Any error terminates the caller's current stage.
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
	// Provider returns the identifier of the backing provider.
	Provider() Provider
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a completion client for the given provider.
func NewClient(ctx context.Context, provider Provider, config *Config) (Client, error) {
	if config == nil {
		config = &Config{}
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderOpenAI:
		return NewOpenAIClient(config)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
