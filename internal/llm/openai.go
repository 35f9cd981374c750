package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com/v1"
	openAIDefaultTimeout = 60 * time.Second
)

// OpenAIClient implements Client against the OpenAI chat completions API.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	baseURL := strings.TrimRight(config.OpenAIBaseURL, "/")
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}

	return &OpenAIClient{
		apiKey:  config.OpenAIAPIKey,
		model:   config.openAIModel(),
		baseURL: baseURL,
		client:  &http.Client{Timeout: openAIDefaultTimeout},
	}, nil
}

// Complete sends the conversation to OpenAI and returns the generated text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	body, err := json.Marshal(openAIChatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("openai error: status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := CleanResponse(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion in response")
	}
	return text, nil
}

// Provider returns the OpenAI provider identifier.
func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

// Close is a no-op for the OpenAI client.
func (c *OpenAIClient) Close() error {
	return nil
}
