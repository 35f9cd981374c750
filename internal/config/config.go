// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/travel-planner/internal/llm"
	internalschemas "github.com/jonathan/travel-planner/internal/schemas"
	"github.com/jonathan/travel-planner/schemas"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Generation
	Provider     string `json:"provider,omitempty"`       // Completion provider id ("gemini" or "openai")
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	OpenAIAPIKey string `json:"openai_api_key,omitempty"` // OpenAI API key
	OpenAIModel  string `json:"openai_model,omitempty"`   // OpenAI model override

	// Server
	Port    string `json:"port,omitempty"`    // HTTP listen port
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := internalschemas.ValidateJSONString(schemas.ConfigSchema, string(data)); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Values
// already set on the receiver win over the environment.
func (c *Config) FromEnv() *Config {
	result := *c
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if result.Provider == "" {
		result.Provider = os.Getenv("GENERATION_PROVIDER")
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if result.OpenAIModel == "" {
		result.OpenAIModel = os.Getenv("OPENAI_MODEL")
	}
	if result.Port == "" {
		result.Port = os.Getenv("PORT")
	}
	return &result
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Provider != "" {
		if _, err := llm.ParseProvider(c.Provider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// LLMConfig converts the loaded configuration into the completion
// client's configuration.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		GeminiAPIKey: c.GeminiAPIKey,
		OpenAIAPIKey: c.OpenAIAPIKey,
		OpenAIModel:  c.OpenAIModel,
	}
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.OpenAIModel == "" {
		result.OpenAIModel = defaults.OpenAIModel
	}
	if result.Port == "" {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
