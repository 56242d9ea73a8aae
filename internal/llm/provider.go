// Package llm generates an optional prose summary of a check run. The
// summary is presentation only: it never affects snapshot records, exit
// codes or the cache.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mshibata/eliwatch/internal/model"
)

// Provider is a chat-completion backend for summary generation.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete answers a single-prompt request.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds provider configuration.
type Config struct {
	Provider string // "openai", "ollama" or "" (disabled)
	Model    string
	APIKey   string
	BaseURL  string // OpenAI-compatible base URL; required for ollama
}

// NewProvider creates the configured provider. An empty provider name
// disables summarization and returns (nil, nil).
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIProvider(cfg)
	case "ollama":
		// Ollama speaks the OpenAI chat API; no key needed.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama"
		}
		return newOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}
