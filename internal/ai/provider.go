// Package ai provides a unified interface to text-completion providers.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/observon/sheetsight/internal/config"
)

// Message is a single message in a completion request.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Options configures a single completion call.
type Options struct {
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Result holds the response from a completion call.
type Result struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"inputTokens,omitempty"`
	OutputTokens int    `json:"outputTokens,omitempty"`
}

// Provider is implemented by every completion backend.
type Provider interface {
	// Complete sends a system instruction and messages, returning the
	// generated text.
	Complete(ctx context.Context, system string, messages []Message, opts Options) (*Result, error)

	// Name returns the provider identifier.
	Name() string
}

// NewProvider creates a provider instance by name, resolving its API key
// from the environment or config file.
func NewProvider(name, model string) (Provider, error) {
	switch strings.ToLower(name) {
	case "openai":
		apiKey, err := config.GetAPIKey("openai")
		if err != nil {
			return nil, err
		}
		return NewOpenAIProvider(apiKey, model), nil
	case "gemini":
		apiKey, err := config.GetAPIKey("gemini")
		if err != nil {
			return nil, err
		}
		return NewGeminiProvider(apiKey, model), nil
	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			if cfg, err := config.Load(); err == nil {
				host = cfg.Ollama.Host
			}
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q — supported providers: openai, gemini, ollama", name)
	}
}
