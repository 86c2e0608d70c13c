package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/webchat/config"
	gemini_provider "github.com/mohammad-safakhou/webchat/provider/gemini"
	openai_provider "github.com/mohammad-safakhou/webchat/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	Gemini Client = "gemini"
	OpenAI Client = "openai"
)

// Provider is the interface that all LLM implementations must satisfy.
// system may be empty; implementations then send only the user prompt.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewProvider creates a new LLM client based on the provided configuration.
// A missing API key is a constructor error so that misconfiguration is caught
// at startup rather than on the first turn.
func NewProvider(client Client, cfg config.LLMConfig) (Provider, error) {
	switch client {
	case Gemini:
		return gemini_provider.NewGeminiClient(cfg.APIKey, cfg.ChatModel, cfg.Temperature, cfg.MaxTokens)
	case OpenAI:
		return openai_provider.NewOpenAIClient(cfg.APIKey, cfg.ChatModel, cfg.Temperature, cfg.MaxTokens, cfg.Timeout)
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
