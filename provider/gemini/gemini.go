package gemini_provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// client implements the provider interface using Google's Gemini API.
// The underlying SDK client is created on first use and shared for the life
// of the process; the sync.Once guard keeps concurrent first calls from
// racing the initialization.
type client struct {
	apiKey      string
	model       string
	temperature float32
	maxTokens   int32

	once    sync.Once
	genai   *genai.Client
	initErr error
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(apiKey, model string, temperature float64, maxTokens int) (*client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key not set")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &client{
		apiKey:      apiKey,
		model:       model,
		temperature: float32(temperature),
		maxTokens:   int32(maxTokens),
	}, nil
}

func (c *client) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		c.genai, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return c.genai, c.initErr
}

// Complete sends the prompt to Gemini and returns the generated text.
func (c *client) Complete(ctx context.Context, system, user string) (string, error) {
	gc, err := c.ensureClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if c.maxTokens > 0 {
		cfg.MaxOutputTokens = c.maxTokens
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := gc.Models.GenerateContent(ctx, c.model, genai.Text(user), cfg)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}
