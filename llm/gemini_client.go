// backend/llm/gemini_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY missing")

// GeminiClient is a TextGenerator backed by the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration // zero means no deadline beyond the caller's context
}

// NewGeminiClient builds the process-wide Gemini client. Call once at startup.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		return nil, errors.New("gemini model name is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Printf("LLM: Gemini client ready (model: %s)\n", model)
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string { return c.model }

// GenerateText implements TextGenerator.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", c.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini %s: response has no candidates", c.model)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini %s: response has no text parts", c.model)
	}
	return text, nil
}

// withTimeout applies the configured deadline, if any.
func (c *GeminiClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}
