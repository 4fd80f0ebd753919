package ai

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator produces text from a prompt via a generative provider.
type TextGenerator interface {
	// Name identifies the backing provider for diagnostics.
	Name() string
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewGenerator builds a TextGenerator for the named provider.
// An empty provider returns (nil, nil): callers treat a nil generator
// as "no provider configured" and use their local fallback.
func NewGenerator(provider, apiKey, baseURL, model string) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "none":
		return nil, nil
	case "gemini":
		return NewGeminiGenerator(apiKey, model)
	case "openai", "openai-compat":
		return NewOpenAICompatGenerator(baseURL, apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", provider)
	}
}
