package assist

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when the config does not name one.
const DefaultModel = "gemini-3-flash-preview"

// GenAIGenerator calls the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini client for apiKey.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// Generate implements Generator.
func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", g.model, err)
	}
	return resp.Text(), nil
}

// NewGenerator returns a Gemini-backed Generator, or an Unavailable one
// carrying the reason when no client can be built.
func NewGenerator(ctx context.Context, apiKey, model string) Generator {
	g, err := NewGenAIGenerator(ctx, apiKey, model)
	if err != nil {
		return Unavailable{Err: err}
	}
	return g
}
