package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tartampluch/go-artclock/internal/config"
	"google.golang.org/genai"
)

// GeminiNarrator generates sentences with the Gemini API.
type GeminiNarrator struct {
	client *genai.Client
	model  string
}

// NewGeminiNarrator creates the client. The key usually comes from the OS keyring.
func NewGeminiNarrator(ctx context.Context, apiKey, model string) (*GeminiNarrator, error) {
	return newGeminiNarrator(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newGeminiNarrator(ctx context.Context, cc *genai.ClientConfig, model string) (*GeminiNarrator, error) {
	if cc.APIKey == "" {
		return nil, errors.New(config.ErrGeminiKey)
	}
	if model == "" {
		model = config.DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrGeminiClient, err)
	}

	return &GeminiNarrator{client: client, model: model}, nil
}

// Name identifies the backend and model in logs.
func (g *GeminiNarrator) Name() string {
	return config.BackendGemini + ":" + g.model
}

// Generate asks the model for one short sentence.
func (g *GeminiNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](config.NarrativeTemperature),
			MaxOutputTokens: config.NarrativeMaxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New(config.ErrNarratorEmpty)
	}
	return text, nil
}
