package engine

import (
	"context"
	"fmt"

	"github.com/tartampluch/go-artclock/internal/config"
)

// Narrator turns a prompt into a single generated sentence.
// Implementations may block on the network and may fail; callers own the fallback.
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NarratorConfig holds what is needed to build any backend.
type NarratorConfig struct {
	Backend      string
	OllamaURL    string
	OllamaModel  string
	GeminiModel  string
	GeminiAPIKey string
}

// NewNarrator builds the configured backend. BackendNone yields a nil Narrator.
func NewNarrator(ctx context.Context, cfg NarratorConfig) (Narrator, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendOllama:
		n, err := NewOllamaNarrator(cfg.OllamaURL, cfg.OllamaModel)
		if err != nil {
			return nil, err
		}
		return n, nil
	case config.BackendGemini:
		n, err := NewGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
