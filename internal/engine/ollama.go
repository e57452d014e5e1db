package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tartampluch/go-artclock/internal/config"
)

// OllamaNarrator generates sentences with a local Ollama server.
type OllamaNarrator struct {
	Client   *http.Client
	endpoint string
	model    string
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// NewOllamaNarrator validates the endpoint and applies defaults for empty values.
func NewOllamaNarrator(endpoint, model string) (*OllamaNarrator, error) {
	if endpoint == "" {
		endpoint = config.DefaultOllamaURL
	}
	if model == "" {
		model = config.DefaultOllamaModel
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	return &OllamaNarrator{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
	}, nil
}

// Name identifies the backend and model in logs.
func (o *OllamaNarrator) Name() string {
	return config.BackendOllama + ":" + o.model
}

// Generate sends a non-streaming generate request and returns the trimmed response.
func (o *OllamaNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Options: ollamaOptions{
			Temperature: config.NarrativeTemperature,
			NumPredict:  config.NarrativeMaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrEncodeRequest, err)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompNarrator),
		slog.String(config.LogKeyURL, o.endpoint),
		slog.String(config.LogKeyModel, o.model),
	)
	log.Debug("Requesting narrative")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+config.OllamaGeneratePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderContentType, config.MimeJSON)
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error during generate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return "", fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, config.MaxHTTPResponseSize)).Decode(&result); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrDecodeResponse, err)
	}

	text := strings.TrimSpace(result.Response)
	if text == "" {
		return "", errors.New(config.ErrNarratorEmpty)
	}
	return text, nil
}
