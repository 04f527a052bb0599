package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// OllamaClient talks to an Ollama runtime for schema-constrained
// completions and text embeddings.
type OllamaClient struct {
	api            *api.Client
	model          string
	embeddingModel string
	policy         RetryPolicy
}

// NewOllamaClient creates a client from the LLM configuration
func NewOllamaClient(cfg config.LLMConfig) (*OllamaClient, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}
	return &OllamaClient{
		api:            api.NewClient(base, &http.Client{Timeout: cfg.RequestTimeout}),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		policy: RetryPolicy{
			MaxAttempts:     cfg.MaxAttempts,
			InitialInterval: cfg.InitialBackoff,
			MaxInterval:     DefaultRetryPolicy.MaxInterval,
		},
	}, nil
}

// Complete sends prompt with a JSON schema as the output format and returns
// the raw model response.
func (c *OllamaClient) Complete(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	ctx, done := utils.StartSubsegment(ctx, "Ollama.Generate")

	stream := false
	req := &api.GenerateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Format:  schema,
		Stream:  &stream,
		Options: map[string]interface{}{"temperature": 0.2},
	}

	var out strings.Builder
	err := retry(ctx, c.policy, func() error {
		out.Reset()
		return c.api.Generate(ctx, req, func(resp api.GenerateResponse) error {
			out.WriteString(resp.Response)
			return nil
		})
	})
	done(err)
	if err != nil {
		return "", unavailable("generate", err)
	}
	return out.String(), nil
}

// Embed returns the embedding vector of text
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, done := utils.StartSubsegment(ctx, "Ollama.Embed")

	var vec []float32
	err := retry(ctx, c.policy, func() error {
		resp, err := c.api.Embed(ctx, &api.EmbedRequest{Model: c.embeddingModel, Input: text})
		if err != nil {
			return err
		}
		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
			return errors.New("empty embedding")
		}
		vec = resp.Embeddings[0]
		return nil
	})
	done(err)
	if err != nil {
		return nil, unavailable("embed", err)
	}
	return vec, nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: ollama %s: %v", apperrors.ErrGenerationUnavailable, op, err)
}

// Ping checks the runtime is reachable
func (c *OllamaClient) Ping(ctx context.Context) error {
	return c.api.Heartbeat(ctx)
}
