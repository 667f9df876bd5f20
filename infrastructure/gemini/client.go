// ABOUTME: Gemini text generation client built on the google.golang.org/genai SDK
// ABOUTME: Issues one GenerateContent call per prompt under a shared rate limit

package gemini

import (
	"context"
	"strings"

	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/pkg/config"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// generator is the subset of *genai.Models used by the client
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements interfaces.TextGenerator against the Gemini API
type Client struct {
	models  generator
	model   string
	limiter *rate.Limiter
}

// NewClient creates a Gemini client using the API key backend
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &errors.ConfigError{Field: "GEMINI_API_KEY", Message: "is required"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.WrapError(err, "create gemini client")
	}

	return newClient(client.Models, cfg.Model, cfg.RPS), nil
}

func newClient(models generator, model string, rps float64) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		models:  models,
		model:   model,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Generate sends prompt as a single user turn and returns the concatenated
// text of the first candidate. A missing candidate, content or text is a
// *errors.GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &errors.GenerationError{Operation: "gemini", Reason: "rate limiter", Err: err}
	}

	result, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &errors.GenerationError{Operation: "gemini", Reason: "request failed", Err: err}
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", &errors.GenerationError{Operation: "gemini", Reason: "response has no candidates"}
	}
	candidate := result.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", &errors.GenerationError{Operation: "gemini", Reason: "candidate has no content"}
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", &errors.GenerationError{Operation: "gemini", Reason: "candidate has no text"}
	}

	return text.String(), nil
}
