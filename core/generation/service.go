// ABOUTME: Summary and dialogue generation over a shared text generator
// ABOUTME: Each call is a single request with no retry; failures become GenerationErrors

package generation

import (
	"context"
	"fmt"
	"strings"

	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"
)

// Service implements interfaces.Summarizer and interfaces.Scripter
type Service struct {
	generator interfaces.TextGenerator
	logger    interfaces.Logger
}

// NewService creates a generation service
func NewService(generator interfaces.TextGenerator, logger interfaces.Logger) *Service {
	return &Service{
		generator: generator,
		logger:    logger,
	}
}

// Summarize returns a prose summary of text
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, "summary", fmt.Sprintf(summaryPrompt, text))
}

// Script returns a raw "A: ..." / "B: ..." dialogue about the titled text.
// The result is unparsed; callers must treat it as untrusted.
func (s *Service) Script(ctx context.Context, title, text string) (string, error) {
	return s.generate(ctx, "script", fmt.Sprintf(scriptPrompt, title, text))
}

func (s *Service) generate(ctx context.Context, operation, prompt string) (string, error) {
	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("Text generation failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return "", &errors.GenerationError{Operation: operation, Reason: "generator error", Err: err}
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", &errors.GenerationError{Operation: operation, Reason: "empty response"}
	}

	return out, nil
}
