// ABOUTME: Service and collaborator interfaces for the bookmark-to-podcast pipeline
// ABOUTME: Core services depend on these ports; infrastructure packages implement them

package interfaces

import (
	"context"

	"bookmarkcast-api/core/domain"
)

// TextGenerator sends a free-text prompt to a generative model and returns
// the first candidate's text. Implementations must validate the response
// shape and return a GenerationError when no usable candidate exists.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SpeechClient turns text into audio bytes using the given voice
type SpeechClient interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Mailer hands a rendered message to the transactional email service
type Mailer interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// ContentExtractor fetches a URL and reduces it to readable text
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*domain.ExtractedContent, error)
}

// Summarizer produces a short prose summary of extracted text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Scripter produces a raw two-host dialogue script from extracted text
type Scripter interface {
	Script(ctx context.Context, title, text string) (string, error)
}

// SpeechSynthesizer speaks a single dialogue line
type SpeechSynthesizer interface {
	SynthesizeLine(ctx context.Context, line domain.DialogueLine) ([]byte, error)
}

// AudioAssembler concatenates per-line clips into one track
type AudioAssembler interface {
	Assemble(clips [][]byte) ([]byte, error)
}

// PipelineRunner runs the batch pipeline over a bookmark list
type PipelineRunner interface {
	Run(ctx context.Context, bookmarks []domain.Bookmark) (*domain.PipelineResult, error)
}

// DeliveryService emails a pipeline result to a recipient
type DeliveryService interface {
	Deliver(ctx context.Context, recipient string, result *domain.PipelineResult) error
}
