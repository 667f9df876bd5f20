// ABOUTME: Main client for the Bookmarkcast library
// ABOUTME: Assembles the bookmark pipeline and delivery without any HTTP server

package bookmarkcast

import (
	"context"
	"strings"

	"bookmarkcast-api/core/delivery"
	"bookmarkcast-api/core/document"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/extractor"
	"bookmarkcast-api/core/generation"
	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/core/pipeline"
	"bookmarkcast-api/core/speech"
)

// Client is the main entry point for the Bookmarkcast library. It implements
// interfaces.PipelineRunner and interfaces.DeliveryService.
type Client struct {
	orchestrator *pipeline.Orchestrator
	delivery     *delivery.Service
	renderer     *document.Renderer
	config       Config
}

// NewClient creates a new client with the given options. A text generator
// and a speech client are required; a mailer is only needed for delivery.
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Cache:      config.Cache,
		Logger:     config.Logger,
	}

	generator := generation.NewService(config.TextGenerator, config.Logger)
	orchestrator, err := pipeline.NewOrchestrator(pipeline.Services{
		Extractor:   extractor.NewService(deps, config.ContentCacheTTL),
		Summarizer:  generator,
		Scripter:    generator,
		Synthesizer: speech.NewSynthesizer(config.SpeechClient, config.Voices),
		Assembler:   speech.NewAssembler(),
	}, config.Flags, config.Logger, pipeline.Config{
		MaxContentChars: config.MaxContentChars,
		Concurrency:     config.Concurrency,
		SummaryHeader:   config.SummaryHeader,
	})
	if err != nil {
		return nil, err
	}

	renderer, err := document.NewRenderer()
	if err != nil {
		orchestrator.Close()
		return nil, err
	}

	client := &Client{
		orchestrator: orchestrator,
		renderer:     renderer,
		config:       config,
	}
	if config.Mailer != nil {
		client.delivery = delivery.NewService(config.Mailer, renderer, config.Subject, config.Logger)
	}

	return client, nil
}

// Close releases the worker pool
func (c *Client) Close() error {
	c.orchestrator.Close()
	return nil
}

// Run processes bookmarks in order and returns the digest and audio
func (c *Client) Run(ctx context.Context, bookmarks []Bookmark) (*Result, error) {
	return c.orchestrator.Run(ctx, bookmarks)
}

// Deliver emails an existing result to recipient
func (c *Client) Deliver(ctx context.Context, recipient string, result *Result) error {
	if c.delivery == nil {
		return &errors.ConfigError{Field: "mailer", Message: "is required for delivery"}
	}
	return c.delivery.Deliver(ctx, recipient, result)
}

// Send runs the pipeline and emails the result. The recipient is checked
// before any bookmark is fetched.
func (c *Client) Send(ctx context.Context, recipient string, bookmarks []Bookmark) (*Result, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, &errors.ValidationError{Field: "recipient", Message: "must not be empty"}
	}
	if c.delivery == nil {
		return nil, &errors.ConfigError{Field: "mailer", Message: "is required for delivery"}
	}

	result, err := c.Run(ctx, bookmarks)
	if err != nil {
		return nil, err
	}
	if err := c.delivery.Deliver(ctx, recipient, result); err != nil {
		return result, err
	}
	return result, nil
}

// RenderHTML renders the digest of result as the HTML email body
func (c *Client) RenderHTML(result *Result) (string, error) {
	if result == nil {
		return "", &errors.ValidationError{Field: "result", Message: "must not be nil"}
	}
	return c.renderer.RenderHTML(result.Summary)
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.HTTPClient == nil {
		return &errors.ConfigError{Field: "http client", Message: "is required"}
	}
	if config.Logger == nil {
		return &errors.ConfigError{Field: "logger", Message: "is required"}
	}
	if config.TextGenerator == nil {
		return &errors.ConfigError{Field: "text generator", Message: "is required"}
	}
	if config.SpeechClient == nil {
		return &errors.ConfigError{Field: "speech client", Message: "is required"}
	}
	if config.Voices[SpeakerA] == "" || config.Voices[SpeakerB] == "" {
		return &errors.ConfigError{Field: "voices", Message: "both hosts need a voice"}
	}
	return nil
}
