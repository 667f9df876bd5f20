// ABOUTME: Google Cloud Text-to-Speech client producing MP3 clips
// ABOUTME: Rate limits synthesize calls and rejects empty audio responses

package google

import (
	"context"
	"fmt"

	"bookmarkcast-api/pkg/config"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

type synthesizeFunc func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)

// Client implements interfaces.SpeechClient
type Client struct {
	synthesize   synthesizeFunc
	languageCode string
	limiter      *rate.Limiter
	closer       func() error
}

// NewClient dials the Text-to-Speech API using Application Default
// Credentials, or cfg.CredentialsFile when set.
func NewClient(ctx context.Context, cfg config.TTSConfig) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	ttsClient, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	c := newClient(func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
		return ttsClient.SynthesizeSpeech(ctx, req)
	}, cfg.LanguageCode, cfg.RPS)
	c.closer = ttsClient.Close
	return c, nil
}

func newClient(fn synthesizeFunc, languageCode string, rps float64) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &Client{
		synthesize:   fn,
		languageCode: languageCode,
		limiter:      rate.NewLimiter(limit, 1),
	}
}

// Synthesize speaks text with the named voice and returns MP3 bytes
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: c.languageCode,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := c.synthesize(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("voice %s returned no audio", voice)
	}

	return resp.GetAudioContent(), nil
}

// Close releases the underlying gRPC connection
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
