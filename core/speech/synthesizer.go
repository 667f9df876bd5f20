// ABOUTME: Per-line speech synthesis with a fixed voice per host
// ABOUTME: Reformats line text for natural prosody before calling the speech client

package speech

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"
)

var (
	spaces       = regexp.MustCompile(`\s+`)
	nameColon    = regexp.MustCompile(`\b([A-Z][a-z]+):\s`)
	sentenceStop = regexp.MustCompile(`([.!?])\s+`)
)

// Voices maps each host to a voice name of the speech backend
type Voices map[domain.Speaker]string

// Synthesizer implements interfaces.SpeechSynthesizer
type Synthesizer struct {
	client interfaces.SpeechClient
	voices Voices
}

// NewSynthesizer creates a synthesizer; voices must name both hosts
func NewSynthesizer(client interfaces.SpeechClient, voices Voices) *Synthesizer {
	return &Synthesizer{
		client: client,
		voices: voices,
	}
}

// SynthesizeLine speaks one dialogue line. Every failure is a *errors.SynthesisError
// so the caller can drop the line and continue.
func (s *Synthesizer) SynthesizeLine(ctx context.Context, line domain.DialogueLine) ([]byte, error) {
	voice, ok := s.voices[line.Speaker]
	if !ok || voice == "" {
		return nil, &errors.SynthesisError{Speaker: string(line.Speaker), Err: fmt.Errorf("no voice configured")}
	}

	text := FormatForSpeech(line.Text)
	if text == "" {
		return nil, &errors.SynthesisError{Speaker: string(line.Speaker), Err: fmt.Errorf("nothing to say")}
	}

	audio, err := s.client.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, &errors.SynthesisError{Speaker: string(line.Speaker), Err: err}
	}
	if len(audio) == 0 {
		return nil, &errors.SynthesisError{Speaker: string(line.Speaker), Err: fmt.Errorf("empty audio")}
	}

	return audio, nil
}

// FormatForSpeech normalizes whitespace, turns a leftover "Name: " tag into
// "Name, " so it is not read out as a label, and puts a paragraph break
// after each sentence.
func FormatForSpeech(text string) string {
	text = spaces.ReplaceAllString(strings.TrimSpace(text), " ")
	text = nameColon.ReplaceAllString(text, "$1, ")
	text = sentenceStop.ReplaceAllString(text, "$1\n\n")
	return strings.TrimSpace(text)
}
