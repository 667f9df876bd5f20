// ABOUTME: Custom error types for the bookmark-to-podcast pipeline
// ABOUTME: Separates per-bookmark, per-line and request-level failures so callers can isolate them

package errors

import (
	"errors"
	"fmt"
)

// ErrNoAudio is returned when no dialogue line survived speech synthesis
var ErrNoAudio = &NoAudioError{}

// ValidationError represents a validation error on an inbound request
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents a non-success answer from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// FetchError is returned when a page could not be retrieved after all attempts
// (network failure, timeout or non-2xx status).
type FetchError struct {
	URL        string
	Attempts   int
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s after %d attempt(s)", e.URL, e.Attempts)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when a page yields too little readable text
type ExtractionError struct {
	URL    string
	Length int
	Min    int
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("not enough readable content at %s: %d characters (minimum %d)", e.URL, e.Length, e.Min)
}

// GenerationError is returned when the text generation endpoint fails or
// answers without a usable candidate.
type GenerationError struct {
	Operation string
	Reason    string
	Err       error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("%s generation failed: %s", e.Operation, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// SynthesisError is returned when a single dialogue line could not be spoken
type SynthesisError struct {
	Speaker string
	Err     error
}

// Error implements the error interface
func (e *SynthesisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("speech synthesis failed for speaker %s", e.Speaker)
	}
	return fmt.Sprintf("speech synthesis failed for speaker %s: %v", e.Speaker, e.Err)
}

// Unwrap returns the underlying cause
func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// NoAudioError is returned by the assembler when there is nothing to concatenate
type NoAudioError struct{}

// Error implements the error interface
func (e *NoAudioError) Error() string {
	return "no audio clips to assemble"
}

// DeliveryError is returned when the email collaborator rejects or fails a send
type DeliveryError struct {
	Recipient  string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	msg := fmt.Sprintf("failed to deliver email to %s", e.Recipient)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ConfigError represents a missing or invalid setting detected at startup
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error on '%s': %s", e.Field, e.Message)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsGeneration checks if an error is a GenerationError
func IsGeneration(err error) bool {
	var generationErr *GenerationError
	return errors.As(err, &generationErr)
}

// IsSynthesis checks if an error is a SynthesisError
func IsSynthesis(err error) bool {
	var synthesisErr *SynthesisError
	return errors.As(err, &synthesisErr)
}

// IsNoAudio checks if an error is a NoAudioError
func IsNoAudio(err error) bool {
	var noAudioErr *NoAudioError
	return errors.As(err, &noAudioErr)
}

// IsDelivery checks if an error is a DeliveryError
func IsDelivery(err error) bool {
	var deliveryErr *DeliveryError
	return errors.As(err, &deliveryErr)
}

// IsConfig checks if an error is a ConfigError
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
