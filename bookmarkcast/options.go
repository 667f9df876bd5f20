// ABOUTME: Configuration options for the Bookmarkcast library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package bookmarkcast

import (
	"time"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/pkg/featureflags"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	// Page fetching and caching
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	// Model, speech and email backends
	TextGenerator interfaces.TextGenerator
	SpeechClient  interfaces.SpeechClient
	Mailer        interfaces.Mailer

	// Voices maps both hosts to backend voice names
	Voices map[domain.Speaker]string

	Flags featureflags.Manager

	ContentCacheTTL time.Duration
	MaxContentChars int
	Concurrency     int
	SummaryHeader   string
	Subject         string
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets the client used to fetch bookmarked pages
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithTextGenerator sets the model used for summaries and scripts
func WithTextGenerator(generator interfaces.TextGenerator) Option {
	return func(c *Config) error {
		c.TextGenerator = generator
		return nil
	}
}

// WithSpeechClient sets the speech backend and the voice of each host
func WithSpeechClient(client interfaces.SpeechClient, voiceA, voiceB string) Option {
	return func(c *Config) error {
		c.SpeechClient = client
		c.Voices = map[domain.Speaker]string{
			domain.SpeakerA: voiceA,
			domain.SpeakerB: voiceB,
		}
		return nil
	}
}

// WithMailer sets the email backend used by Deliver and Send
func WithMailer(mailer interfaces.Mailer, subject string) Option {
	return func(c *Config) error {
		c.Mailer = mailer
		if subject != "" {
			c.Subject = subject
		}
		return nil
	}
}

// WithFeatureFlags sets the flag manager consulted on each run
func WithFeatureFlags(flags featureflags.Manager) Option {
	return func(c *Config) error {
		c.Flags = flags
		return nil
	}
}

// WithContentCacheTTL sets how long extracted pages stay cached
func WithContentCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.ContentCacheTTL = ttl
		return nil
	}
}

// WithMaxContentChars sets how much page text is sent to the scripter
func WithMaxContentChars(n int) Option {
	return func(c *Config) error {
		c.MaxContentChars = n
		return nil
	}
}

// WithConcurrency sets how many bookmarks are processed at once
func WithConcurrency(n int) Option {
	return func(c *Config) error {
		c.Concurrency = n
		return nil
	}
}

// WithSummaryHeader overrides the heading of the digest
func WithSummaryHeader(header string) Option {
	return func(c *Config) error {
		c.SummaryHeader = header
		return nil
	}
}
