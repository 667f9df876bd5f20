// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default service implementations

package bookmarkcast

import (
	"os"
	"time"

	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/core/pipeline"
	"bookmarkcast-api/infrastructure/cache/memory"
	"bookmarkcast-api/infrastructure/cache/sqlite"
	httpInfra "bookmarkcast-api/infrastructure/http/standard"
	loggerInfra "bookmarkcast-api/infrastructure/logger/logrus"
)

// DefaultSubject is the email subject used when none is configured
const DefaultSubject = "Your bookmark digest and podcast"

// DefaultHTTPClient creates a page fetch client with the standard retry policy
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(httpInfra.DefaultConfig())
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache(time.Hour)
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath)
}

// DefaultLogger creates a text logger that writes to stderr
func DefaultLogger() interfaces.Logger {
	return loggerInfra.NewLogger(loggerInfra.Options{Level: "info", Format: "text", Output: os.Stderr})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

// quietLogger is a logger that discards all output
type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// WithSQLiteCache caches extracted pages in a SQLite file
func WithSQLiteCache(filePath string) Option {
	return func(c *Config) error {
		if filePath == "" {
			filePath = "bookmarkcast_cache.db"
		}
		cache, err := DefaultSQLiteCache(filePath)
		if err != nil {
			return err
		}
		c.Cache = cache
		return nil
	}
}

// defaultConfig returns the default client configuration. The cache is nil
// so nothing is cached unless an option sets one, and with no flag manager
// audio is always produced.
func defaultConfig() Config {
	return Config{
		HTTPClient:      DefaultHTTPClient(),
		Logger:          DefaultLogger(),
		ContentCacheTTL: time.Hour,
		MaxContentChars: pipeline.DefaultMaxContentChars,
		Concurrency:     1,
		Subject:         DefaultSubject,
	}
}
