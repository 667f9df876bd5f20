// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for the server, content cache, fetcher, Gemini, TTS, mail and pipeline

package config

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"bookmarkcast-api/core/errors"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains content cache configuration
	Cache CacheConfig

	// Fetch controls how bookmark pages are retrieved
	Fetch FetchConfig

	Gemini   GeminiConfig
	TTS      TTSConfig
	Mail     MailConfig
	Pipeline PipelineConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RequestTimeout bounds one POST /podcast run end to end
	RequestTimeout time.Duration

	// RateLimit is the number of requests allowed per RateWindow per client IP
	RateLimit  int
	RateWindow time.Duration

	// SlowRequestThreshold is the duration above which a request is logged as slow
	SlowRequestThreshold time.Duration
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (none/memory/redis/sqlite)
	Type string

	// ContentTTL is how long an extracted page stays cached
	ContentTTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// FetchConfig holds the page fetch policy
type FetchConfig struct {
	Timeout        time.Duration
	Attempts       int
	Backoff        time.Duration
	UserAgent      string
	AcceptLanguage string
}

// GeminiConfig holds text generation settings
type GeminiConfig struct {
	APIKey string
	Model  string

	// RPS caps generation calls per second across all requests
	RPS float64
}

// TTSConfig holds Google Cloud Text-to-Speech settings.
// Credentials come from Application Default Credentials unless CredentialsFile is set.
type TTSConfig struct {
	LanguageCode    string
	VoiceA          string
	VoiceB          string
	RPS             float64
	CredentialsFile string
}

// MailConfig holds the transactional email API settings
type MailConfig struct {
	APIURL  string
	APIKey  string
	From    string
	Subject string
}

// PipelineConfig holds batch pipeline settings
type PipelineConfig struct {
	// MaxContentChars is how much extracted text is sent to the scripter per bookmark
	MaxContentChars int

	// Concurrency is the number of bookmarks processed at once; 1 keeps the run sequential
	Concurrency int
}

// LoggingConfig selects and configures the logger backend
type LoggingConfig struct {
	Backend string
	Level   string
	Format  string
	File    string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:                 getEnvOrDefault("PORT", "8000"),
			RequestTimeout:       getEnvAsDurationOrDefault("REQUEST_TIMEOUT", 10*time.Minute),
			RateLimit:            getEnvAsIntOrDefault("RATE_LIMIT", 10),
			RateWindow:           getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
			SlowRequestThreshold: getEnvAsDurationOrDefault("SLOW_REQUEST_THRESHOLD", 2*time.Minute),
		},
		Cache: CacheConfig{
			Type:       strings.ToLower(getEnvOrDefault("CACHE_TYPE", "none")),
			ContentTTL: getEnvAsDurationOrDefault("CONTENT_CACHE_TTL", time.Hour),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "cache.db"),
		},
		Fetch: FetchConfig{
			Timeout:        getEnvAsDurationOrDefault("FETCH_TIMEOUT", 15*time.Second),
			Attempts:       getEnvAsIntOrDefault("FETCH_ATTEMPTS", 3),
			Backoff:        getEnvAsDurationOrDefault("FETCH_BACKOFF", time.Second),
			UserAgent:      getEnvOrDefault("FETCH_USER_AGENT", ""),
			AcceptLanguage: getEnvOrDefault("FETCH_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			RPS:    getEnvAsFloatOrDefault("GEMINI_RPS", 2),
		},
		TTS: TTSConfig{
			LanguageCode:    getEnvOrDefault("GOOGLE_TTS_LANGUAGE", "en-US"),
			VoiceA:          getEnvOrDefault("GOOGLE_TTS_VOICE_A", "en-US-Journey-D"),
			VoiceB:          getEnvOrDefault("GOOGLE_TTS_VOICE_B", "en-US-Journey-F"),
			RPS:             getEnvAsFloatOrDefault("GOOGLE_TTS_RPS", 5),
			CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		},
		Mail: MailConfig{
			APIURL:  getEnvOrDefault("MAIL_API_URL", "https://api.resend.com/emails"),
			APIKey:  os.Getenv("MAIL_API_KEY"),
			From:    os.Getenv("MAIL_FROM"),
			Subject: getEnvOrDefault("MAIL_SUBJECT", "Your Bookmark Digest"),
		},
		Pipeline: PipelineConfig{
			MaxContentChars: getEnvAsIntOrDefault("PIPELINE_MAX_CONTENT_CHARS", 2000),
			Concurrency:     getEnvAsIntOrDefault("PIPELINE_CONCURRENCY", 1),
		},
		Logging: LoggingConfig{
			Backend: strings.ToLower(getEnvOrDefault("LOG_BACKEND", "logrus")),
			Level:   strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format:  strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:    os.Getenv("LOG_FILE"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go duration strings ("15s") or bare seconds ("15")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid. Every failure is a *errors.ConfigError.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return &errors.ConfigError{Field: "PORT", Message: "cannot be empty"}
	}
	if c.Server.RateLimit < 1 || c.Server.RateWindow <= 0 {
		return &errors.ConfigError{Field: "RATE_LIMIT", Message: "rate limit and window must be positive"}
	}

	switch c.Cache.Type {
	case "none", "memory", "sqlite":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return &errors.ConfigError{Field: "REDIS_ADDRESS", Message: "cannot be empty when using redis cache"}
		}
	default:
		return &errors.ConfigError{Field: "CACHE_TYPE", Message: "must be one of none, memory, redis, sqlite"}
	}

	if c.Fetch.Attempts < 1 {
		return &errors.ConfigError{Field: "FETCH_ATTEMPTS", Message: "must be at least 1"}
	}
	if c.Fetch.Timeout <= 0 {
		return &errors.ConfigError{Field: "FETCH_TIMEOUT", Message: "must be positive"}
	}

	if c.Gemini.APIKey == "" {
		return &errors.ConfigError{Field: "GEMINI_API_KEY", Message: "is required"}
	}
	if c.Gemini.Model == "" {
		return &errors.ConfigError{Field: "GEMINI_MODEL", Message: "cannot be empty"}
	}

	if c.TTS.VoiceA == "" || c.TTS.VoiceB == "" {
		return &errors.ConfigError{Field: "GOOGLE_TTS_VOICE_A", Message: "both speaker voices must be set"}
	}

	if c.Mail.APIURL == "" {
		return &errors.ConfigError{Field: "MAIL_API_URL", Message: "cannot be empty"}
	}
	if c.Mail.APIKey == "" {
		return &errors.ConfigError{Field: "MAIL_API_KEY", Message: "is required"}
	}
	if _, err := mail.ParseAddress(c.Mail.From); err != nil {
		return &errors.ConfigError{Field: "MAIL_FROM", Message: "must be a valid sender address"}
	}

	if c.Pipeline.MaxContentChars < 1 {
		return &errors.ConfigError{Field: "PIPELINE_MAX_CONTENT_CHARS", Message: "must be positive"}
	}
	if c.Pipeline.Concurrency < 1 {
		return &errors.ConfigError{Field: "PIPELINE_CONCURRENCY", Message: "must be at least 1"}
	}

	switch c.Logging.Backend {
	case "logrus", "zap":
	default:
		return &errors.ConfigError{Field: "LOG_BACKEND", Message: "must be logrus or zap"}
	}

	return nil
}
