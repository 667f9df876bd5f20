package config

import (
	"os"
	"testing"
	"time"

	"bookmarkcast-api/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv() map[string]string {
	return map[string]string{
		"GEMINI_API_KEY": "gemini-key",
		"MAIL_API_KEY":   "mail-key",
		"MAIL_FROM":      "Digest <digest@example.com>",
	}
}

func loadWith(t *testing.T, env map[string]string) *Config {
	t.Helper()
	os.Clearenv()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	return cfg
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg := loadWith(t, validEnv())

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "none", cfg.Cache.Type, "content is not kept between requests unless configured")
	assert.Equal(t, time.Hour, cfg.Cache.ContentTTL)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.Attempts)
	assert.Equal(t, time.Second, cfg.Fetch.Backoff)
	assert.Equal(t, 2000, cfg.Pipeline.MaxContentChars)
	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.Equal(t, "logrus", cfg.Logging.Backend)
	assert.Equal(t, "en-US", cfg.TTS.LanguageCode)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	env := validEnv()
	env["PORT"] = "3000"
	env["CACHE_TYPE"] = "SQLite"
	env["FETCH_TIMEOUT"] = "5s"
	env["CONTENT_CACHE_TTL"] = "120"
	env["PIPELINE_CONCURRENCY"] = "4"
	env["GEMINI_RPS"] = "0.5"

	cfg := loadWith(t, env)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Cache.Type)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ContentTTL)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Equal(t, 0.5, cfg.Gemini.RPS)
}

func TestLoadFromEnv_InvalidNumbersFallBack(t *testing.T) {
	env := validEnv()
	env["FETCH_ATTEMPTS"] = "many"
	env["FETCH_BACKOFF"] = "soon"

	cfg := loadWith(t, env)

	assert.Equal(t, 3, cfg.Fetch.Attempts)
	assert.Equal(t, time.Second, cfg.Fetch.Backoff)
}

func TestValidate_ReturnsConfigError(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		set   map[string]string
		field string
	}{
		{name: "missing gemini key", unset: "GEMINI_API_KEY", field: "GEMINI_API_KEY"},
		{name: "missing mail key", unset: "MAIL_API_KEY", field: "MAIL_API_KEY"},
		{name: "invalid sender", set: map[string]string{"MAIL_FROM": "not-an-address"}, field: "MAIL_FROM"},
		{name: "unknown cache", set: map[string]string{"CACHE_TYPE": "memcached"}, field: "CACHE_TYPE"},
		{name: "zero concurrency", set: map[string]string{"PIPELINE_CONCURRENCY": "0"}, field: "PIPELINE_CONCURRENCY"},
		{name: "unknown logger", set: map[string]string{"LOG_BACKEND": "syslog"}, field: "LOG_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := validEnv()
			delete(env, tt.unset)
			for k, v := range tt.set {
				env[k] = v
			}
			cfg := loadWith(t, env)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))

			configErr := err.(*errors.ConfigError)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}
