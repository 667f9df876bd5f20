package main

import (
	"context"
	"io"
	"testing"
	"time"

	"bookmarkcast-api/infrastructure/cache/memory"
	logruslogger "bookmarkcast-api/infrastructure/logger/logrus"
	"bookmarkcast-api/pkg/config"
	"bookmarkcast-api/pkg/featureflags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logruslogger.Logger {
	return logruslogger.NewLogger(logruslogger.Options{Level: "error", Output: io.Discard})
}

func TestNewCache_OffByDefault(t *testing.T) {
	t.Setenv("CACHE_TYPE", "")
	t.Setenv("WIRING_CONTENT_CACHE", "")

	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)

	cache, cleanup := newCache(context.Background(), cfg.Cache, featureflags.NewEnvManager("WIRING_"), quietLogger())
	defer cleanup()

	assert.Nil(t, cache)
}

func TestNewCache_NeedsBothBackendAndFlag(t *testing.T) {
	ctx := context.Background()
	cfg := config.CacheConfig{Type: "memory", ContentTTL: time.Minute}

	off := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.ContentCache: false})
	cache, cleanup := newCache(ctx, cfg, off, quietLogger())
	cleanup()
	assert.Nil(t, cache, "flag off")

	on := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.ContentCache: true})
	cache, cleanup = newCache(ctx, config.CacheConfig{Type: "none"}, on, quietLogger())
	cleanup()
	assert.Nil(t, cache, "no backend")

	cache, cleanup = newCache(ctx, cfg, on, quietLogger())
	defer cleanup()
	assert.IsType(t, &memory.MemoryCache{}, cache)
}
