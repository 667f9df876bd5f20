// ABOUTME: Construction helpers for the logger and content cache backends
// ABOUTME: Selects implementations from configuration and feature flags

package main

import (
	"context"

	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/infrastructure/cache/memory"
	"bookmarkcast-api/infrastructure/cache/redis"
	"bookmarkcast-api/infrastructure/cache/sqlite"
	logruslogger "bookmarkcast-api/infrastructure/logger/logrus"
	zaplogger "bookmarkcast-api/infrastructure/logger/zap"
	"bookmarkcast-api/pkg/config"
	"bookmarkcast-api/pkg/featureflags"
)

// newLogger builds the configured logger backend and its cleanup function
func newLogger(cfg config.LoggingConfig) (interfaces.Logger, func(), error) {
	switch cfg.Backend {
	case "zap":
		l, err := zaplogger.NewLogger(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = l.Close() }, nil
	default:
		l := logruslogger.NewLogger(logruslogger.Options{
			Level:  cfg.Level,
			Format: cfg.Format,
			File:   cfg.File,
		})
		return l, func() { _ = l.Close() }, nil
	}
}

// newCache returns the cross-request content cache, or nil when caching is off.
// It is off by default: CACHE_TYPE must name a backend and FEATURE_CONTENT_CACHE
// must be set. Backend failures fall back to the in-memory cache.
func newCache(ctx context.Context, cfg config.CacheConfig, flags featureflags.Manager, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}

	if cfg.Type == "none" || !flags.IsEnabled(ctx, featureflags.ContentCache) {
		logger.Info("Content cache disabled", nil)
		return nil, noop
	}

	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }

	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"path":  cfg.SQLitePath,
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLitePath,
		})
		return sqliteCache, func() { _ = sqliteCache.Close() }
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(cfg.ContentTTL), noop
}
