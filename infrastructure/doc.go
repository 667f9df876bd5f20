// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, model calls, speech, email and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache on go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: File-backed cache on SQLite
// - http/standard: HTTP client with the page fetch retry policy
// - gemini: Text generation through the Gemini API
// - tts/google: Google Cloud Text-to-Speech client
// - mail/httpapi: Transactional email over a JSON HTTP API
// - logger/logrus, logger/zap: Structured logger backends
//
// # HTTP Client
//
// GET requests are retried on transport errors and non-2xx statuses, with a
// linear backoff after each failed attempt:
//
//	client := standard.NewStandardHTTPClient(standard.DefaultConfig())
//	resp, err := client.Get(ctx, "https://example.com/article")
//	if err != nil {
//	    // *errors.FetchError after the last attempt
//	}
//	defer resp.Body().Close()
//
// # Rate limits
//
// The Gemini and Text-to-Speech clients wait on a token bucket before every
// call so concurrent requests share one quota.
//
// # Logger
//
// Both logger backends accept the same structured fields:
//
//	logger := logrus.NewLogger(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Processing request", map[string]interface{}{
//	    "request_id": id,
//	    "bookmarks":  len(bookmarks),
//	})
package infrastructure
