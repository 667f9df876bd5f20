// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"time"

	"bookmarkcast-api/api/middleware"
	"bookmarkcast-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	apiTitle       = "Bookmarkcast API"
	apiVersion     = "1.0.0"
	apiDescription = "Turns a list of bookmarks into an emailed digest with a two-host podcast of the summaries"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger               interfaces.Logger
	RateLimit            int           // requests per window
	RateWindow           time.Duration // rate limit window
	SlowRequestThreshold time.Duration

	// RequestTimeout bounds the context of each request; zero disables it
	RequestTimeout time.Duration
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := newRouter()

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, apiConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured.
// The returned stop function releases the rate limiter, if any.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router, func()) {
	router := newRouter()
	stop := func() {}

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger, cfg.SlowRequestThreshold))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
		stop = limiter.Stop
	}

	if cfg.RequestTimeout > 0 {
		router.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	api := humachi.New(router, apiConfig())

	return api, router, stop
}

func newRouter() chi.Router {
	router := chi.NewRouter()

	// CORS must be the first middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	return router
}

func apiConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription
	return config
}
