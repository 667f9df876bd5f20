// ABOUTME: Main entry point for the Bookmarkcast API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmarkcast-api/api"
	"bookmarkcast-api/api/handlers"
	"bookmarkcast-api/api/middleware"
	"bookmarkcast-api/bookmarkcast"
	"bookmarkcast-api/infrastructure/gemini"
	stdhttp "bookmarkcast-api/infrastructure/http/standard"
	"bookmarkcast-api/infrastructure/mail/httpapi"
	googletts "bookmarkcast-api/infrastructure/tts/google"
	"bookmarkcast-api/pkg/config"
	"bookmarkcast-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLogger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer closeLogger()

	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Starting Bookmarkcast API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"cache_type":  cfg.Cache.Type,
		"model":       cfg.Gemini.Model,
		"concurrency": cfg.Pipeline.Concurrency,
		"flags":       flags.GetAllFlags(),
	})

	ctx := context.Background()

	cache, closeCache := newCache(ctx, cfg.Cache, flags, logger)
	defer closeCache()

	// Page fetches go through the logging transport so retries are traceable per request
	fetchClient := stdhttp.NewStandardHTTPClient(stdhttp.Config{
		Timeout:        cfg.Fetch.Timeout,
		Attempts:       cfg.Fetch.Attempts,
		BaseDelay:      cfg.Fetch.Backoff,
		UserAgent:      cfg.Fetch.UserAgent,
		AcceptLanguage: cfg.Fetch.AcceptLanguage,
		Transport:      &middleware.LoggingRoundTripper{Logger: logger},
	})
	mailClient := stdhttp.NewStandardHTTPClient(stdhttp.Config{Timeout: 30 * time.Second, Attempts: 1})

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	ttsClient, err := googletts.NewClient(ctx, cfg.TTS)
	if err != nil {
		log.Fatalf("Failed to create Text-to-Speech client: %v", err)
	}
	defer ttsClient.Close()

	mailer := httpapi.NewMailer(mailClient, cfg.Mail, logger)

	client, err := bookmarkcast.NewClient(
		bookmarkcast.WithLogger(logger),
		bookmarkcast.WithHTTPClient(fetchClient),
		bookmarkcast.WithCache(cache),
		bookmarkcast.WithContentCacheTTL(cfg.Cache.ContentTTL),
		bookmarkcast.WithTextGenerator(geminiClient),
		bookmarkcast.WithSpeechClient(ttsClient, cfg.TTS.VoiceA, cfg.TTS.VoiceB),
		bookmarkcast.WithMailer(mailer, cfg.Mail.Subject),
		bookmarkcast.WithFeatureFlags(flags),
		bookmarkcast.WithMaxContentChars(cfg.Pipeline.MaxContentChars),
		bookmarkcast.WithConcurrency(cfg.Pipeline.Concurrency),
	)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}
	defer client.Close()

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:               logger,
		SlowRequestThreshold: cfg.Server.SlowRequestThreshold,
		RequestTimeout:       cfg.Server.RequestTimeout,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimit) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	humaAPI, router, stopAPI := api.NewAPIWithMiddleware(apiConfig)
	defer stopAPI()

	// Create and register handlers
	handlers.RegisterHealthRoutes(humaAPI)
	podcastHandler := handlers.NewPodcastHandler(client, client, logger)
	podcastHandler.RegisterRoutes(humaAPI)

	// A pipeline run fetches, generates and synthesizes before responding
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// In-flight pipeline runs get the full request timeout to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}
