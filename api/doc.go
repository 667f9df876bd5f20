// Package api provides the HTTP API layer of the Bookmarkcast service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request decoding and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: Request logging, rate limiting and the outgoing request logger
//
// # Endpoints
//
//	POST /podcast   run the pipeline for one user and email the result
//	GET  /health    liveness probe
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router, stop := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  10,
//	    RateWindow: time.Minute,
//	})
//	defer stop()
//
//	handlers.RegisterHealthRoutes(humaAPI)
//	handlers.NewPodcastHandler(orchestrator, deliveryService, logger).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format. Invalid requests are answered with
// 400, email delivery failures with 502 and everything else with 500.
package api
