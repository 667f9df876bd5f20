// Package core contains the business logic of the Bookmarkcast API: turning
// a list of bookmarks into a summary digest and a two-host podcast.
// It has no knowledge of HTTP routing or of the concrete model, speech and
// email backends.
//
// The core package is organized into several sub-packages:
//
// - domain: Bookmarks, extracted content, dialogue lines, the summary document and pipeline results
// - extractor: Fetches a bookmark and reduces the page to readable text
// - generation: Summary and dialogue script prompts over a text generator
// - speech: Per-line speech synthesis and audio concatenation
// - pipeline: The batch orchestrator that runs every bookmark through the stages
// - document: HTML and plain-text rendering of the summary document
// - delivery: Composes and sends the digest email
// - errors: Custom error types, one per failure class
// - interfaces: Contracts for external dependencies and services
//
// # Failure isolation
//
// A bookmark that cannot be fetched or summarized becomes an error entry in
// the digest and never aborts the batch. A dialogue line that cannot be
// spoken is left out of the audio. Only precondition and configuration
// errors fail a run.
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // optional, implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	gen := generation.NewService(myTextGenerator, myLogger)
//	orchestrator, err := pipeline.NewOrchestrator(pipeline.Services{
//	    Extractor:   extractor.NewService(deps, time.Hour),
//	    Summarizer:  gen,
//	    Scripter:    gen,
//	    Synthesizer: speech.NewSynthesizer(mySpeechClient, voices),
//	    Assembler:   speech.NewAssembler(),
//	}, flags, myLogger, pipeline.Config{})
//
//	result, err := orchestrator.Run(ctx, bookmarks)
package core
