// ABOUTME: Batch pipeline orchestrator turning a bookmark list into a summary document and podcast audio
// ABOUTME: Isolates failures per bookmark and per dialogue line so one bad item never fails the batch

package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"
	"bookmarkcast-api/pkg/featureflags"

	"github.com/panjf2000/ants/v2"
)

// DefaultMaxContentChars bounds how much extracted text is sent to generation
const DefaultMaxContentChars = 2000

// Services groups the collaborators driven by the orchestrator
type Services struct {
	Extractor   interfaces.ContentExtractor
	Summarizer  interfaces.Summarizer
	Scripter    interfaces.Scripter
	Synthesizer interfaces.SpeechSynthesizer
	Assembler   interfaces.AudioAssembler
}

// Config holds orchestrator settings
type Config struct {
	// MaxContentChars truncates extracted text before generation
	MaxContentChars int

	// Concurrency > 1 processes bookmarks on a worker pool of that size
	Concurrency int

	// SummaryHeader is the heading of the summary document
	SummaryHeader string
}

// Orchestrator implements interfaces.PipelineRunner
type Orchestrator struct {
	services Services
	flags    featureflags.Manager
	logger   interfaces.Logger
	cfg      Config
	pool     *ants.Pool
}

// bookmarkResult is what one bookmark contributes to the batch. Skipped
// bookmarks contribute an outcome only.
type bookmarkResult struct {
	bookmark domain.Bookmark
	title    string
	summary  string
	err      error
	script   string
	outcome  domain.BookmarkOutcome
}

// NewOrchestrator validates its collaborators and, when configured for
// concurrency, starts the worker pool. A missing collaborator is a *errors.ConfigError.
func NewOrchestrator(services Services, flags featureflags.Manager, logger interfaces.Logger, cfg Config) (*Orchestrator, error) {
	switch {
	case logger == nil:
		return nil, &errors.ConfigError{Field: "logger", Message: "is required"}
	case services.Extractor == nil:
		return nil, &errors.ConfigError{Field: "extractor", Message: "is required"}
	case services.Summarizer == nil:
		return nil, &errors.ConfigError{Field: "summarizer", Message: "is required"}
	case services.Scripter == nil:
		return nil, &errors.ConfigError{Field: "scripter", Message: "is required"}
	case services.Synthesizer == nil:
		return nil, &errors.ConfigError{Field: "synthesizer", Message: "is required"}
	case services.Assembler == nil:
		return nil, &errors.ConfigError{Field: "assembler", Message: "is required"}
	}

	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = DefaultMaxContentChars
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if flags == nil {
		flags = featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.PodcastAudio: true})
	}

	o := &Orchestrator{
		services: services,
		flags:    flags,
		logger:   logger,
		cfg:      cfg,
	}

	if cfg.Concurrency > 1 {
		pool, err := ants.NewPool(cfg.Concurrency)
		if err != nil {
			return nil, &errors.ConfigError{Field: "PIPELINE_CONCURRENCY", Message: err.Error()}
		}
		o.pool = pool
	}

	return o, nil
}

// Close releases the worker pool
func (o *Orchestrator) Close() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// Run processes every bookmark and returns the batch result. Per-bookmark
// and per-line failures are absorbed; an empty bookmark list is the only error.
func (o *Orchestrator) Run(ctx context.Context, bookmarks []domain.Bookmark) (*domain.PipelineResult, error) {
	if len(bookmarks) == 0 {
		return nil, &errors.ValidationError{Field: "bookmarks", Message: "must not be empty"}
	}

	start := time.Now()
	results := o.processAll(ctx, bookmarks)

	doc := domain.NewSummaryDocument(o.cfg.SummaryHeader)
	outcomes := make([]domain.BookmarkOutcome, 0, len(results))
	var scripts []string

	for _, r := range results {
		outcomes = append(outcomes, r.outcome)
		switch {
		case r.outcome.State == domain.StateSkipped:
			// no fragment
		case r.err != nil:
			doc.AddError(r.bookmark, r.title, r.err)
		default:
			doc.AddSuccess(r.bookmark, r.title, r.summary)
		}
		if r.script != "" {
			scripts = append(scripts, r.script)
		}
	}

	result := &domain.PipelineResult{
		Summary:  doc,
		Outcomes: outcomes,
	}

	if len(scripts) > 0 {
		result.Script = strings.Join(scripts, "\n\n")
		if o.flags.IsEnabled(ctx, featureflags.PodcastAudio) {
			result.Audio = o.produceAudio(ctx, result.Script)
		} else {
			o.logger.Info("Podcast audio disabled, skipping synthesis", nil)
		}
	}

	o.logger.Info("Pipeline finished", map[string]interface{}{
		"bookmarks":   len(bookmarks),
		"fragments":   doc.Len(),
		"succeeded":   doc.CountByStatus(domain.FragmentSuccess),
		"failed":      doc.CountByStatus(domain.FragmentError),
		"audio_bytes": len(result.Audio),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result, nil
}

// processAll runs processBookmark for every item, slotting results by index
// so the output order never depends on scheduling. Duplicate URLs within the
// batch share one extraction.
func (o *Orchestrator) processAll(ctx context.Context, bookmarks []domain.Bookmark) []bookmarkResult {
	results := make([]bookmarkResult, len(bookmarks))
	memo := newContentMemo(o.services.Extractor)

	if o.pool == nil {
		for i, b := range bookmarks {
			results[i] = o.processBookmark(ctx, memo, i, b)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, b := range bookmarks {
		wg.Add(1)
		err := o.pool.Submit(func() {
			defer wg.Done()
			results[i] = o.processBookmark(ctx, memo, i, b)
		})
		if err != nil {
			// Pool closed or saturated: fall back to doing the work here
			wg.Done()
			results[i] = o.processBookmark(ctx, memo, i, b)
		}
	}
	wg.Wait()

	return results
}

// processBookmark drives one bookmark through Pending, Fetched, Summarized and Scripted
func (o *Orchestrator) processBookmark(ctx context.Context, memo *contentMemo, index int, b domain.Bookmark) bookmarkResult {
	if !b.HasValidURL() {
		o.logger.Warn("Skipping bookmark with invalid URL", map[string]interface{}{
			"index": index,
			"url":   b.URL,
		})
		return bookmarkResult{bookmark: b, outcome: domain.BookmarkOutcome{URL: b.URL, State: domain.StateSkipped}}
	}

	fail := func(state domain.BookmarkState, title string, err error) bookmarkResult {
		o.logger.Warn("Bookmark failed", map[string]interface{}{
			"index": index,
			"url":   b.URL,
			"state": string(state),
			"error": err.Error(),
		})
		return bookmarkResult{
			bookmark: b,
			title:    title,
			err:      err,
			outcome:  domain.BookmarkOutcome{URL: b.URL, State: state, Error: err.Error()},
		}
	}

	state := domain.StatePending
	content, err := memo.Extract(ctx, b.URL)
	if err != nil {
		return fail(domain.StateFetchFailed, b.DisplayTitle(""), err)
	}
	state = o.advance(index, state, domain.StateFetched)

	title := b.DisplayTitle(content.Title)
	text := content.Excerpt(o.cfg.MaxContentChars)

	summary, err := o.services.Summarizer.Summarize(ctx, text)
	if err != nil {
		return fail(domain.StateGenerationFailed, title, err)
	}
	state = o.advance(index, state, domain.StateSummarized)

	script, err := o.services.Scripter.Script(ctx, title, text)
	if err != nil {
		return fail(domain.StateGenerationFailed, title, err)
	}
	state = o.advance(index, state, domain.StateScripted)

	return bookmarkResult{
		bookmark: b,
		title:    title,
		summary:  summary,
		script:   script,
		outcome:  domain.BookmarkOutcome{URL: b.URL, State: state},
	}
}

func (o *Orchestrator) advance(index int, from, to domain.BookmarkState) domain.BookmarkState {
	o.logger.Debug("Bookmark state changed", map[string]interface{}{
		"index": index,
		"from":  string(from),
		"to":    string(to),
	})
	return to
}

// produceAudio parses the batch script, speaks each line in order and joins
// the clips. It returns nil when no audio could be produced.
func (o *Orchestrator) produceAudio(ctx context.Context, script string) []byte {
	lines, dropped := domain.ParseDialogue(script)
	if dropped > 0 {
		o.logger.Debug("Dropped unparsable dialogue lines", map[string]interface{}{
			"dropped": dropped,
		})
	}

	clips := make([][]byte, 0, len(lines))
	for i, line := range lines {
		clip, err := o.services.Synthesizer.SynthesizeLine(ctx, line)
		if err != nil {
			o.logger.Warn("Skipping dialogue line after synthesis failure", map[string]interface{}{
				"line":    i,
				"speaker": string(line.Speaker),
				"error":   err.Error(),
			})
			continue
		}
		clips = append(clips, clip)
	}

	audio, err := o.services.Assembler.Assemble(clips)
	if err != nil {
		o.logger.Warn("No podcast audio produced", map[string]interface{}{
			"lines": len(lines),
			"error": err.Error(),
		})
		return nil
	}

	o.logger.Info("Podcast audio assembled", map[string]interface{}{
		"lines": len(lines),
		"clips": len(clips),
		"bytes": len(audio),
	})
	return audio
}
