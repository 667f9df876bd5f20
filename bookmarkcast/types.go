// ABOUTME: Public types for the Bookmarkcast library API
// ABOUTME: Re-exports the domain models callers pass in and get back

package bookmarkcast

import "bookmarkcast-api/core/domain"

// Bookmark is one saved URL to include in the digest
type Bookmark = domain.Bookmark

// Result is the outcome of a pipeline run: the summary document, the
// podcast audio (nil when none could be produced) and per-bookmark states.
type Result = domain.PipelineResult

// Speaker identifies one of the two podcast hosts
type Speaker = domain.Speaker

const (
	SpeakerA = domain.SpeakerA
	SpeakerB = domain.SpeakerB
)
