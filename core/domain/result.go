// ABOUTME: Pipeline result and per-bookmark state tracking
// ABOUTME: A result lives for a single request and is discarded after delivery

package domain

// BookmarkState is the position of a bookmark in its processing state machine
type BookmarkState string

const (
	StatePending          BookmarkState = "pending"
	StateFetched          BookmarkState = "fetched"
	StateSummarized       BookmarkState = "summarized"
	StateScripted         BookmarkState = "scripted"
	StateFetchFailed      BookmarkState = "fetch_failed"
	StateGenerationFailed BookmarkState = "generation_failed"
	StateSkipped          BookmarkState = "skipped"
)

// Terminal reports whether no further transitions are possible
func (s BookmarkState) Terminal() bool {
	switch s {
	case StateScripted, StateFetchFailed, StateGenerationFailed, StateSkipped:
		return true
	}
	return false
}

// BookmarkOutcome records where a bookmark ended up
type BookmarkOutcome struct {
	URL   string        `json:"url"`
	State BookmarkState `json:"state"`
	Error string        `json:"error,omitempty"`
}

// PipelineResult is the terminal artifact of one batch run.
// Audio is nil when no audio could be produced.
type PipelineResult struct {
	Summary  *SummaryDocument
	Audio    []byte
	Script   string
	Outcomes []BookmarkOutcome
}

// HasAudio reports whether an audio track was produced
func (r *PipelineResult) HasAudio() bool {
	return r != nil && len(r.Audio) > 0
}
