package responses

import (
	"errors"
	"testing"

	"bookmarkcast-api/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewPodcastResponse(t *testing.T) {
	doc := domain.NewSummaryDocument(domain.DefaultSummaryHeader)
	doc.AddSuccess(domain.Bookmark{URL: "https://a.example"}, "A", "short")
	doc.AddError(domain.Bookmark{URL: "https://b.example"}, "B", errors.New("boom"))

	result := &domain.PipelineResult{
		Summary: doc,
		Audio:   []byte("mp3"),
		Outcomes: []domain.BookmarkOutcome{
			{URL: "https://a.example", State: domain.StateScripted},
			{URL: "https://b.example", State: domain.StateFetchFailed, Error: "boom"},
		},
	}

	resp := NewPodcastResponse("req-1", "reader@example.com", result)

	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "reader@example.com", resp.Recipient)
	assert.Equal(t, 2, resp.Fragments)
	assert.Equal(t, 1, resp.Summarized)
	assert.Equal(t, 1, resp.Failed)
	assert.True(t, resp.AudioAttached)
	assert.Equal(t, 3, resp.AudioBytes)
	assert.Len(t, resp.Outcomes, 2)
}

func TestNewPodcastResponse_NoAudio(t *testing.T) {
	resp := NewPodcastResponse("req-2", "reader@example.com", &domain.PipelineResult{
		Summary: domain.NewSummaryDocument(""),
	})

	assert.False(t, resp.AudioAttached)
	assert.Equal(t, 0, resp.AudioBytes)
	assert.Equal(t, 0, resp.Fragments)
	assert.NotNil(t, resp.Outcomes)
}
