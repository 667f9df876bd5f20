// ABOUTME: Response DTOs for the podcast and health endpoints
// ABOUTME: Reports what was delivered without echoing the generated content

package responses

import "bookmarkcast-api/core/domain"

// PodcastResponse describes a completed delivery
type PodcastResponse struct {
	RequestID     string                   `json:"requestId" doc:"Identifier of this run, also sent as X-Request-ID"`
	Recipient     string                   `json:"recipient" doc:"Address the digest was sent to"`
	Fragments     int                      `json:"fragments" doc:"Number of entries in the summary document"`
	Summarized    int                      `json:"summarized" doc:"Entries that carry a summary"`
	Failed        int                      `json:"failed" doc:"Entries that carry an error message"`
	AudioAttached bool                     `json:"audioAttached" doc:"Whether a podcast attachment was included"`
	AudioBytes    int                      `json:"audioBytes" doc:"Size of the attached audio in bytes"`
	Outcomes      []domain.BookmarkOutcome `json:"outcomes" doc:"Final state of each bookmark, in request order"`
}

// NewPodcastResponse summarizes a pipeline result for the caller
func NewPodcastResponse(requestID, recipient string, result *domain.PipelineResult) PodcastResponse {
	resp := PodcastResponse{
		RequestID: requestID,
		Recipient: recipient,
		Outcomes:  []domain.BookmarkOutcome{},
	}
	if result == nil {
		return resp
	}
	if result.Summary != nil {
		resp.Fragments = result.Summary.Len()
		resp.Summarized = result.Summary.CountByStatus(domain.FragmentSuccess)
		resp.Failed = result.Summary.CountByStatus(domain.FragmentError)
	}
	if result.Outcomes != nil {
		resp.Outcomes = result.Outcomes
	}
	resp.AudioAttached = result.HasAudio()
	resp.AudioBytes = len(result.Audio)
	return resp
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
