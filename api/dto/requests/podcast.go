// ABOUTME: Request DTOs for the podcast endpoint
// ABOUTME: Validates the recipient and maps bookmark entries onto domain bookmarks

package requests

import (
	"net/mail"
	"strings"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/pkg/utils/dates"
)

// PodcastRequest is the body of POST /podcast
type PodcastRequest struct {
	// UserEmail identifies the user and is the delivery address
	UserEmail string `json:"userEmail" doc:"Address the digest and podcast are emailed to" example:"reader@example.com"`

	// Bookmarks is processed in the given order
	Bookmarks []BookmarkInput `json:"bookmarks" doc:"Bookmarks to summarize, in digest order"`
}

// BookmarkInput is a single saved URL. Entries with a malformed URL are
// skipped by the pipeline rather than rejected here.
type BookmarkInput struct {
	URL       string `json:"url" doc:"Bookmarked page URL" example:"https://example.com/article"`
	Title     string `json:"title,omitempty" doc:"Title saved with the bookmark"`
	DateAdded string `json:"dateAdded,omitempty" doc:"When the bookmark was saved, as RFC 3339 or Unix epoch" example:"2024-03-01T12:30:00Z"`
}

// Validate checks the request preconditions. Failures are reported as
// ValidationErrors so they surface as 400 responses.
func (r *PodcastRequest) Validate() error {
	email := strings.TrimSpace(r.UserEmail)
	if email == "" {
		return &errors.ValidationError{Field: "userEmail", Message: "must not be empty"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &errors.ValidationError{Field: "userEmail", Message: "must be a plain email address"}
	}
	if len(r.Bookmarks) == 0 {
		return &errors.ValidationError{Field: "bookmarks", Message: "must contain at least one bookmark"}
	}
	return nil
}

// Recipient returns the trimmed email address
func (r *PodcastRequest) Recipient() string {
	return strings.TrimSpace(r.UserEmail)
}

// ToDomain converts the bookmark entries, preserving order. Unparseable dates
// become the zero time and are left out of the digest.
func (r *PodcastRequest) ToDomain() []domain.Bookmark {
	bookmarks := make([]domain.Bookmark, 0, len(r.Bookmarks))
	for _, b := range r.Bookmarks {
		bookmarks = append(bookmarks, domain.Bookmark{
			URL:       strings.TrimSpace(b.URL),
			Title:     b.Title,
			DateAdded: dates.Parse(b.DateAdded),
		})
	}
	return bookmarks
}
