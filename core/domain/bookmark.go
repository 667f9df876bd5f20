// ABOUTME: Domain models for bookmarks and the content extracted from them
// ABOUTME: A bookmark is the unit of work of one pipeline iteration

package domain

import (
	"net/url"
	"strings"
	"time"
)

// Bookmark is one user-saved URL with optional metadata
type Bookmark struct {
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	DateAdded time.Time `json:"dateAdded,omitempty"`
}

// HasValidURL reports whether the bookmark points at a well-formed HTTP(S) URL
func (b Bookmark) HasValidURL() bool {
	raw := strings.TrimSpace(b.URL)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DisplayTitle returns the bookmark title, falling back to the extracted
// title and finally to the URL itself.
func (b Bookmark) DisplayTitle(extracted string) string {
	if t := strings.TrimSpace(b.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(extracted); t != "" {
		return t
	}
	return b.URL
}

// ExtractedContent is the readable main text of a fetched page
type ExtractedContent struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Excerpt returns at most max characters of the extracted text
func (c ExtractedContent) Excerpt(max int) string {
	if max <= 0 {
		return c.Text
	}
	runes := []rune(c.Text)
	if len(runes) <= max {
		return c.Text
	}
	return string(runes[:max])
}
