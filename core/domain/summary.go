// ABOUTME: Summary document model assembled by the pipeline, one fragment per bookmark
// ABOUTME: Append-only; rendering to HTML lives in core/document

package domain

import "time"

// FragmentStatus tells whether a bookmark was summarized or failed
type FragmentStatus string

const (
	FragmentSuccess FragmentStatus = "success"
	FragmentError   FragmentStatus = "error"
)

// SummaryFragment is the per-bookmark part of the summary document
type SummaryFragment struct {
	Status    FragmentStatus `json:"status"`
	Title     string         `json:"title"`
	URL       string         `json:"url"`
	Summary   string         `json:"summary,omitempty"`
	Error     string         `json:"error,omitempty"`
	DateAdded time.Time      `json:"dateAdded,omitempty"`
}

// SummaryDocument is the ordered, append-only composition of fragments
// under a fixed header.
type SummaryDocument struct {
	Header    string
	fragments []SummaryFragment
}

// DefaultSummaryHeader is the heading used when none is configured
const DefaultSummaryHeader = "Your Bookmark Digest"

// NewSummaryDocument creates an empty document
func NewSummaryDocument(header string) *SummaryDocument {
	if header == "" {
		header = DefaultSummaryHeader
	}
	return &SummaryDocument{Header: header}
}

// AddSuccess appends the fragment of a summarized bookmark
func (d *SummaryDocument) AddSuccess(b Bookmark, title, summary string) {
	d.fragments = append(d.fragments, SummaryFragment{
		Status:    FragmentSuccess,
		Title:     title,
		URL:       b.URL,
		Summary:   summary,
		DateAdded: b.DateAdded,
	})
}

// AddError appends the fragment of a bookmark that could not be summarized
func (d *SummaryDocument) AddError(b Bookmark, title string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	d.fragments = append(d.fragments, SummaryFragment{
		Status:    FragmentError,
		Title:     title,
		URL:       b.URL,
		Error:     msg,
		DateAdded: b.DateAdded,
	})
}

// Fragments returns a copy of the fragments in insertion order
func (d *SummaryDocument) Fragments() []SummaryFragment {
	out := make([]SummaryFragment, len(d.fragments))
	copy(out, d.fragments)
	return out
}

// Len returns the number of fragments
func (d *SummaryDocument) Len() int {
	return len(d.fragments)
}

// CountByStatus returns how many fragments carry the given status
func (d *SummaryDocument) CountByStatus(status FragmentStatus) int {
	n := 0
	for _, f := range d.fragments {
		if f.Status == status {
			n++
		}
	}
	return n
}
