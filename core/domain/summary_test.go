package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSummaryDocument_AppendOrder(t *testing.T) {
	doc := NewSummaryDocument("")
	if doc.Header != DefaultSummaryHeader {
		t.Errorf("Header = %q, want default", doc.Header)
	}

	added := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	doc.AddSuccess(Bookmark{URL: "https://a.example", DateAdded: added}, "A", "summary of A")
	doc.AddError(Bookmark{URL: "https://b.example"}, "B", errors.New("boom"))

	frags := doc.Fragments()
	if len(frags) != 2 || doc.Len() != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}
	if frags[0].Status != FragmentSuccess || frags[0].Summary != "summary of A" || !frags[0].DateAdded.Equal(added) {
		t.Errorf("first fragment = %+v", frags[0])
	}
	if frags[1].Status != FragmentError || frags[1].Error != "boom" {
		t.Errorf("second fragment = %+v", frags[1])
	}
	if doc.CountByStatus(FragmentSuccess) != 1 || doc.CountByStatus(FragmentError) != 1 {
		t.Error("CountByStatus mismatch")
	}
}

func TestSummaryDocument_FragmentsIsCopy(t *testing.T) {
	doc := NewSummaryDocument("Header")
	doc.AddSuccess(Bookmark{URL: "https://a.example"}, "A", "s")

	frags := doc.Fragments()
	frags[0].Title = "mutated"

	if doc.Fragments()[0].Title != "A" {
		t.Error("Fragments should return a copy")
	}
}

func TestBookmarkState_Terminal(t *testing.T) {
	terminal := []BookmarkState{StateScripted, StateFetchFailed, StateGenerationFailed, StateSkipped}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []BookmarkState{StatePending, StateFetched, StateSummarized} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
