package pipeline

import (
	"context"
	"sync"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/interfaces"
)

// contentMemo extracts each URL at most once during a single Run. It is
// created per Run and dropped with it, so nothing carries over to the next batch.
type contentMemo struct {
	extractor interfaces.ContentExtractor

	mu      sync.Mutex
	entries map[string]*memoEntry
}

type memoEntry struct {
	once    sync.Once
	content *domain.ExtractedContent
	err     error
}

func newContentMemo(extractor interfaces.ContentExtractor) *contentMemo {
	return &contentMemo{
		extractor: extractor,
		entries:   make(map[string]*memoEntry),
	}
}

// Extract returns the result of the first extraction of url in this run.
// Concurrent callers for the same url wait on that one extraction.
func (m *contentMemo) Extract(ctx context.Context, url string) (*domain.ExtractedContent, error) {
	m.mu.Lock()
	entry, ok := m.entries[url]
	if !ok {
		entry = &memoEntry{}
		m.entries[url] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.content, entry.err = m.extractor.Extract(ctx, url)
	})
	return entry.content, entry.err
}
