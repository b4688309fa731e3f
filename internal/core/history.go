package core

import (
	"sync"
)

// DefaultHistorySize is the number of import runs kept in memory.
const DefaultHistorySize = 50

// History keeps the most recent import summaries, newest first.
type History struct {
	mu    sync.RWMutex
	size  int
	items []ImportSummary
}

// NewHistory creates a History holding at most size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add records a summary, evicting the oldest entry when full.
func (h *History) Add(s ImportSummary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append([]ImportSummary{s}, h.items...)
	if len(h.items) > h.size {
		h.items = h.items[:h.size]
	}
}

// List returns a copy of the recorded summaries, newest first.
func (h *History) List() []ImportSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]ImportSummary, len(h.items))
	copy(out, h.items)
	return out
}

// Get returns the summary with the given run ID.
func (h *History) Get(runID string) (ImportSummary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.items {
		if s.RunID == runID {
			return s, true
		}
	}
	return ImportSummary{}, false
}
