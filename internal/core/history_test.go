package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_NewestFirstAndBounded(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Add(ImportSummary{RunID: fmt.Sprintf("run-%d", i), Added: i})
	}

	got := h.List()
	if assert.Len(t, got, 3) {
		assert.Equal(t, "run-5", got[0].RunID)
		assert.Equal(t, "run-3", got[2].RunID)
	}

	_, ok := h.Get("run-1")
	assert.False(t, ok, "evicted run should be gone")

	s, ok := h.Get("run-4")
	assert.True(t, ok)
	assert.Equal(t, 4, s.Added)
}

func TestHistory_ListIsCopy(t *testing.T) {
	h := NewHistory(0)
	h.Add(ImportSummary{RunID: "a"})

	list := h.List()
	list[0].RunID = "changed"

	assert.Equal(t, "a", h.List()[0].RunID)
}
