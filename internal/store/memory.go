package store

import (
	"context"
	"strings"
	"sync"

	"github.com/JonMunkholm/roster/internal/member"
)

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records []member.Record
	index   map[string]int // lower-cased student number -> position
}

// NewMemory returns an empty Memory store, optionally seeded with records.
// Seed records that duplicate an earlier one are ignored.
func NewMemory(seed ...member.Record) *Memory {
	m := &Memory{index: make(map[string]int)}
	for _, r := range seed {
		_ = m.add(r)
	}
	return m
}

func memberKey(r member.Record) string {
	return strings.ToLower(r.StudentNumber().String())
}

// Has implements Store.
func (m *Memory) Has(_ context.Context, r member.Record) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.index[memberKey(r)]
	return ok, nil
}

// Add implements Store.
func (m *Memory) Add(_ context.Context, r member.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.add(r)
}

func (m *Memory) add(r member.Record) error {
	key := memberKey(r)
	if _, ok := m.index[key]; ok {
		return ErrDuplicate
	}
	m.index[key] = len(m.records)
	m.records = append(m.records, r)
	return nil
}

// List implements Store.
func (m *Memory) List(_ context.Context) ([]member.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]member.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Count implements Store.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}
