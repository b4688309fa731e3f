package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReimportsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.csv")
	require.NoError(t, os.WriteFile(path, []byte(core.Header+"\n"), 0o644))

	calls := make(chan string, 10)
	w, err := New(path, 50*time.Millisecond, func(_ context.Context, p string) (core.ImportSummary, error) {
		calls <- p
		return core.ImportSummary{Added: 1}, nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// A burst of writes collapses into one import.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(core.Header+"\n"), 0o644))
	}

	select {
	case p := <-calls:
		assert.Equal(t, w.Path(), p)
	case <-time.After(3 * time.Second):
		t.Fatal("no import after file change")
	}

	select {
	case <-calls:
		t.Error("burst triggered more than one import")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.csv")

	var count atomic.Int32
	w, err := New(path, 20*time.Millisecond, func(context.Context, string) (core.ImportSummary, error) {
		count.Add(1)
		return core.ImportSummary{}, nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(0), count.Load())
}

func TestWatcher_ReportsResults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.csv")

	results := make(chan error, 1)
	w, err := New(path, 20*time.Millisecond,
		func(context.Context, string) (core.ImportSummary, error) {
			return core.ImportSummary{}, core.ErrEmptyInput
		},
		WithResult(func(_ core.ImportSummary, err error) { results <- err }),
	)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, nil, 0o644))

	select {
	case err := <-results:
		assert.ErrorIs(t, err, core.ErrEmptyInput)
	case <-time.After(3 * time.Second):
		t.Fatal("no result reported")
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "members.csv"), 0, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "members.csv"), 0, nil)
	assert.Error(t, err)
}
