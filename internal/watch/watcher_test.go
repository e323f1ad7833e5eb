package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "events.csv")
	other := filepath.Join(dir, "notes.txt")

	require.NoError(t, os.WriteFile(table, []byte("action\n"), 0o644))

	w, err := NewWatcher(200 * time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, w.Watch(table))

	calls := make(chan []string, 4)
	w.OnChange = func(_ context.Context, paths []string) error {
		calls <- paths
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	for i := range 3 {
		require.NoError(t, os.WriteFile(table, []byte("action\ntap"+string(rune('0'+i))+"\n"), 0o644))
	}

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))

	select {
	case paths := <-calls:
		abs, err := filepath.Abs(table)
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case paths := <-calls:
		t.Fatalf("unexpected extra call for %v", paths)
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, w.Close())
}

func TestWatcher_ReportsCallbackErrors(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "events.csv")

	require.NoError(t, os.WriteFile(table, []byte("action\n"), 0o644))

	w, err := NewWatcher(10 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch(table))

	errs := make(chan error, 1)
	w.OnChange = func(context.Context, []string) error { return assert.AnError }
	w.OnError = func(_ string, err error) {
		select {
		case errs <- err:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(table, []byte("action\ntap\n"), 0o644))

	select {
	case err := <-errs:
		require.ErrorIs(t, err, assert.AnError)
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}

	cancel()
	<-done
	require.NoError(t, w.Close())
}

func TestWatcher_CloseStopsRun(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	done := make(chan error, 1)

	go func() { done <- w.Run(context.Background()) }()

	require.NoError(t, w.Close())
	require.NoError(t, <-done)
}
