package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jvim/internal/pubsub"
	"github.com/zjrosen/jvim/internal/watcher"
)

func startWatcher(t *testing.T, path string) (*watcher.Watcher, <-chan pubsub.Event[watcher.Change]) {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)
	require.NoError(t, w.Start(), "failed to start watcher")
	return w, events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, events := startWatcher(t, path)

	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`{"n": %d}`, i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-events:
		assert.Equal(t, pubsub.Changed, ev.Type)
		assert.Equal(t, filepath.Base(path), filepath.Base(ev.Payload.Path))
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected second notification: %v", ev.Type)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))
	_, events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte(`{"a": 1}`), 0o644))

	select {
	case <-events:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_Removed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, events := startWatcher(t, path)

	require.NoError(t, os.Remove(path))

	select {
	case ev := <-events:
		assert.Equal(t, pubsub.Removed, ev.Type)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected removal notification")
	}
}

func TestWatcher_AtomicSaveIsAChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, events := startWatcher(t, path)

	tmp := filepath.Join(dir, ".data.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"b": 2}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case ev := <-events:
		assert.Equal(t, pubsub.Changed, ev.Type)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected change notification")
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	w, events := startWatcher(t, path)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
	_, ok := <-events
	assert.False(t, ok, "broker should be closed after Stop")
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/data.json")
	assert.Equal(t, "/tmp/data.json", cfg.Path)
	assert.Equal(t, 200*time.Millisecond, cfg.DebounceDur)
}
