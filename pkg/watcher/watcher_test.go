package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTriggersDebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probeview.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0644))

	fw, err := NewFileWatcher(200*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0644))
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// burst collapsed into one callback
	select {
	case p := <-changed:
		t.Fatalf("unexpected second callback for %s", p)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probeview.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, fw.Watch([]string{path, path}, func(string) {}))
	assert.NoError(t, fw.RemoveAll())
	assert.Empty(t, fw.callbacks)
}

func TestCloseWaitsForEventLoop(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	fw.Start()
	fw.Start()

	require.NoError(t, fw.Close())
	select {
	case <-fw.done:
	default:
		t.Fatal("event loop still running after Close")
	}
}

func TestCloseWithoutStart(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)

	closed := make(chan error, 1)
	go func() { closed <- fw.Close() }()
	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on a watcher that never started")
	}
}
