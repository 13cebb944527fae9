package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsName)

	watcher, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	if watcher.watcher == nil {
		t.Fatal("underlying fsnotify watcher should not be nil")
	}
	if watcher.path != path {
		t.Fatalf("expected path %s, got %s", path, watcher.path)
	}
	if watcher.changes == nil {
		t.Fatal("changes channel should not be nil")
	}

	watcher.Stop()
}

func TestWatcherStartStop(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), config.SettingsName))
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}

	// Stop watcher (should not panic)
	watcher.Stop()

	_, ok := <-watcher.Changes()
	assert.False(t, ok, "changes channel should be closed after Stop")

	// A second Stop is a no-op
	assert.NotPanics(t, watcher.Stop)
}

func TestWatcherStartMissingDirectory(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "missing", config.SettingsName))
	require.NoError(t, err)
	defer watcher.Stop()

	assert.Error(t, watcher.Start())
}

func waitForChange(t *testing.T, w *Watcher) SettingsChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-w.Changes():
		require.True(t, ok, "changes channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings change")
		return SettingsChangeEvent{}
	}
}

func TestWatcherReloadsSavedSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsName)
	require.NoError(t, config.Defaults().Save(path))

	watcher, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	s := config.Defaults()
	s.Calendar = "gregorian"
	s.Mode = "range"
	require.NoError(t, s.Save(path))

	ev := waitForChange(t, watcher)
	require.NoError(t, ev.Err)
	assert.Equal(t, path, ev.Path)
	assert.Equal(t, "gregorian", ev.Settings.Calendar)
	assert.Equal(t, "range", ev.Settings.Mode)
}

func TestWatcherReportsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsName)

	watcher, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte("calendar: mayan\n"), 0644))

	ev := waitForChange(t, watcher)
	assert.ErrorIs(t, ev.Err, config.ErrInvalidSettings)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.SettingsName)

	watcher, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case ev := <-watcher.Changes():
		t.Fatalf("unexpected change event: %+v", ev)
	case <-time.After(3 * debounceDelay):
	}
}
