// Package sync keeps a running picker in step with its settings file.
package sync

import (
	"fmt"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// SettingsChangeEvent carries the reloaded settings, or the error that
// prevented loading them.
type SettingsChangeEvent struct {
	Path     string
	Settings config.Settings
	Err      error
}

// Watcher reloads a settings file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself because
// editors and config.Settings.Save replace the file by rename.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan SettingsChangeEvent
	done    chan struct{}

	mu            gosync.Mutex
	stopped       bool
	debounceTimer *time.Timer

	// sendMu is held for reading while reload sends, and for writing while
	// Stop closes changes
	sendMu   gosync.RWMutex
	stopOnce gosync.Once
}

// NewWatcher creates a watcher for the settings file at path
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    filepath.Clean(path),
		changes: make(chan SettingsChangeEvent, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the settings directory
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher and closes the Changes channel. Calling it again
// is a no-op.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()

		// Unblocks a pending reload before the channel is closed
		close(w.done)
		w.watcher.Close()

		w.sendMu.Lock()
		close(w.changes)
		w.sendMu.Unlock()
	})
}

// Changes returns the channel for settings change notifications
func (w *Watcher) Changes() <-chan SettingsChangeEvent {
	return w.changes
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("settings watcher error", "error", err)
		}
	}
}

// schedule (re)arms the debounce timer so a burst of writes causes one reload
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	settings, err := config.LoadSettings(w.path)
	if err != nil {
		logger.Warn("failed to reload settings", "path", w.path, "error", err)
	} else {
		logger.Debug("settings reloaded", "path", w.path)
	}

	w.sendMu.RLock()
	defer w.sendMu.RUnlock()
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.changes <- SettingsChangeEvent{Path: w.path, Settings: settings, Err: err}:
	case <-w.done:
	}
}
