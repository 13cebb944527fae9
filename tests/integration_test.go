//go:build integration

package tests

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/db"
	"github.com/MikeBiancalana/qeydar/internal/models"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/MikeBiancalana/qeydar/internal/storage"
	"github.com/MikeBiancalana/qeydar/internal/sync"
)

func TestSettingsHotReloadReconfiguresPicker(t *testing.T) {
	t.Setenv("QEYDAR_DATA_DIR", filepath.Join(t.TempDir(), "data"))

	path, err := config.SettingsPath()
	if err != nil {
		t.Fatalf("Failed to get settings path: %v", err)
	}

	settings := config.Defaults()
	if err := settings.Save(path); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	cfg, err := settings.PickerConfig(nil)
	if err != nil {
		t.Fatalf("Failed to resolve settings: %v", err)
	}
	var changes []picker.Value
	p, err := picker.New(cfg, picker.OnChange(func(v picker.Value) { changes = append(changes, v) }))
	if err != nil {
		t.Fatalf("Failed to create picker: %v", err)
	}
	p.Write(settings.InitialValue())

	watcher, err := sync.NewWatcher(path)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Switch the file to the Gregorian calendar
	settings.Calendar = "gregorian"
	if err := settings.Save(path); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	select {
	case ev := <-watcher.Changes():
		if ev.Err != nil {
			t.Fatalf("Reload failed: %v", ev.Err)
		}
		next, err := ev.Settings.PickerConfig(nil)
		if err != nil {
			t.Fatalf("Failed to resolve reloaded settings: %v", err)
		}
		if err := p.Configure(next); err != nil {
			t.Fatalf("Failed to reconfigure picker: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for settings reload")
	}

	if got := p.Value(); got != picker.SingleValue("2024/04/30") {
		t.Errorf("Expected the stored day rendered in Gregorian, got %v", got)
	}
	if len(changes) != 1 || changes[0] != picker.SingleValue("2024/04/30") {
		t.Errorf("Expected one change notification, got %v", changes)
	}
}

func TestHistoryPersistsAcrossReopen(t *testing.T) {
	t.Setenv("QEYDAR_DATA_DIR", filepath.Join(t.TempDir(), "data"))

	dbPath, err := config.DatabasePath()
	if err != nil {
		t.Fatalf("Failed to get database path: %v", err)
	}

	database, err := storage.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	repo := db.NewHistoryRepository(database, nil)

	e := models.NewEmission("jalali", "day", "yyyy/MM/dd", models.SourceTUI)
	e.Date = "1403/02/11"
	if err := repo.Record(e); err != nil {
		t.Fatalf("Failed to record emission: %v", err)
	}
	database.Close()

	database, err = storage.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer database.Close()

	got, err := db.NewHistoryRepository(database, nil).Recent(0)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(got) != 1 || got[0].ID != e.ID || got[0].Date != "1403/02/11" {
		t.Errorf("Expected the recorded emission after reopen, got %+v", got)
	}
}
