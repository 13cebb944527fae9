package tui

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/logger"
	"github.com/MikeBiancalana/qeydar/internal/models"
	"github.com/MikeBiancalana/qeydar/internal/perf"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	tea "github.com/charmbracelet/bubbletea"
)

// Command Builders
//
// These methods create tea.Cmd functions for async operations.
// They follow the async closure capture pattern to avoid bugs
// where model state changes between closure creation and execution.
//
// Key principle: Capture all needed values BEFORE returning the closure.

// loadHistory loads the most recent emissions
func (m *Model) loadHistory() tea.Cmd {
	capturedHistory := m.history
	if capturedHistory == nil {
		return nil
	}

	return func() tea.Msg {
		timer := perf.NewTimer("tui.loadHistory", logger.GetLogger(), 100)
		defer timer.Stop()

		emissions, err := capturedHistory.Recent(historyLimit)
		if err != nil {
			return errMsg{fmt.Errorf("failed to load history: %w", err)}
		}
		return historyLoadedMsg{emissions: emissions}
	}
}

// recordEmission stores a value the picker emitted
func (m *Model) recordEmission(v picker.Value) tea.Cmd {
	capturedHistory := m.history
	if capturedHistory == nil || v.IsZero() {
		return nil
	}

	cfg := m.datePicker.Picker().Config()
	e := models.NewEmission(cfg.Calendar.String(), string(cfg.Mode), cfg.Format, models.SourceTUI)
	e.Date = v.Date
	e.Start = v.Start
	e.End = v.End

	return func() tea.Msg {
		if err := capturedHistory.Record(e); err != nil {
			return errMsg{fmt.Errorf("failed to record value: %w", err)}
		}
		return emissionRecordedMsg{}
	}
}

// saveSettings writes the current settings to the settings file
func (m *Model) saveSettings() tea.Cmd {
	capturedPath := m.settingsPath
	capturedSettings := m.settings
	if capturedPath == "" {
		return nil
	}

	return func() tea.Msg {
		timer := perf.NewTimer("tui.saveSettings", logger.GetLogger(), 100)
		defer timer.Stop()

		if err := capturedSettings.Save(capturedPath); err != nil {
			return errMsg{fmt.Errorf("failed to save settings: %w", err)}
		}
		logger.Debug("tui: settings saved", "path", capturedPath)
		return settingsSavedMsg{}
	}
}

// waitForSettingsChange waits for reloads from the settings watcher.
// This is a non-blocking async command - it returns immediately and the
// closure waits for the watcher channel to deliver.
func (m *Model) waitForSettingsChange() tea.Cmd {
	capturedWatcher := m.watcher
	if capturedWatcher == nil {
		return nil
	}

	return func() tea.Msg {
		event, ok := <-capturedWatcher.Changes()
		return settingsFileChangedMsg{event: event, ok: ok}
	}
}
