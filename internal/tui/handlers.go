package tui

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/logger"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/MikeBiancalana/qeydar/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// Message Handlers
//
// These methods handle specific message types, keeping the main Update()
// function clean and focused. Each handler follows the pattern:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)
//
// This makes handlers testable in isolation and easy to understand.

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Check if terminal meets minimum dimensions
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	if m.statusBar != nil {
		m.statusBar.SetWidth(msg.Width)
	}

	// Only size components if terminal is large enough
	if !m.terminalTooSmall {
		dims := CalculatePaneDimensions(msg.Width, msg.Height)
		rightInnerWidth := dims.RightWidth - BorderWidth

		if m.settingsPane != nil {
			m.settingsPane.SetWidth(dims.SettingsWidth - BorderWidth)
		}
		if m.datePicker != nil {
			m.datePicker.SetWidth(dims.PickerWidth - BorderWidth)
		}
		if m.historyView != nil {
			m.historyView.SetSize(rightInnerWidth, dims.HistoryHeight-BorderHeight)
		}
		if m.eventLog != nil {
			m.eventLog.SetSize(rightInnerWidth, dims.EventsHeight-BorderHeight)
		}
	}

	return m, nil
}

// handleSettingsChanged applies a setting changed in the settings pane and
// saves it
func (m *Model) handleSettingsChanged(msg components.SettingsChangedMsg) (tea.Model, tea.Cmd) {
	s := msg.Settings
	s.Value = m.settings.Value

	cmd, err := m.applySettings(s)
	if err != nil {
		// Put the pane back on the settings still in effect
		m.settingsPane.SetSettings(m.settings)
		return m.handleError(errMsg{err})
	}

	return m, tea.Batch(cmd, m.saveSettings())
}

// handleSettingsFileChanged applies settings reloaded by the watcher
func (m *Model) handleSettingsFileChanged(msg settingsFileChangedMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// Watcher stopped
		return m, nil
	}

	next := m.waitForSettingsChange()

	if msg.event.Err != nil {
		m.eventLog.Append(components.Event{
			Kind: components.EventError,
			Text: "settings file: " + msg.event.Err.Error(),
		})
		return m, next
	}

	// Values are written back on every change; only configuration edits
	// made outside the demo are applied
	s := msg.event.Settings
	s.Value = m.settings.Value
	if s == m.settings {
		return m, next
	}

	logger.Debug("tui: applying reloaded settings", "path", msg.event.Path)
	cmd, err := m.applySettings(s)
	if err != nil {
		m.eventLog.Append(components.Event{
			Kind: components.EventError,
			Text: "settings file: " + err.Error(),
		})
		return m, next
	}

	return m, tea.Batch(cmd, next)
}

// applySettings reconfigures the picker with s. On error nothing changes.
func (m *Model) applySettings(s config.Settings) (tea.Cmd, error) {
	cfg, err := s.PickerConfig(m.registry)
	if err != nil {
		return nil, err
	}

	cmd, err := m.datePicker.Configure(cfg)
	if err != nil {
		return nil, err
	}
	m.datePicker.SetRTL(s.RTL)

	// A mode change clears the selection
	s.Value = valueText(m.datePicker.Value())
	m.settings = s
	m.settingsPane.SetSettings(s)

	m.eventLog.Append(components.Event{
		Kind: components.EventSettings,
		Text: fmt.Sprintf("%s %s %s", s.Calendar, s.Mode, s.Format),
	})
	logger.Info("tui: settings applied",
		"calendar", s.Calendar, "mode", s.Mode, "format", s.Format,
		"min", s.MinDate, "max", s.MaxDate, "rtl", s.RTL)

	return cmd, nil
}

// handleDateChanged logs, records and persists a value emitted by the picker
func (m *Model) handleDateChanged(msg components.DateChangedMsg) (tea.Model, tea.Cmd) {
	text := msg.Value.String()
	if msg.Value.IsZero() {
		text = "(cleared)"
	}
	m.eventLog.Append(components.Event{Kind: components.EventChange, Text: text})
	logger.Debug("tui: date changed", "value", text)

	m.settings.Value = valueText(msg.Value)

	return m, tea.Batch(m.recordEmission(msg.Value), m.saveSettings())
}

// handleDateFocus logs a focus event of the picker
func (m *Model) handleDateFocus(msg components.DateFocusMsg) (tea.Model, tea.Cmd) {
	m.eventLog.Append(components.Event{Kind: components.EventFocus, Text: slotLabel(msg.Slot)})
	return m, nil
}

// handleDateBlur logs a blur event of the picker with the corrected text
func (m *Model) handleDateBlur(msg components.DateBlurMsg) (tea.Model, tea.Cmd) {
	m.eventLog.Append(components.Event{
		Kind: components.EventBlur,
		Text: fmt.Sprintf("%s %q", slotLabel(msg.Slot), msg.Value),
	})
	return m, nil
}

// handleHistoryLoaded shows freshly loaded history
func (m *Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	m.historyView.UpdateHistory(msg.emissions)
	return m, nil
}

// handleError handles error messages
func (m *Model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	// Store error for display
	m.lastError = msg.err
	logger.Error("tui: error", "error", msg.err)

	if m.statusBar != nil {
		m.statusBar.SetMessage("Error: "+msg.err.Error(), true)
	}
	if m.eventLog != nil {
		m.eventLog.Append(components.Event{Kind: components.EventError, Text: msg.err.Error()})
	}
	return m, nil
}

// valueText is the part of v kept in the settings file
func valueText(v picker.Value) string {
	if v.IsRange() {
		return v.Start
	}
	return v.Date
}

func slotLabel(slot picker.Slot) string {
	if s := slot.String(); s != "" {
		return s
	}
	return "date"
}
