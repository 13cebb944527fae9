package tui

import (
	"github.com/MikeBiancalana/qeydar/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

// Keyboard Handlers
//
// These methods handle keyboard input organized by mode and context.
// The main handleKeyPress dispatcher routes to specific handlers based
// on the current state (help mode, pane switching, focused pane).

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	// Any key dismisses a pending error
	if m.lastError != nil {
		m.lastError = nil
		m.statusBar.ClearMessage()
	}

	if m.helpMode {
		return m.handleHelpKeys(msg)
	}

	switch msg.String() {
	case "tab":
		return m.handleTab(false)
	case "shift+tab":
		return m.handleTab(true)
	}

	// The picker input takes every printable key
	if m.focusedPane != PanePicker {
		switch msg.String() {
		case "q":
			return m.handleQuit()
		case "?":
			m.helpMode = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focusedPane {
	case PaneSettings:
		m.settingsPane, cmd = m.settingsPane.Update(msg)
	case PanePicker:
		m.datePicker, cmd = m.datePicker.Update(msg)
	case PaneHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return m, cmd
}

// handleHelpKeys handles keyboard input while the help overlay is shown
func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc":
		m.helpMode = false
	case "q":
		return m.handleQuit()
	}
	return m, nil
}

// handleTab moves focus to the next (or previous) pane. In range mode the
// picker keeps tab while it moves between its start and end inputs.
func (m *Model) handleTab(shift bool) (tea.Model, tea.Cmd) {
	if m.focusedPane == PanePicker && m.datePicker.ConsumesTab(shift) {
		var cmd tea.Cmd
		m.datePicker, cmd = m.datePicker.Update(tabKey(shift))
		return m, cmd
	}

	next := (m.focusedPane + 1) % PaneCount
	if shift {
		next = (m.focusedPane - 1 + PaneCount) % PaneCount
	}
	return m, m.focusPane(next)
}

// focusPane moves focus to pane, blurring the picker when it loses focus
func (m *Model) focusPane(pane Pane) tea.Cmd {
	var cmds []tea.Cmd

	if m.focusedPane == PanePicker && pane != PanePicker {
		cmds = append(cmds, m.datePicker.Blur())
	}
	m.settingsPane.Blur()

	logger.Debug("tui: focus pane", "from", paneName(m.focusedPane), "to", paneName(pane))
	m.focusedPane = pane

	switch pane {
	case PaneSettings:
		m.settingsPane.Focus()
	case PanePicker:
		if !m.datePicker.IsFocused() {
			cmds = append(cmds, m.datePicker.Focus())
		}
	}

	m.statusBar.SetPane(paneName(pane), paneHints(pane))
	return tea.Batch(cmds...)
}

// handleQuit stops the watcher and quits
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return m, tea.Quit
}

func tabKey(shift bool) tea.KeyMsg {
	if shift {
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyTab}
}
