package tui

import (
	"errors"
	"testing"

	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/MikeBiancalana/qeydar/internal/sync"
	"github.com/MikeBiancalana/qeydar/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func eventFor(s config.Settings) sync.SettingsChangeEvent {
	return sync.SettingsChangeEvent{Path: config.SettingsName, Settings: s}
}

// TestHandleWindowSize tests the window resize handler
func TestHandleWindowSize(t *testing.T) {
	t.Run("sets width and height", func(t *testing.T) {
		m := &Model{}
		updatedModel, _ := m.handleWindowSize(tea.WindowSizeMsg{Width: 120, Height: 40})
		model := updatedModel.(*Model)

		assert.Equal(t, 120, model.width)
		assert.Equal(t, 40, model.height)
	})

	t.Run("sets terminalTooSmall when below minimum", func(t *testing.T) {
		m := &Model{}
		updatedModel, _ := m.handleWindowSize(tea.WindowSizeMsg{Width: 60, Height: 20})
		assert.True(t, updatedModel.(*Model).terminalTooSmall)
	})

	t.Run("clears terminalTooSmall when above minimum", func(t *testing.T) {
		m := &Model{terminalTooSmall: true}
		updatedModel, _ := m.handleWindowSize(tea.WindowSizeMsg{Width: 120, Height: 40})
		assert.False(t, updatedModel.(*Model).terminalTooSmall)
	})
}

func TestHandleDateFocusAndBlur(t *testing.T) {
	m := &Model{eventLog: components.NewEventLog()}

	m.handleDateFocus(components.DateFocusMsg{Slot: picker.SlotStart})
	m.handleDateBlur(components.DateBlurMsg{Slot: picker.SlotNone, Value: "2024/04/30"})

	events := m.eventLog.Events()
	assert.Equal(t, `date "2024/04/30"`, events[0].Text)
	assert.Equal(t, "start", events[1].Text)
}

func TestHandleError(t *testing.T) {
	m := &Model{statusBar: components.NewStatusBar(), eventLog: components.NewEventLog()}
	m.statusBar.SetWidth(80)

	err := errors.New("disk full")
	_, cmd := m.handleError(errMsg{err})

	assert.Nil(t, cmd)
	assert.Equal(t, err, m.lastError)
	assert.Contains(t, m.statusBar.View(), "Error: disk full")
	assert.Equal(t, components.EventError, m.eventLog.Events()[0].Kind)
}

func TestHandleHistoryLoaded(t *testing.T) {
	m := &Model{historyView: components.NewHistoryView(nil)}
	m.handleHistoryLoaded(historyLoadedMsg{})
	assert.Equal(t, 0, m.historyView.Len())
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "", valueText(picker.Value{}))
	assert.Equal(t, "1403/02/11", valueText(picker.SingleValue("1403/02/11")))
	assert.Equal(t, "1403/02/01", valueText(picker.RangeValue("1403/02/01", "1403/02/10")))
	assert.Equal(t, "", valueText(picker.RangeValue("", "1403/02/10")))
}
