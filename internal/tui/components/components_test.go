package components

import (
	"strings"
	"testing"
	"time"

	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogNewestFirst(t *testing.T) {
	el := NewEventLog()
	assert.Contains(t, el.View(), "No events yet")

	el.Append(Event{Kind: EventFocus, Text: "start"})
	el.Append(Event{Kind: EventChange, Text: "1403/02/11"})

	events := el.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventChange, events[0].Kind)
	assert.False(t, events[0].At.IsZero())
}

func TestEventLogIsBounded(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < maxEvents+10; i++ {
		el.Append(Event{Kind: EventChange, Text: "x"})
	}
	assert.Len(t, el.Events(), maxEvents)
}

func TestHistoryView(t *testing.T) {
	hv := NewHistoryView(nil)
	assert.Equal(t, 0, hv.Len())
	assert.Nil(t, hv.SelectedEmission())
	assert.Contains(t, hv.View(), "No values emitted yet")

	e := models.NewEmission("jalali", "day", "yyyy/MM/dd", models.SourceTUI)
	e.Date = "1403/02/11"
	e.CreatedAt = time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)
	hv.UpdateHistory([]*models.Emission{e, nil})
	hv.SetSize(60, 10)

	assert.Equal(t, 1, hv.Len())
	require.NotNil(t, hv.SelectedEmission())
	assert.Equal(t, e.ID, hv.SelectedEmission().ID)
	assert.Contains(t, hv.View(), "1403/02/11")
}

func pressKey(sp *SettingsPane, k tea.KeyType) tea.Msg {
	_, cmd := sp.Update(tea.KeyMsg{Type: k})
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestSettingsPaneRoundTrip(t *testing.T) {
	s := config.Defaults()
	s.MinDate = "-30d"
	s.RTL = true

	sp := NewSettingsPane(s)
	assert.Equal(t, s, sp.Settings())
}

func TestSettingsPaneCycles(t *testing.T) {
	sp := NewSettingsPane(config.Defaults())

	assert.Nil(t, pressKey(sp, tea.KeyRight), "blurred pane ignores keys")

	sp.Focus()
	assert.Equal(t, SettingCalendar, sp.FocusedKey())

	msg := pressKey(sp, tea.KeyRight)
	changed, ok := msg.(SettingsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, "gregorian", changed.Settings.Calendar)
	assert.Equal(t, "1403/02/11", changed.Settings.Value, "untouched fields are kept")

	pressKey(sp, tea.KeyDown)
	assert.Equal(t, SettingMode, sp.FocusedKey())
	msg = pressKey(sp, tea.KeyLeft)
	assert.Equal(t, "range", msg.(SettingsChangedMsg).Settings.Mode)

	pressKey(sp, tea.KeyUp)
	pressKey(sp, tea.KeyUp)
	assert.Equal(t, SettingRTL, sp.FocusedKey(), "focus wraps around")
	msg = pressKey(sp, tea.KeyEnter)
	assert.True(t, msg.(SettingsChangedMsg).Settings.RTL)
}

func TestSettingsPaneKeepsCustomValues(t *testing.T) {
	s := config.Defaults()
	s.Format = "dd.MM.yyyy"
	s.MaxDate = "1404/01/01"

	sp := NewSettingsPane(s)

	assert.Equal(t, s, sp.Settings())
	assert.Contains(t, sp.View(), "dd.MM.yyyy")
}

func TestSettingsPaneView(t *testing.T) {
	sp := NewSettingsPane(config.Defaults())
	view := sp.View()
	assert.Contains(t, view, "Calendar")
	assert.Contains(t, view, "jalali")
	assert.NotContains(t, view, "←/→")

	sp.Focus()
	assert.Contains(t, sp.View(), "←/→")
}

func TestStatusBar(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(40)
	sb.SetPane("picker", "tab: next pane")
	assert.Contains(t, sb.View(), "[picker] tab: next pane")

	sb.SetMessage("failed to save settings", true)
	assert.Contains(t, sb.View(), "failed to save settings")

	sb.ClearMessage()
	sb.SetPane("picker", strings.Repeat("x", 100))
	assert.Contains(t, sb.View(), "...")
}
