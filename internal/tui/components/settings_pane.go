package components

import (
	"strings"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	settingsLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(10)

	settingsLabelFocusedStyle = settingsLabelStyle.
					Foreground(lipgloss.Color("39")).
					Bold(true)

	settingsValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	settingsValueFocusedStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("0")).
					Background(lipgloss.Color("39"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// Setting keys
const (
	SettingCalendar = "calendar"
	SettingMode     = "mode"
	SettingFormat   = "format"
	SettingMin      = "min"
	SettingMax      = "max"
	SettingRTL      = "rtl"
)

// SettingOption is one choice of a setting
type SettingOption struct {
	Label string
	Value string
}

// SettingField is a setting cycled through a fixed list of options
type SettingField struct {
	Label   string
	Key     string
	Options []SettingOption
	index   int
}

func (f *SettingField) value() string {
	return f.Options[f.index].Value
}

// selectValue points the field at v, adding it as an option when it is not
// one of the presets (a hand edited settings file, say).
func (f *SettingField) selectValue(v string) {
	for i, o := range f.Options {
		if o.Value == v {
			f.index = i
			return
		}
	}
	f.Options = append(f.Options, SettingOption{Label: v, Value: v})
	f.index = len(f.Options) - 1
}

// SettingsChangedMsg is sent when the user changes a setting
type SettingsChangedMsg struct {
	Settings config.Settings
}

// FormatPresets are the layouts offered by the settings pane
var FormatPresets = []string{"yyyy/MM/dd", "yyyy-MM-dd", "dd/MM/yyyy", "yyyy/M/d"}

// BoundPresets are the min/max date choices, as calendar.ParseRelative input
var BoundPresets = []SettingOption{
	{Label: "none", Value: ""},
	{Label: "30 days ago", Value: "-30d"},
	{Label: "today", Value: "today"},
	{Label: "in 30 days", Value: "+30d"},
}

// SettingsPane edits the demo settings
type SettingsPane struct {
	title      string
	base       config.Settings
	fields     []SettingField
	focusIndex int
	focused    bool
	width      int
}

// NewSettingsPane creates a settings pane showing s
func NewSettingsPane(s config.Settings) *SettingsPane {
	formats := make([]SettingOption, len(FormatPresets))
	for i, f := range FormatPresets {
		formats[i] = SettingOption{Label: f, Value: f}
	}
	modes := make([]SettingOption, len(picker.Modes))
	for i, m := range picker.Modes {
		modes[i] = SettingOption{Label: string(m), Value: string(m)}
	}

	sp := &SettingsPane{
		title: "Settings",
		width: 30,
		fields: []SettingField{
			{Label: "Calendar", Key: SettingCalendar, Options: []SettingOption{
				{Label: "jalali", Value: string(calendar.SystemJalali)},
				{Label: "gregorian", Value: string(calendar.SystemGregorian)},
			}},
			{Label: "Mode", Key: SettingMode, Options: modes},
			{Label: "Format", Key: SettingFormat, Options: formats},
			{Label: "Min", Key: SettingMin, Options: append([]SettingOption(nil), BoundPresets...)},
			{Label: "Max", Key: SettingMax, Options: append([]SettingOption(nil), BoundPresets...)},
			{Label: "RTL", Key: SettingRTL, Options: []SettingOption{
				{Label: "off", Value: "false"},
				{Label: "on", Value: "true"},
			}},
		},
	}
	sp.SetSettings(s)
	return sp
}

// SetSettings shows s without sending a SettingsChangedMsg
func (sp *SettingsPane) SetSettings(s config.Settings) {
	sp.base = s
	for i := range sp.fields {
		f := &sp.fields[i]
		switch f.Key {
		case SettingCalendar:
			system, err := calendar.ParseSystem(s.Calendar)
			if err != nil {
				f.selectValue(s.Calendar)
			} else {
				f.selectValue(string(system))
			}
		case SettingMode:
			f.selectValue(s.Mode)
		case SettingFormat:
			f.selectValue(s.Format)
		case SettingMin:
			f.selectValue(s.MinDate)
		case SettingMax:
			f.selectValue(s.MaxDate)
		case SettingRTL:
			if s.RTL {
				f.selectValue("true")
			} else {
				f.selectValue("false")
			}
		}
	}
}

// Settings returns the settings currently shown
func (sp *SettingsPane) Settings() config.Settings {
	s := sp.base
	for _, f := range sp.fields {
		v := f.value()
		switch f.Key {
		case SettingCalendar:
			s.Calendar = v
		case SettingMode:
			s.Mode = v
		case SettingFormat:
			s.Format = v
		case SettingMin:
			s.MinDate = v
		case SettingMax:
			s.MaxDate = v
		case SettingRTL:
			s.RTL = v == "true"
		}
	}
	return s
}

// FocusedKey returns the key of the highlighted setting
func (sp *SettingsPane) FocusedKey() string {
	return sp.fields[sp.focusIndex].Key
}

func (sp *SettingsPane) Focus() { sp.focused = true }
func (sp *SettingsPane) Blur()  { sp.focused = false }

func (sp *SettingsPane) IsFocused() bool { return sp.focused }

// SetWidth sets the width of the pane
func (sp *SettingsPane) SetWidth(width int) {
	sp.width = width
}

// Update handles Bubble Tea messages
func (sp *SettingsPane) Update(msg tea.Msg) (*SettingsPane, tea.Cmd) {
	if !sp.focused {
		return sp, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return sp, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		sp.focusIndex--
		if sp.focusIndex < 0 {
			sp.focusIndex = len(sp.fields) - 1
		}
	case "down", "j":
		sp.focusIndex++
		if sp.focusIndex >= len(sp.fields) {
			sp.focusIndex = 0
		}
	case "right", "l", "enter", " ":
		return sp, sp.cycle(1)
	case "left", "h":
		return sp, sp.cycle(-1)
	}
	return sp, nil
}

func (sp *SettingsPane) cycle(step int) tea.Cmd {
	f := &sp.fields[sp.focusIndex]
	f.index = (f.index + step + len(f.Options)) % len(f.Options)

	settings := sp.Settings()
	return func() tea.Msg {
		return SettingsChangedMsg{Settings: settings}
	}
}

// View renders the settings pane
func (sp *SettingsPane) View() string {
	var content strings.Builder

	content.WriteString(settingsTitleStyle.Render(sp.title))
	content.WriteString("\n\n")

	for i, f := range sp.fields {
		labelStyle, valueStyle := settingsLabelStyle, settingsValueStyle
		if sp.focused && i == sp.focusIndex {
			labelStyle, valueStyle = settingsLabelFocusedStyle, settingsValueFocusedStyle
		}
		content.WriteString(labelStyle.Render(f.Label))
		content.WriteString(valueStyle.Render("‹ " + f.Options[f.index].Label + " ›"))
		content.WriteString("\n")
	}

	if sp.focused {
		content.WriteString("\n")
		content.WriteString(settingsHelpStyle.Render("↑/↓: setting  ←/→: change"))
	}

	return content.String()
}
