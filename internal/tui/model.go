package tui

import (
	"fmt"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/config"
	"github.com/MikeBiancalana/qeydar/internal/db"
	"github.com/MikeBiancalana/qeydar/internal/logger"
	"github.com/MikeBiancalana/qeydar/internal/models"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/MikeBiancalana/qeydar/internal/sync"
	"github.com/MikeBiancalana/qeydar/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pane represents the focusable panes of the demo
//
// Async Closure Capture Pattern
// ==============================
// When using tea.Cmd (async functions), Go closures capture variables by REFERENCE,
// not by value. Model state may change between when the closure is created and
// when it executes, so every command captures what it needs first:
//
//	func (m *Model) saveSettings() tea.Cmd {
//	    capturedPath := m.settingsPath
//	    capturedSettings := m.settings
//	    return func() tea.Msg {
//	        return settingsSavedMsg{err: capturedSettings.Save(capturedPath)}
//	    }
//	}
type Pane int

const (
	PaneSettings Pane = iota
	PanePicker
	PaneHistory
	PaneCount // Keep this last to get the count
)

const (
	PaneNameSettings = "Settings"
	PaneNamePicker   = "Picker"
	PaneNameHistory  = "History"
)

// paneName returns the display name for a pane
func paneName(p Pane) string {
	switch p {
	case PaneSettings:
		return PaneNameSettings
	case PanePicker:
		return PaneNamePicker
	case PaneHistory:
		return PaneNameHistory
	default:
		return "Unknown"
	}
}

// paneHints returns the status bar key hints for a pane
func paneHints(p Pane) string {
	switch p {
	case PaneSettings:
		return "↑/↓:setting ←/→:change tab:next ?:help q:quit"
	case PanePicker:
		return "type a date enter:commit ↓:calendar esc:close tab:next ctrl+c:quit"
	case PaneHistory:
		return "j/k:navigate tab:next ?:help q:quit"
	default:
		return ""
	}
}

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 80
	MinTerminalHeight = 24
)

// Border dimensions for lipgloss boxes
const (
	BorderWidth  = 2 // Left + right border (1 char each)
	BorderHeight = 2 // Top + bottom border (1 char each)
)

// historyLimit is how many emissions the history pane shows
const historyLimit = 50

// Model represents the main TUI state
type Model struct {
	registry     calendar.Registry
	settings     config.Settings
	settingsPath string
	history      *db.HistoryRepository
	watcher      *sync.Watcher
	focusedPane  Pane
	width        int
	height       int

	// Components
	settingsPane *components.SettingsPane
	datePicker   *components.DatePicker
	historyView  *components.HistoryView
	eventLog     *components.EventLog
	statusBar    *components.StatusBar

	helpMode  bool
	lastError error

	// Terminal size validation
	terminalTooSmall bool
}

// NewModel creates a new TUI model showing a picker configured by settings.
// A nil registry uses calendar.DefaultRegistry.
func NewModel(settings config.Settings, registry calendar.Registry) (*Model, error) {
	if registry == nil {
		registry = calendar.DefaultRegistry()
	}

	cfg, err := settings.PickerConfig(registry)
	if err != nil {
		return nil, err
	}

	dp, err := components.NewDatePicker("Date", cfg,
		picker.WithRegistry(registry),
		picker.WithLogger(logger.GetLogger()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create date picker: %w", err)
	}
	dp.SetRTL(settings.RTL)
	dp.SetValue(settings.InitialValue())

	sb := components.NewStatusBar()
	sb.SetPane(PaneNameSettings, paneHints(PaneSettings))

	return &Model{
		registry:     registry,
		settings:     settings,
		focusedPane:  PaneSettings,
		settingsPane: components.NewSettingsPane(settings),
		datePicker:   dp,
		historyView:  components.NewHistoryView(nil),
		eventLog:     components.NewEventLog(),
		statusBar:    sb,
	}, nil
}

// SetHistory sets the repository that emitted values are recorded to
func (m *Model) SetHistory(history *db.HistoryRepository) {
	m.history = history
}

// SetWatcher sets the settings file watcher. The model starts it in Init.
func (m *Model) SetWatcher(watcher *sync.Watcher) {
	m.watcher = watcher
}

// SetSettingsPath sets where settings changes are saved. Empty disables saving.
func (m *Model) SetSettingsPath(path string) {
	m.settingsPath = path
}

// Settings returns the settings the model currently runs with
func (m *Model) Settings() config.Settings {
	return m.settings
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.focusPane(PanePicker)}

	if m.history != nil {
		cmds = append(cmds, m.loadHistory())
	}

	// Start watcher
	if m.watcher != nil {
		if err := m.watcher.Start(); err != nil {
			logger.Warn("tui: settings watcher not started", "error", err)
		} else {
			cmds = append(cmds, m.waitForSettingsChange())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
// This function is a simple dispatcher that routes messages to
// dedicated handler methods organized in handlers.go and keyboard.go
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case components.SettingsChangedMsg:
		return m.handleSettingsChanged(msg)

	case components.DateChangedMsg:
		return m.handleDateChanged(msg)

	case components.DateFocusMsg:
		return m.handleDateFocus(msg)

	case components.DateBlurMsg:
		return m.handleDateBlur(msg)

	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case emissionRecordedMsg:
		return m, m.loadHistory()

	case settingsSavedMsg:
		return m, nil

	case settingsFileChangedMsg:
		return m.handleSettingsFileChanged(msg)

	case errMsg:
		return m.handleError(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		if m.focusedPane == PanePicker {
			var cmd tea.Cmd
			m.datePicker, cmd = m.datePicker.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}

	if m.helpMode {
		return m.helpView()
	}

	dims := CalculatePaneDimensions(m.width, m.height)

	settingsBox := m.getBorderStyle(PaneSettings).Render(centerView(
		dims.SettingsWidth-BorderWidth, dims.SettingsHeight-BorderHeight, m.settingsPane.View()))

	pickerBox := m.getBorderStyle(PanePicker).Render(centerView(
		dims.PickerWidth-BorderWidth, dims.PickerHeight-BorderHeight, m.datePicker.View()))

	rightInnerWidth := dims.RightWidth - BorderWidth
	historyBox := m.getBorderStyle(PaneHistory).Render(centerView(
		rightInnerWidth, dims.HistoryHeight-BorderHeight, m.historyView.View()))
	eventsBox := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Render(centerView(
		rightInnerWidth, dims.EventsHeight-BorderHeight, m.eventLog.View()))

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		settingsBox,
		pickerBox,
		lipgloss.JoinVertical(lipgloss.Left, historyBox, eventsBox),
	)

	return content + "\n" + m.statusBar.View()
}

// centerView places a view within given dimensions (left-aligned, top-aligned)
func centerView(width, height int, view string) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, view)
}

// getBorderStyle returns a border style with focus color if the pane is focused
func (m *Model) getBorderStyle(pane Pane) lipgloss.Style {
	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	if m.focusedPane == pane {
		style = style.BorderForeground(lipgloss.Color("11")) // bright yellow color for focus
	}
	return style
}

// helpView renders the help overlay
func (m *Model) helpView() string {
	helpText := `Help - Key Bindings:

Panes:
  tab        Next pane (moves between start and end in range mode)
  shift+tab  Previous pane

Settings:
  ↑/↓, k/j   Select setting
  ←/→, h/l   Change setting (saved to the settings file)

Picker input:
  type       Edit the date; valid dates are committed as you type
  enter      Commit and correct the text
  ↓          Open the calendar grid
  esc        Close the calendar

Calendar grid:
  arrows     Move the cursor (mirrored in RTL)
  pgup/pgdn  Previous / next month
  t          Jump to today
  m, y       Month / year view
  enter      Pick

General:
  q          Quit (outside the picker)
  ctrl+c     Quit
  ?          Toggle help

Press ? to exit help.`

	return helpText + "\n\n" + m.statusBar.View()
}

// terminalTooSmallView renders the message when terminal is too small
func (m *Model) terminalTooSmallView() string {
	title := "Terminal Too Small"
	currentSize := fmt.Sprintf("Current: %dx%d", m.width, m.height)
	requiredSize := fmt.Sprintf("Required: %dx%d or larger", MinTerminalWidth, MinTerminalHeight)

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Align(lipgloss.Center, lipgloss.Center)

	content := fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\nResize your terminal to continue.",
		title,
		currentSize,
		requiredSize,
	)

	return style.Render(content)
}

// Message type definitions
type historyLoadedMsg struct {
	emissions []*models.Emission
}

type emissionRecordedMsg struct{}

type settingsSavedMsg struct{}

type settingsFileChangedMsg struct {
	event sync.SettingsChangeEvent
	ok    bool
}

type errMsg struct {
	err error
}
