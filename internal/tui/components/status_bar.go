package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusErrorStyle = statusBarStyle.
				Foreground(lipgloss.Color("196"))
)

// StatusBar represents the status bar component
type StatusBar struct {
	width   int
	pane    string
	hints   string
	message string
	isError bool
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetPane sets the focused pane name and its key hints
func (sb *StatusBar) SetPane(name, hints string) {
	sb.pane = name
	sb.hints = hints
}

// SetMessage shows msg instead of the hints until ClearMessage
func (sb *StatusBar) SetMessage(msg string, isError bool) {
	sb.message = msg
	sb.isError = isError
}

func (sb *StatusBar) ClearMessage() {
	sb.message = ""
	sb.isError = false
}

// View renders the status bar
func (sb *StatusBar) View() string {
	text := sb.hints
	if sb.pane != "" {
		text = "[" + sb.pane + "] " + text
	}
	style := statusBarStyle
	if sb.message != "" {
		text = sb.message
		if sb.isError {
			style = statusErrorStyle
		}
	}

	// Padding takes two cells
	if sb.width > 5 {
		text = ansi.Truncate(text, sb.width-2, "...")
	}

	return style.Width(sb.width).Render(text)
}
