package components

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxEvents bounds the event log; older entries are dropped.
const maxEvents = 200

var (
	eventLogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("99")).
				Bold(true)

	eventKindStyles = map[EventKind]lipgloss.Style{
		EventChange:   lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		EventFocus:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		EventBlur:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		EventSettings: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		EventError:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// EventKind classifies an event log entry.
type EventKind string

const (
	EventChange   EventKind = "change"
	EventFocus    EventKind = "focus"
	EventBlur     EventKind = "blur"
	EventSettings EventKind = "settings"
	EventError    EventKind = "error"
)

// Event is one line of the event log.
type Event struct {
	At   time.Time
	Kind EventKind
	Text string
}

// EventItem represents an event in the list
type EventItem struct {
	event Event
}

func (e EventItem) FilterValue() string { return e.event.Text }

// EventDelegate handles rendering of event items
type EventDelegate struct{}

func (d EventDelegate) Height() int                               { return 1 }
func (d EventDelegate) Spacing() int                              { return 0 }
func (d EventDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d EventDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(EventItem)
	if !ok {
		return
	}

	kind := fmt.Sprintf("%-8s", item.event.Kind)
	if style, ok := eventKindStyles[item.event.Kind]; ok {
		kind = style.Render(kind)
	}
	fmt.Fprintf(w, "%s %s %s", item.event.At.Format("15:04:05"), kind, item.event.Text)
}

// EventLog shows the picker's outbound events, newest first.
type EventLog struct {
	list   list.Model
	events []Event
}

func NewEventLog() *EventLog {
	l := list.New(nil, EventDelegate{}, 0, 0)
	l.Title = "Events"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = eventLogTitleStyle

	return &EventLog{list: l}
}

// Append adds an event at the top of the log.
func (el *EventLog) Append(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	el.events = append([]Event{e}, el.events...)
	if len(el.events) > maxEvents {
		el.events = el.events[:maxEvents]
	}

	items := make([]list.Item, len(el.events))
	for i, ev := range el.events {
		items[i] = EventItem{ev}
	}
	el.list.SetItems(items)
}

// Events returns the logged events, newest first.
func (el *EventLog) Events() []Event {
	return el.events
}

// Update handles messages for the event log
func (el *EventLog) Update(msg tea.Msg) (*EventLog, tea.Cmd) {
	var cmd tea.Cmd
	el.list, cmd = el.list.Update(msg)
	return el, cmd
}

// View renders the event log
func (el *EventLog) View() string {
	if len(el.events) == 0 {
		return eventLogTitleStyle.Render("Events") + "\n\nNo events yet - focus the picker and pick a date"
	}
	return el.list.View()
}

// SetSize sets the size of the list
func (el *EventLog) SetSize(width, height int) {
	el.list.SetSize(width, height)
}
