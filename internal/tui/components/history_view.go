package components

import (
	"fmt"
	"io"

	"github.com/MikeBiancalana/qeydar/internal/models"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	historyMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// HistoryItem represents a recorded emission in the list
type HistoryItem struct {
	emission models.Emission
}

func (h HistoryItem) FilterValue() string { return h.emission.Text() }

// HistoryDelegate handles rendering of history items
type HistoryDelegate struct{}

func (d HistoryDelegate) Height() int                               { return 1 }
func (d HistoryDelegate) Spacing() int                              { return 0 }
func (d HistoryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d HistoryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	hi, ok := listItem.(HistoryItem)
	if !ok {
		return
	}

	meta := historyMetaStyle.Render(fmt.Sprintf("%s %s/%s",
		hi.emission.CreatedAt.Format("15:04:05"), hi.emission.Calendar, hi.emission.Mode))
	text := hi.emission.Text()

	if index == m.Index() {
		text = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Render("▶ " + text)
	} else {
		text = historyStyle.Render(text)
	}

	fmt.Fprintf(w, "%s %s", text, meta)
}

// HistoryView lists the values the picker emitted, newest first.
type HistoryView struct {
	list list.Model
}

func NewHistoryView(emissions []*models.Emission) *HistoryView {
	l := list.New(nil, HistoryDelegate{}, 0, 0)
	l.Title = "History"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = historyStyle

	hv := &HistoryView{list: l}
	hv.UpdateHistory(emissions)
	return hv
}

// Update handles messages for the history view
func (hv *HistoryView) Update(msg tea.Msg) (*HistoryView, tea.Cmd) {
	var cmd tea.Cmd
	hv.list, cmd = hv.list.Update(msg)
	return hv, cmd
}

// View renders the history view
func (hv *HistoryView) View() string {
	if len(hv.list.Items()) == 0 {
		return historyStyle.Render("History") + "\n\nNo values emitted yet"
	}
	return hv.list.View()
}

// SetSize sets the size of the list
func (hv *HistoryView) SetSize(width, height int) {
	hv.list.SetSize(width, height)
}

// UpdateHistory replaces the listed emissions
func (hv *HistoryView) UpdateHistory(emissions []*models.Emission) {
	items := make([]list.Item, 0, len(emissions))
	for _, e := range emissions {
		if e != nil {
			items = append(items, HistoryItem{*e})
		}
	}
	hv.list.SetItems(items)
}

// Len returns how many emissions are listed
func (hv *HistoryView) Len() int {
	return len(hv.list.Items())
}

// SelectedEmission returns the currently selected emission
func (hv *HistoryView) SelectedEmission() *models.Emission {
	item := hv.list.SelectedItem()
	if item == nil {
		return nil
	}
	historyItem, ok := item.(HistoryItem)
	if !ok {
		return nil
	}
	// Create a copy and return pointer to it
	e := historyItem.emission
	return &e
}
