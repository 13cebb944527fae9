package components

import (
	"fmt"
	"strings"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
	"github.com/MikeBiancalana/qeydar/internal/picker"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	datePickerBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	datePickerFocusedBoxStyle = datePickerBoxStyle.
					BorderForeground(lipgloss.Color("39"))

	datePickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	datePickerLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	datePickerHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	datePickerWeekdayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	datePickerCursorStyle = lipgloss.NewStyle().
				Reverse(true).
				Bold(true)

	datePickerSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("39")).
				Foreground(lipgloss.Color("0"))

	datePickerInRangeStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("24"))

	datePickerTodayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40")).
				Underline(true)

	datePickerDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	datePickerHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

var weekdayAbbr = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// DateChangedMsg is sent when the picker commits a new value.
type DateChangedMsg struct {
	Value picker.Value
}

// DateFocusMsg is sent when an input of the picker gains focus.
type DateFocusMsg struct {
	Slot picker.Slot
}

// DateBlurMsg is sent when an input loses focus, with its corrected text.
type DateBlurMsg struct {
	Slot  picker.Slot
	Value string
}

type pickerZone int

const (
	zoneInput pickerZone = iota
	zoneGrid
)

type gridView int

const (
	viewDays gridView = iota
	viewMonths
	viewYears
)

// DatePicker is a TUI date input backed by a picker.Picker. It shows one text
// input (two in range mode) and, while the picker is open, a keyboard driven
// calendar grid.
type DatePicker struct {
	title   string
	picker  *picker.Picker
	inputs  [3]textinput.Model // indexed by picker.Slot
	slot    picker.Slot
	focused bool
	zone    pickerZone
	view    gridView
	cursor  calendar.Date
	rtl     bool
	width   int
	pending []tea.Msg
}

// NewDatePicker creates a date picker for cfg. The picker's listeners are
// owned by the component; hosts receive DateChangedMsg, DateFocusMsg and
// DateBlurMsg instead.
func NewDatePicker(title string, cfg picker.Config, opts ...picker.Option) (*DatePicker, error) {
	dp := &DatePicker{title: title, width: 40}
	opts = append(opts,
		picker.OnChange(func(v picker.Value) {
			dp.pending = append(dp.pending, DateChangedMsg{Value: v})
		}),
		picker.OnFocus(func(e picker.FocusEvent) {
			dp.pending = append(dp.pending, DateFocusMsg{Slot: e.Slot})
		}),
		picker.OnBlur(func(e picker.BlurEvent) {
			dp.pending = append(dp.pending, DateBlurMsg{Slot: e.Slot, Value: e.Value})
		}),
	)
	p, err := picker.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	dp.picker = p
	for i := range dp.inputs {
		dp.inputs[i] = newDateInput()
	}
	dp.reset()
	return dp, nil
}

func newDateInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = 12
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Picker exposes the underlying state machine.
func (dp *DatePicker) Picker() *picker.Picker { return dp.picker }

// Value returns the committed value.
func (dp *DatePicker) Value() picker.Value { return dp.picker.Value() }

// Text returns what the input for slot currently shows.
func (dp *DatePicker) Text(slot picker.Slot) string { return dp.inputs[dp.key(slot)].Value() }

// Slot returns the slot whose input has the keyboard.
func (dp *DatePicker) Slot() picker.Slot { return dp.slot }

func (dp *DatePicker) IsFocused() bool { return dp.focused }

// IsOpen reports whether the calendar grid is shown.
func (dp *DatePicker) IsOpen() bool { return dp.picker.IsOpen() }

// InGrid reports whether arrow keys move the grid cursor.
func (dp *DatePicker) InGrid() bool { return dp.zone == zoneGrid && dp.picker.IsOpen() }

// SetWidth sets the width of the date picker
func (dp *DatePicker) SetWidth(width int) {
	dp.width = width
}

// SetRTL mirrors the grid and right-aligns the inputs.
func (dp *DatePicker) SetRTL(rtl bool) {
	dp.rtl = rtl
}

// Configure applies cfg to the picker. A mode change resets the inputs.
func (dp *DatePicker) Configure(cfg picker.Config) (tea.Cmd, error) {
	prev := dp.picker.Config().Mode
	if err := dp.picker.Configure(cfg); err != nil {
		return nil, err
	}

	var cmd tea.Cmd
	if cfg.Mode != prev {
		for i := range dp.inputs {
			dp.inputs[i].Blur()
		}
		dp.reset()
		if dp.focused {
			cmd = dp.inputs[dp.slot].Focus()
		}
	} else {
		dp.setPlaceholders()
		dp.sync()
	}
	return tea.Batch(cmd, dp.flush()), nil
}

// SetValue writes a host value without producing a DateChangedMsg.
func (dp *DatePicker) SetValue(v picker.Value) {
	dp.picker.Write(v)
	dp.sync()
}

// Focus gives the keyboard to the active input and opens the grid.
func (dp *DatePicker) Focus() tea.Cmd {
	dp.focused = true
	dp.zone = zoneInput
	cmd := dp.inputs[dp.slot].Focus()
	dp.picker.Focus(dp.slot)
	dp.resetCursor()
	return tea.Batch(cmd, dp.flush())
}

// Blur corrects the active input and closes the grid.
func (dp *DatePicker) Blur() tea.Cmd {
	if !dp.focused {
		return nil
	}
	dp.focused = false
	dp.zone = zoneInput
	dp.inputs[dp.slot].Blur()
	dp.picker.Blur(dp.slot)
	dp.picker.Dismiss()
	dp.sync()
	return dp.flush()
}

// ConsumesTab reports whether tab (or shift+tab) moves between the range
// inputs rather than leaving the picker.
func (dp *DatePicker) ConsumesTab(shift bool) bool {
	if !dp.focused || !dp.picker.Config().Mode.IsRange() {
		return false
	}
	if shift {
		return dp.slot == picker.SlotEnd
	}
	return dp.slot == picker.SlotStart
}

// Update handles Bubble Tea messages
func (dp *DatePicker) Update(msg tea.Msg) (*DatePicker, tea.Cmd) {
	if !dp.focused {
		return dp, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		dp.inputs[dp.slot], cmd = dp.inputs[dp.slot].Update(msg)
		return dp, cmd
	}
	if dp.InGrid() {
		return dp, dp.updateGrid(keyMsg)
	}
	return dp, dp.updateInput(keyMsg)
}

func (dp *DatePicker) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		dp.picker.CommitText(dp.slot, dp.inputs[dp.slot].Value())
		dp.picker.Dismiss()
		dp.sync()
		return dp.flush()
	case "esc":
		dp.picker.Dismiss()
		return dp.flush()
	case "down":
		if !dp.picker.IsOpen() {
			dp.picker.Focus(dp.slot)
		}
		dp.resetCursor()
		dp.zone = zoneGrid
		return dp.flush()
	case "tab":
		if dp.ConsumesTab(false) {
			return dp.switchSlot(picker.SlotEnd)
		}
		return nil
	case "shift+tab":
		if dp.ConsumesTab(true) {
			return dp.switchSlot(picker.SlotStart)
		}
		return nil
	}

	before := dp.inputs[dp.slot].Value()
	var cmd tea.Cmd
	dp.inputs[dp.slot], cmd = dp.inputs[dp.slot].Update(msg)
	if after := dp.inputs[dp.slot].Value(); after != before {
		dp.picker.EditText(dp.slot, after)
		dp.syncExcept(dp.slot)
	}
	return tea.Batch(cmd, dp.flush())
}

func (dp *DatePicker) switchSlot(next picker.Slot) tea.Cmd {
	dp.inputs[dp.slot].Blur()
	dp.picker.Blur(dp.slot)
	dp.slot = next
	cmd := dp.inputs[dp.slot].Focus()
	dp.picker.Focus(next)
	dp.sync()
	dp.resetCursor()
	return tea.Batch(cmd, dp.flush())
}

func (dp *DatePicker) updateGrid(msg tea.KeyMsg) tea.Cmd {
	step := 1
	if dp.rtl {
		step = -1
	}

	switch msg.String() {
	case "esc":
		dp.picker.Dismiss()
		dp.zone = zoneInput
		return dp.flush()
	case "left", "h":
		dp.move(-step)
	case "right", "l":
		dp.move(step)
	case "up", "k":
		dp.moveRow(-1)
	case "down", "j":
		dp.moveRow(1)
	case "pgup", "[":
		dp.page(-1)
	case "pgdown", "]":
		dp.page(1)
	case "t":
		dp.cursor = dp.picker.Clamp(dp.picker.Adapter().Today())
	case "m":
		if dp.baseView() <= viewMonths {
			dp.view = viewMonths
		}
	case "y":
		dp.view = viewYears
	case "enter", " ":
		return dp.choose()
	}
	return nil
}

func (dp *DatePicker) move(n int) {
	a := dp.picker.Adapter()
	switch dp.view {
	case viewDays:
		dp.cursor = dp.cursor.AddDays(n)
	case viewMonths:
		dp.cursor = a.AddMonths(dp.cursor, n)
	case viewYears:
		dp.cursor = a.AddYears(dp.cursor, n)
	}
}

func (dp *DatePicker) moveRow(n int) {
	a := dp.picker.Adapter()
	switch dp.view {
	case viewDays:
		dp.cursor = dp.cursor.AddDays(7 * n)
	case viewMonths:
		dp.cursor = a.AddMonths(dp.cursor, 3*n)
	case viewYears:
		dp.cursor = a.AddYears(dp.cursor, 4*n)
	}
}

func (dp *DatePicker) page(n int) {
	a := dp.picker.Adapter()
	switch dp.view {
	case viewDays:
		dp.cursor = a.AddMonths(dp.cursor, n)
	case viewMonths:
		dp.cursor = a.AddYears(dp.cursor, n)
	case viewYears:
		dp.cursor = a.AddYears(dp.cursor, 12*n)
	}
}

// choose drills down one view, or picks the cursor when the view is the
// granularity of the mode.
func (dp *DatePicker) choose() tea.Cmd {
	if dp.view > dp.baseView() {
		dp.view--
		return nil
	}

	a := dp.picker.Adapter()
	y, m, _ := a.Split(dp.cursor)
	d := dp.cursor
	switch dp.view {
	case viewMonths:
		d, _ = a.Make(y, m, 1)
	case viewYears:
		d, _ = a.Make(y, 1, 1)
	}

	dp.picker.Pick(d)
	dp.sync()
	if !dp.picker.IsOpen() {
		dp.zone = zoneInput
	}
	return dp.flush()
}

func (dp *DatePicker) baseView() gridView {
	switch dp.picker.Config().Mode {
	case picker.ModeYear:
		return viewYears
	case picker.ModeMonth:
		return viewMonths
	default:
		return viewDays
	}
}

// key maps slot to the input used in the current mode.
func (dp *DatePicker) key(slot picker.Slot) picker.Slot {
	if !dp.picker.Config().Mode.IsRange() {
		return picker.SlotNone
	}
	if slot == picker.SlotNone {
		return picker.SlotStart
	}
	return slot
}

func (dp *DatePicker) slots() []picker.Slot {
	if dp.picker.Config().Mode.IsRange() {
		return []picker.Slot{picker.SlotStart, picker.SlotEnd}
	}
	return []picker.Slot{picker.SlotNone}
}

func (dp *DatePicker) reset() {
	dp.slot = dp.key(picker.SlotNone)
	dp.zone = zoneInput
	dp.view = dp.baseView()
	dp.setPlaceholders()
	dp.sync()
}

func (dp *DatePicker) setPlaceholders() {
	layout := dp.picker.Config().Layout()
	for i := range dp.inputs {
		dp.inputs[i].Placeholder = layout
	}
}

func (dp *DatePicker) sync() {
	dp.syncExcept(picker.Slot(-1))
}

// syncExcept copies the picker's texts into the inputs, leaving skip alone so
// the user's cursor position survives.
func (dp *DatePicker) syncExcept(skip picker.Slot) {
	for _, s := range dp.slots() {
		if s == skip {
			continue
		}
		if text := dp.picker.Text(s); dp.inputs[s].Value() != text {
			dp.inputs[s].SetValue(text)
		}
	}
}

func (dp *DatePicker) resetCursor() {
	st := dp.picker.State()
	d := st.Single
	if dp.picker.Config().Mode.IsRange() {
		d = st.Start
		if dp.slot == picker.SlotEnd && !st.End.IsZero() {
			d = st.End
		}
	}
	if d.IsZero() {
		d = dp.picker.Clamp(dp.picker.Adapter().Today())
	}
	dp.cursor = d
	dp.view = dp.baseView()
}

// flush turns the listener calls collected during a transition into
// commands, preserving their order.
func (dp *DatePicker) flush() tea.Cmd {
	if len(dp.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(dp.pending))
	for _, msg := range dp.pending {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	dp.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// View renders the date picker
func (dp *DatePicker) View() string {
	var b strings.Builder

	b.WriteString(datePickerTitleStyle.Render(dp.title))
	b.WriteString("\n")
	b.WriteString(dp.inputsView())
	b.WriteString("\n")

	if dp.picker.IsOpen() {
		b.WriteString("\n")
		b.WriteString(dp.gridView())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(datePickerHelpStyle.Render(dp.help()))

	content := b.String()
	if dp.rtl {
		content = lipgloss.NewStyle().Width(dp.width).Align(lipgloss.Right).Render(content)
	}

	style := datePickerBoxStyle
	if dp.focused {
		style = datePickerFocusedBoxStyle
	}
	return style.Render(content)
}

func (dp *DatePicker) inputsView() string {
	if !dp.picker.Config().Mode.IsRange() {
		return datePickerLabelStyle.Render("Date: ") + dp.inputs[picker.SlotNone].View()
	}
	parts := []string{
		datePickerLabelStyle.Render("From: ") + dp.inputs[picker.SlotStart].View(),
		datePickerLabelStyle.Render("To: ") + dp.inputs[picker.SlotEnd].View(),
	}
	if dp.rtl {
		parts[0], parts[1] = parts[1], parts[0]
	}
	return strings.Join(parts, "  ")
}

func (dp *DatePicker) help() string {
	switch {
	case dp.InGrid():
		return "←/→/↑/↓: move  [/]: page  m/y: months/years  t: today  enter: pick  esc: close"
	case dp.picker.Config().Mode.IsRange():
		return "enter: commit  ↓: calendar  tab: start/end  esc: close"
	default:
		return "enter: commit  ↓: calendar  esc: close"
	}
}

func (dp *DatePicker) gridView() string {
	switch dp.view {
	case viewMonths:
		return dp.monthsView()
	case viewYears:
		return dp.yearsView()
	default:
		return dp.daysView()
	}
}

func (dp *DatePicker) row(cells []string) string {
	if dp.rtl {
		rev := make([]string, len(cells))
		for i, c := range cells {
			rev[len(cells)-1-i] = c
		}
		cells = rev
	}
	return strings.Join(cells, " ")
}

func (dp *DatePicker) daysView() string {
	a := dp.picker.Adapter()
	y, m, _ := a.Split(dp.cursor)
	first, _ := a.Make(y, m, 1)
	fw := int(a.FirstWeekday())

	rows := []string{datePickerHeaderStyle.Render(fmt.Sprintf("%s %d", a.MonthName(m), y))}

	header := make([]string, 7)
	for i := range header {
		header[i] = datePickerWeekdayStyle.Render(weekdayAbbr[(fw+i)%7])
	}
	rows = append(rows, dp.row(header))

	var cells []string
	for i := 0; i < (int(first.Weekday())-fw+7)%7; i++ {
		cells = append(cells, "  ")
	}
	for day := 1; day <= a.DaysInMonth(y, m); day++ {
		d := first.AddDays(day - 1)
		cells = append(cells, dp.dayStyle(d).Render(fmt.Sprintf("%2d", day)))
		if len(cells) == 7 {
			rows = append(rows, dp.row(cells))
			cells = nil
		}
	}
	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, "  ")
		}
		rows = append(rows, dp.row(cells))
	}
	return strings.Join(rows, "\n")
}

func (dp *DatePicker) dayStyle(d calendar.Date) lipgloss.Style {
	cfg := dp.picker.Config()
	st := dp.picker.State()
	switch {
	case d.Equal(dp.cursor) && dp.InGrid():
		return datePickerCursorStyle
	case d.Equal(st.Single) || d.Equal(st.Start) || d.Equal(st.End):
		return datePickerSelectedStyle
	case !st.Start.IsZero() && !st.End.IsZero() && d.After(st.Start) && d.Before(st.End):
		return datePickerInRangeStyle
	case (!cfg.MinDate.IsZero() && d.Before(cfg.MinDate)) || (!cfg.MaxDate.IsZero() && d.After(cfg.MaxDate)):
		return datePickerDisabledStyle
	case d.Equal(dp.picker.Adapter().Today()):
		return datePickerTodayStyle
	default:
		return lipgloss.NewStyle()
	}
}

func (dp *DatePicker) monthsView() string {
	a := dp.picker.Adapter()
	y, cm, _ := a.Split(dp.cursor)
	sy, sm := -1, -1
	if d := dp.selected(); !d.IsZero() {
		sy, sm, _ = a.Split(d)
	}

	rows := []string{datePickerHeaderStyle.Render(fmt.Sprintf("%d", y))}
	var cells []string
	for m := 1; m <= 12; m++ {
		style := lipgloss.NewStyle()
		switch {
		case m == cm && dp.InGrid():
			style = datePickerCursorStyle
		case y == sy && m == sm:
			style = datePickerSelectedStyle
		}
		cells = append(cells, style.Render(fmt.Sprintf("%-11s", a.MonthName(m))))
		if len(cells) == 3 {
			rows = append(rows, dp.row(cells))
			cells = nil
		}
	}
	return strings.Join(rows, "\n")
}

func (dp *DatePicker) yearsView() string {
	a := dp.picker.Adapter()
	cy, _, _ := a.Split(dp.cursor)
	sy := -1
	if d := dp.selected(); !d.IsZero() {
		sy, _, _ = a.Split(d)
	}

	start := cy - (cy-1)%12
	rows := []string{datePickerHeaderStyle.Render(fmt.Sprintf("%d – %d", start, start+11))}
	var cells []string
	for y := start; y < start+12; y++ {
		style := lipgloss.NewStyle()
		switch {
		case y == cy && dp.InGrid():
			style = datePickerCursorStyle
		case y == sy:
			style = datePickerSelectedStyle
		}
		cells = append(cells, style.Render(fmt.Sprintf("%4d", y)))
		if len(cells) == 4 {
			rows = append(rows, dp.row(cells))
			cells = nil
		}
	}
	return strings.Join(rows, "\n")
}

func (dp *DatePicker) selected() calendar.Date {
	st := dp.picker.State()
	if dp.picker.Config().Mode.IsRange() {
		return st.Start
	}
	return st.Single
}
