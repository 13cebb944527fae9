// Package picker holds the selection state of a date picker and the state
// machine that reconciles typed text, popup picks and host writes into it.
//
// Every transition runs to completion synchronously. A Picker is owned by one
// widget and is not safe for concurrent use; the calendar adapters it uses
// are.
package picker

import (
	"fmt"
	"log/slog"

	"github.com/MikeBiancalana/qeydar/internal/calendar"
)

// Picker is the selection state machine.
type Picker struct {
	cfg      Config
	selector *calendar.Selector
	state    State
	text     map[Slot]string
	open     bool
	emitter  Emitter
	logger   *slog.Logger

	onChange func(Value)
	onFocus  func(FocusEvent)
	onBlur   func(BlurEvent)
}

// Option configures a Picker.
type Option func(*pickerOptions)

type pickerOptions struct {
	registry calendar.Registry
	logger   *slog.Logger
	onChange func(Value)
	onFocus  func(FocusEvent)
	onBlur   func(BlurEvent)
}

// WithRegistry sets the adapters the picker can switch between.
func WithRegistry(r calendar.Registry) Option {
	return func(o *pickerOptions) { o.registry = r }
}

// WithLogger sets the logger transitions are traced to.
func WithLogger(l *slog.Logger) Option {
	return func(o *pickerOptions) { o.logger = l }
}

// OnChange registers the committed-value listener.
func OnChange(fn func(Value)) Option {
	return func(o *pickerOptions) { o.onChange = fn }
}

// OnFocus registers the focus listener.
func OnFocus(fn func(FocusEvent)) Option {
	return func(o *pickerOptions) { o.onFocus = fn }
}

// OnBlur registers the blur listener.
func OnBlur(fn func(BlurEvent)) Option {
	return func(o *pickerOptions) { o.onBlur = fn }
}

// New creates an empty picker.
func New(cfg Config, opts ...Option) (*Picker, error) {
	o := pickerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Format == "" {
		cfg.Format = calendar.LayoutDay
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sel, err := calendar.NewSelector(o.registry, cfg.Calendar)
	if err != nil {
		return nil, fmt.Errorf("failed to select calendar: %w", err)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Picker{
		cfg:      cfg,
		selector: sel,
		text:     make(map[Slot]string),
		logger:   logger,
		onChange: o.onChange,
		onFocus:  o.onFocus,
		onBlur:   o.onBlur,
	}, nil
}

// Config returns the current configuration.
func (p *Picker) Config() Config { return p.cfg }

// State returns a copy of the committed selection.
func (p *Picker) State() State { return p.state }

// Adapter returns the active calendar adapter.
func (p *Picker) Adapter() calendar.Adapter { return p.selector.Adapter() }

// IsOpen reports whether the popup is open.
func (p *Picker) IsOpen() bool { return p.open }

// Text returns the text shown in slot's input.
func (p *Picker) Text(slot Slot) string {
	return p.text[p.resolve(slot)]
}

// LastValue returns the last value handed to, or received from, the host.
func (p *Picker) LastValue() (Value, bool) { return p.emitter.Last() }

// Stats returns notification counters.
func (p *Picker) Stats() (emitted, suppressed int64) { return p.emitter.Stats() }

// Value computes the externally visible value of the current selection. It is
// zero until a single date, or both range endpoints, are set.
func (p *Picker) Value() Value {
	a, layout := p.Adapter(), p.cfg.Layout()
	if p.cfg.Mode.IsRange() {
		if p.state.Start.IsZero() || p.state.End.IsZero() {
			return Value{}
		}
		return RangeValue(a.Format(p.state.Start, layout), a.Format(p.state.End, layout))
	}
	if p.state.Single.IsZero() {
		return Value{}
	}
	return SingleValue(a.Format(p.state.Single, layout))
}

// Configure replaces the configuration. A calendar or format change
// re-renders every input from its stored date and tells the host about the
// reformatted value. A mode change clears the selection. Bounds apply from the
// next transition on.
func (p *Picker) Configure(cfg Config) error {
	if cfg.Format == "" {
		cfg.Format = calendar.LayoutDay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := p.cfg
	if _, err := p.selector.Select(cfg.Calendar); err != nil {
		return fmt.Errorf("failed to select calendar: %w", err)
	}
	p.cfg = cfg

	if cfg.Mode != prev.Mode {
		p.state = State{}
		p.text = make(map[Slot]string)
		p.open = false
		p.emitter.Forget()
	}
	if cfg.Mode == prev.Mode && (cfg.Calendar != prev.Calendar || cfg.Format != prev.Format) {
		p.renderAll()
		p.emit(Interactive)
	}
	p.logger.Debug("picker: configured",
		"mode", cfg.Mode, "calendar", cfg.Calendar, "format", cfg.Format,
		"min", cfg.MinDate, "max", cfg.MaxDate)
	return nil
}

// Dispatch runs one event through the state machine.
func (p *Picker) Dispatch(ev Event) {
	p.logger.Debug("picker: event", "event", ev.eventName(), "mode", p.cfg.Mode)
	switch e := ev.(type) {
	case TextCommitted:
		p.commitText(e.Slot, e.Text, Interactive)
	case TextEdited:
		p.editText(e.Slot, e.Text)
	case PopupPicked:
		p.pick(e.Date)
	case PopupRangePicked:
		p.pickRange(e.Start, e.End)
	case ExternalWrite:
		p.write(e.Value)
	case FocusGained:
		p.focus(e.Slot)
	case FocusLost:
		p.blur(e.Slot)
	case Dismissed:
		p.open = false
	}
}

// CommitText is shorthand for Dispatch(TextCommitted{...}).
func (p *Picker) CommitText(slot Slot, text string) { p.Dispatch(TextCommitted{Slot: slot, Text: text}) }

// EditText is shorthand for Dispatch(TextEdited{...}).
func (p *Picker) EditText(slot Slot, text string) { p.Dispatch(TextEdited{Slot: slot, Text: text}) }

// Pick is shorthand for Dispatch(PopupPicked{...}).
func (p *Picker) Pick(d calendar.Date) { p.Dispatch(PopupPicked{Date: d}) }

// PickRange is shorthand for Dispatch(PopupRangePicked{...}).
func (p *Picker) PickRange(start, end calendar.Date) {
	p.Dispatch(PopupRangePicked{Start: start, End: end})
}

// Write is shorthand for Dispatch(ExternalWrite{...}).
func (p *Picker) Write(v Value) { p.Dispatch(ExternalWrite{Value: v}) }

// Focus is shorthand for Dispatch(FocusGained{...}).
func (p *Picker) Focus(slot Slot) { p.Dispatch(FocusGained{Slot: slot}) }

// Blur is shorthand for Dispatch(FocusLost{...}).
func (p *Picker) Blur(slot Slot) { p.Dispatch(FocusLost{Slot: slot}) }

// Dismiss is shorthand for Dispatch(Dismissed{}).
func (p *Picker) Dismiss() { p.Dispatch(Dismissed{}) }

// Clamp forces d into [MinDate, MaxDate].
func (p *Picker) Clamp(d calendar.Date) calendar.Date {
	a := p.Adapter()
	if !p.cfg.MinDate.IsZero() && a.IsBefore(d, p.cfg.MinDate) {
		return p.cfg.MinDate
	}
	if !p.cfg.MaxDate.IsZero() && a.IsAfter(d, p.cfg.MaxDate) {
		return p.cfg.MaxDate
	}
	return d
}

// Correct turns free text into a committed date. Text that does not parse is
// replaced by today, or by MinDate when today is earlier. The result is
// always clamped.
func (p *Picker) Correct(text string) calendar.Date {
	return p.correct(text, p.cfg.MinDate)
}

// correct is Correct with the fallback raised to floor.
func (p *Picker) correct(text string, floor calendar.Date) calendar.Date {
	a := p.Adapter()
	if d, ok := a.Parse(text, p.cfg.Layout()); ok {
		return p.Clamp(d)
	}
	d := a.Today()
	if !floor.IsZero() {
		d = a.Max(d, floor)
	}
	return p.Clamp(d)
}

// resolve maps slot to the key used for the current mode.
func (p *Picker) resolve(slot Slot) Slot {
	if !p.cfg.Mode.IsRange() {
		return SlotNone
	}
	if slot == SlotNone {
		if p.state.Active != SlotNone {
			return p.state.Active
		}
		return SlotStart
	}
	return slot
}

// commitText returns the corrected date. An end that does not parse falls
// back to no earlier than the start, so it never restarts the range.
func (p *Picker) commitText(slot Slot, text string, origin Origin) calendar.Date {
	slot = p.resolve(slot)
	floor := p.cfg.MinDate
	if slot == SlotEnd && !p.state.Start.IsZero() {
		floor = p.Adapter().Max(floor, p.state.Start)
	}
	d := p.correct(text, floor)
	if p.cfg.Mode.IsRange() {
		p.assignRange(slot, d)
	} else {
		p.state.Single = d
	}
	p.renderAll()
	p.emit(origin)
	return d
}

func (p *Picker) editText(slot Slot, text string) {
	slot = p.resolve(slot)
	p.text[slot] = text
	d, ok := p.Adapter().Parse(text, p.cfg.Layout())
	if !ok {
		return
	}
	d = p.Clamp(d)
	if p.cfg.Mode.IsRange() {
		// An inverted pair waits for the blur to be resolved.
		if p.inverts(slot, d) {
			return
		}
		p.assignRange(slot, d)
	} else {
		p.state.Single = d
	}
	p.renderExcept(slot)
	p.emit(Interactive)
}

func (p *Picker) inverts(slot Slot, d calendar.Date) bool {
	a := p.Adapter()
	switch slot {
	case SlotEnd:
		return !p.state.Start.IsZero() && a.IsBefore(d, p.state.Start)
	default:
		return !p.state.End.IsZero() && a.IsAfter(d, p.state.End)
	}
}

// pick implements the two-click range protocol. A new range starts when no
// start is set, when both ends are already set, or when d is before the
// start. Otherwise d closes the range.
func (p *Picker) pick(d calendar.Date) {
	if d.IsZero() {
		return
	}
	a := p.Adapter()
	d = p.Clamp(d)

	if !p.cfg.Mode.IsRange() {
		p.state.Single = d
		p.renderAll()
		p.emit(Interactive)
		p.open = false
		return
	}

	start, end := p.state.Start, p.state.End
	if start.IsZero() || (!start.IsZero() && !end.IsZero()) || a.IsBefore(d, start) {
		p.state.Start = d
		p.state.End = calendar.Date{}
		p.state.Active = SlotEnd
		p.renderAll()
		return
	}
	p.state.End = d
	p.renderAll()
	p.emit(Interactive)
	p.open = false
}

// pickRange commits both ends at once. An inverted pair is treated like two
// picks where the second lands before the first: it starts a new range.
func (p *Picker) pickRange(start, end calendar.Date) {
	if start.IsZero() || end.IsZero() {
		return
	}
	start, end = p.Clamp(start), p.Clamp(end)
	if p.Adapter().IsBefore(end, start) {
		p.state.Start = end
		p.state.End = calendar.Date{}
		p.state.Active = SlotEnd
		p.renderAll()
		return
	}
	p.state.Start, p.state.End = start, end
	p.renderAll()
	p.emit(Interactive)
	p.open = false
}

// write applies a host value. Unparseable parts clear their slot and leave
// the raw text in place; nothing is ever notified.
func (p *Picker) write(v Value) {
	if v.IsZero() {
		p.state = State{Active: p.state.Active}
		p.text = make(map[Slot]string)
		p.emitter.Forget()
		return
	}

	a, layout := p.Adapter(), p.cfg.Layout()
	parse := func(text string) (calendar.Date, bool) {
		d, ok := a.Parse(text, layout)
		if !ok {
			return calendar.Date{}, false
		}
		return p.Clamp(d), true
	}

	if p.cfg.Mode.IsRange() {
		p.state.Start, p.state.End = calendar.Date{}, calendar.Date{}
		start, okStart := parse(v.Start)
		end, okEnd := parse(v.End)
		if okStart {
			p.assignRange(SlotStart, start)
		}
		if okEnd {
			p.assignRange(SlotEnd, end)
		}
		p.renderAll()
		if !okStart {
			p.text[SlotStart] = v.Start
		}
		if !okEnd && p.state.End.IsZero() {
			p.text[SlotEnd] = v.End
		}
	} else {
		d, ok := parse(v.Date)
		p.state.Single = d
		p.renderAll()
		if !ok {
			p.text[SlotNone] = v.Date
		}
	}
	p.emit(Programmatic)
}

func (p *Picker) focus(slot Slot) {
	slot = p.resolve(slot)
	p.open = true
	p.state.Active = slot
	if p.onFocus != nil {
		p.onFocus(FocusEvent{Slot: slot})
	}
}

func (p *Picker) blur(slot Slot) {
	slot = p.resolve(slot)
	d := p.commitText(slot, p.text[slot], Interactive)
	if p.onBlur != nil {
		p.onBlur(BlurEvent{Slot: slot, Value: p.Adapter().Format(d, p.cfg.Layout())})
	}
}

// assignRange writes d into one range endpoint, starting a new range when the
// result would be inverted.
func (p *Picker) assignRange(slot Slot, d calendar.Date) {
	a := p.Adapter()
	switch slot {
	case SlotEnd:
		if !p.state.Start.IsZero() && a.IsBefore(d, p.state.Start) {
			p.state.Start = d
			p.state.End = calendar.Date{}
			return
		}
		p.state.End = d
	default:
		p.state.Start = d
		if !p.state.End.IsZero() && a.IsAfter(d, p.state.End) {
			p.state.End = calendar.Date{}
		}
	}
}

func (p *Picker) renderAll() {
	p.renderExcept(Slot(-1))
}

func (p *Picker) renderExcept(skip Slot) {
	a, layout := p.Adapter(), p.cfg.Layout()
	set := func(slot Slot, d calendar.Date) {
		if slot != skip {
			p.text[slot] = a.Format(d, layout)
		}
	}
	if p.cfg.Mode.IsRange() {
		set(SlotStart, p.state.Start)
		set(SlotEnd, p.state.End)
		return
	}
	set(SlotNone, p.state.Single)
}

func (p *Picker) emit(origin Origin) {
	v := p.Value()
	if !p.emitter.Offer(v, origin) {
		return
	}
	p.logger.Debug("picker: emit", "value", v.String(), "origin", origin)
	if p.onChange != nil {
		p.onChange(v)
	}
}
