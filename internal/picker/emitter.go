package picker

import "github.com/MikeBiancalana/qeydar/internal/perf"

// Emitter remembers the last value handed to the host and decides whether a
// new value is worth a notification.
type Emitter struct {
	last       Value
	has        bool
	emitted    perf.Counter
	suppressed perf.Counter
}

// Offer records v and reports whether listeners must be told about it.
// Programmatic values are remembered but never notified. The record is updated
// before Offer returns, so a listener that re-enters the picker with the same
// value is suppressed.
func (e *Emitter) Offer(v Value, origin Origin) bool {
	if v.IsZero() {
		if origin == Programmatic {
			e.Forget()
		}
		return false
	}
	if origin == Programmatic {
		e.last, e.has = v, true
		return false
	}
	if e.has && e.last == v {
		e.suppressed.Inc()
		return false
	}
	e.last, e.has = v, true
	e.emitted.Inc()
	return true
}

// Last returns the last remembered value.
func (e *Emitter) Last() (Value, bool) {
	return e.last, e.has
}

// Forget drops the remembered value.
func (e *Emitter) Forget() {
	e.last, e.has = Value{}, false
}

// Stats returns how many values were notified and how many were suppressed as
// duplicates.
func (e *Emitter) Stats() (emitted, suppressed int64) {
	return e.emitted.Value(), e.suppressed.Value()
}
