package calendar

// Selector tracks the active calendar system and hands out its adapter. It is
// owned by a single widget and is not safe for concurrent use.
type Selector struct {
	registry Registry
	system   System
	adapter  Adapter
}

// NewSelector returns a Selector pointing at system. A nil registry means
// DefaultRegistry().
func NewSelector(registry Registry, system System) (*Selector, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	a, err := registry.Lookup(system)
	if err != nil {
		return nil, err
	}
	return &Selector{registry: registry, system: system, adapter: a}, nil
}

// Adapter returns the adapter of the active system.
func (s *Selector) Adapter() Adapter {
	return s.adapter
}

// System returns the active system.
func (s *Selector) System() System {
	return s.system
}

// Select switches to system and reports whether the active adapter changed.
// On error the previous adapter stays active.
func (s *Selector) Select(system System) (bool, error) {
	if system == s.system {
		return false, nil
	}
	a, err := s.registry.Lookup(system)
	if err != nil {
		return false, err
	}
	s.system = system
	s.adapter = a
	return true, nil
}

// Reformat renders text, written with the previous adapter, in the active
// one. It goes through the Date so the conversion happens once.
func Reformat(from, to Adapter, text, layout string) (string, bool) {
	d, ok := from.Parse(text, layout)
	if !ok {
		return "", false
	}
	return to.Format(d, layout), true
}
