package sheet

// openState is the single source of truth for the open flag. Whether the
// value is externally driven or internally defaulted, every change funnels
// through set, the one canonical setter, and is reported through one
// callback; the engine does not distinguish the two modes.
type openState struct {
	value    bool
	onChange func(open bool)
}

func newOpenState(initial bool, onChange func(bool)) *openState {
	return &openState{value: initial, onChange: onChange}
}

func (s *openState) get() bool { return s.value }

// set stores a new open value and reports it. A no-op when unchanged.
// Returns whether the value moved.
func (s *openState) set(open bool) bool {
	if open == s.value {
		return false
	}
	s.value = open
	if s.onChange != nil {
		s.onChange(open)
	}
	return true
}
