package tui

// State tracks collected values and server-provided errors keyed by field
// name.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for name, value := range prefill {
		s.values[name] = value
	}
	for name, messages := range errs {
		s.errors[name] = append([]string(nil), messages...)
	}
	return s
}

// Values returns the collected values.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// Value returns the current value of a field.
func (s *State) Value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Set records a validated value and clears the field's errors. A nil value
// marks the field absent.
func (s *State) Set(name string, value any) {
	s.values[name] = value
	delete(s.errors, name)
}
