package render

// RenderOptions carry per-request data renderers use to fill in a form
// without touching its descriptors.
type RenderOptions struct {
	// Action and Method land on the HTML form element. Method defaults to POST.
	Action string
	Method string
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
	// Values pre-populates controls by field name. List fields take a slice.
	// Absent names fall back to the field default.
	Values map[string]any
	// Errors are per-field messages, usually ErrorsFromResult(...).Fields.
	Errors map[string][]string
	// FormErrors are messages not tied to a known field.
	FormErrors []string
	// Hidden inputs emitted ahead of the visible fields.
	Hidden map[string]string
}

// FieldErrors returns the messages recorded for name.
func (o RenderOptions) FieldErrors(name string) []string {
	if len(o.Errors) == 0 {
		return nil
	}
	return o.Errors[name]
}

// Value returns the pre-populated value for name, if any.
func (o RenderOptions) Value(name string) (any, bool) {
	if len(o.Values) == 0 {
		return nil, false
	}
	v, ok := o.Values[name]
	return v, ok
}
