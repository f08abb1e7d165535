package model

import (
	"errors"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// validateSlider requires a numeric kind and both a lower and an upper bound.
func validateSlider(d FieldDescriptor) error {
	if !d.IsSlider() {
		return nil
	}
	if !d.Kind.Numeric() {
		return crossError(d.Name, CodeSliderWrongType, "slider requires an int or float field, got %s", d.Kind)
	}
	c := d.Constraints
	if c == nil || (c.Ge == nil && c.Gt == nil) || (c.Le == nil && c.Lt == nil) {
		return crossError(d.Name, CodeSliderMissingBounds, "slider requires both a lower (ge/gt) and an upper (le/lt) bound")
	}
	return nil
}

// normalizeDefault type-checks the declared default against the finished
// descriptor and returns its canonical form. Enum members become their
// values and an empty list default becomes no default.
func normalizeDefault(d FieldDescriptor, def any) (any, error) {
	if isNil(def) {
		return nil, nil
	}
	def = deref(def)

	if d.List == nil {
		return normalizeDefaultItem(d, def)
	}

	items, ok := asSequence(def)
	if !ok {
		return nil, crossError(d.Name, CodeTypeMismatch, "default for a list field must be a list, got %T", def)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if err := checkListLength(d, len(items)); err != nil {
		return nil, defaultViolation(d, err)
	}
	out := make([]any, len(items))
	for i, item := range items {
		v, err := normalizeDefaultItem(d, item)
		if err != nil {
			return nil, atIndex(err, i)
		}
		out[i] = v
	}
	return out, nil
}

func normalizeDefaultItem(d FieldDescriptor, v any) (any, error) {
	switch m := v.(type) {
	case schema.EnumMember:
		v = m.Value
	case *schema.EnumMember:
		if m != nil {
			v = m.Value
		}
	}
	if t, ok := timeValue(v); ok {
		switch d.Kind {
		case KindDate:
			v = schema.DateOf(t)
		case KindTime:
			v = schema.TimeOf(t)
		}
	}

	native, kind, ok := nativeScalar(v)
	if !ok || kind != d.Kind {
		e := crossError(d.Name, CodeTypeMismatch, "default %s (%T) does not match field type %s", formatValue(v), v, d.Kind)
		e.Value = v
		return nil, e
	}

	if d.Choices != nil && d.Choices.Source != SourceProvider && !d.Choices.Contains(native) {
		e := crossError(d.Name, CodeDefaultNotInOptions, "default %s is not one of %s", formatValue(native), formatOptions(d.Choices.Options))
		e.Value = native
		return nil, e
	}

	if err := checkConstraints(d, native); err != nil {
		return nil, defaultViolation(d, err)
	}
	return native, nil
}

func defaultViolation(d FieldDescriptor, cause error) *Error {
	e := crossError(d.Name, CodeDefaultViolatesConstraint, "default violates constraints: %v", cause)
	var typed *Error
	if errors.As(cause, &typed) {
		e.Message = "default " + typed.Message
		e.Bound = typed.Bound
		e.Value = typed.Value
	}
	e.Err = cause
	return e
}
