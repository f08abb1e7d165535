package model

import (
	"errors"
	"strings"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// Validate coerces raw into the native representation described by d and
// checks it against the descriptor's choices and constraints. A nil result
// with a nil error means an absent optional value. d is never modified.
func Validate(d FieldDescriptor, raw any) (any, error) {
	if isNil(raw) {
		if d.Optional != nil {
			return nil, nil
		}
		return nil, coercionError(d.Name, CodeRequiredFieldMissing, "a value is required")
	}
	raw = deref(raw)

	if s, ok := raw.(string); ok && d.Kind == KindString && d.List == nil && strings.TrimSpace(s) == "" {
		return nil, coercionError(d.Name, CodeEmptyStringNotAllowed, "empty string is not allowed")
	}

	if d.List == nil {
		return validateItem(d, raw)
	}

	items, ok := asSequence(raw)
	if !ok {
		e := coercionError(d.Name, CodeNotASequence, "expected a list, got %T", raw)
		e.Value = raw
		return nil, e
	}
	if len(items) == 0 {
		return nil, coercionError(d.Name, CodeEmptySequenceNotAllowed, "list must not be empty")
	}
	if err := checkListLength(d, len(items)); err != nil {
		return nil, err
	}

	out := make([]any, len(items))
	for i, item := range items {
		v, err := validateItem(d, item)
		if err != nil {
			return nil, atIndex(err, i)
		}
		out[i] = v
	}
	return out, nil
}

func checkListLength(d FieldDescriptor, n int) *Error {
	if d.List == nil {
		return nil
	}
	if d.List.MinLength != nil && n < *d.List.MinLength {
		e := coercionError(d.Name, CodeListLengthViolation, "list must have at least %d items, got %d", *d.List.MinLength, n)
		e.Bound, e.Value = *d.List.MinLength, n
		return e
	}
	if d.List.MaxLength != nil && n > *d.List.MaxLength {
		e := coercionError(d.Name, CodeListLengthViolation, "list must have at most %d items, got %d", *d.List.MaxLength, n)
		e.Bound, e.Value = *d.List.MaxLength, n
		return e
	}
	return nil
}

// validateItem runs coercion, choice membership and constraint checks on a
// single scalar.
func validateItem(d FieldDescriptor, raw any) (any, error) {
	v, err := coerceChoice(d, raw)
	if err != nil {
		return nil, err
	}
	if err := checkConstraints(d, v); err != nil {
		return nil, err
	}
	return v, nil
}

func coerceChoice(d FieldDescriptor, raw any) (any, error) {
	c := d.Choices
	if c == nil {
		return coerceScalar(d.Name, d.Kind, raw)
	}

	if c.Source == SourceEnum {
		switch m := raw.(type) {
		case schema.EnumMember:
			raw = m.Value
		case *schema.EnumMember:
			if m != nil {
				raw = m.Value
			}
		}
	}

	v, err := coerceScalar(d.Name, d.Kind, raw)
	if c.Source == SourceProvider {
		return v, err
	}
	if err == nil && c.Contains(v) {
		return v, nil
	}

	if c.Source == SourceEnum {
		if name, ok := raw.(string); ok {
			if m, found := c.Enum.Member(name); found {
				if native, _, ok := nativeScalar(m.Value); ok {
					return native, nil
				}
			}
		}
	}

	if err != nil {
		return nil, err
	}
	e := choiceError(d.Name, CodeNotInOptions, "value %s is not one of %s", formatValue(v), formatOptions(c.Options))
	e.Value = v
	return nil, e
}

func formatOptions(options []any) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = formatValue(o)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func atIndex(err error, index int) error {
	var typed *Error
	if !errors.As(err, &typed) {
		return err
	}
	clone := *typed
	clone.Index = index
	return &clone
}
