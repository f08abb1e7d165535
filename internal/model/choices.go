package model

import (
	"fmt"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// extractChoices resolves the option set of a field. A Dropdown fragment
// wins over an enum or literal base type. Enum and literal bases are
// replaced by the scalar kind of their values; their decoration is kept.
func extractChoices(field string, t schema.Type) (schema.Type, *ChoiceMeta, error) {
	var (
		dropdown *schema.Dropdown
		rest     []schema.Fragment
	)
	for _, frag := range t.Meta {
		if d, ok := frag.(schema.Dropdown); ok {
			dd := d
			dropdown = &dd
			continue
		}
		rest = append(rest, frag)
	}

	if dropdown != nil {
		t = t.WithMeta(rest)
		options, kind, err := invokeProvider(field, dropdown.Provider)
		if err != nil {
			return schema.Type{}, nil, err
		}
		if t.Shape != schema.ShapeScalar {
			return schema.Type{}, nil, choiceError(field, CodeProviderTypeMismatch,
				"dropdown options are %s but the declared type is %s", kind, t.Bare())
		}
		if t.Scalar == "" {
			t.Scalar = kind
		} else if t.Scalar != kind {
			return schema.Type{}, nil, choiceError(field, CodeProviderTypeMismatch,
				"dropdown options are %s but the declared type is %s", kind, t.Scalar)
		}
		return t, &ChoiceMeta{Source: SourceProvider, Provider: dropdown.Provider, Options: options}, nil
	}

	switch t.Shape {
	case schema.ShapeEnum:
		if t.Enum == nil || len(t.Enum.Members) == 0 {
			return schema.Type{}, nil, choiceError(field, CodeEmptyEnum, "enum %s has no members", t.Name)
		}
		values := make([]any, len(t.Enum.Members))
		for i, m := range t.Enum.Members {
			values[i] = m.Value
		}
		options, kind, err := homogeneous(values)
		if err != nil {
			return schema.Type{}, nil, choiceError(field, CodeMixedEnumValueTypes, "enum %s: %v", t.Name, err)
		}
		base := schema.Scalar(kind).WithMeta(t.Meta)
		return base, &ChoiceMeta{Source: SourceEnum, Enum: t.Enum, Options: options}, nil
	case schema.ShapeLiteral:
		if len(t.Literals) == 0 {
			return schema.Type{}, nil, choiceError(field, CodeEmptyLiteral, "literal requires at least one value")
		}
		options, kind, err := homogeneous(t.Literals)
		if err != nil {
			return schema.Type{}, nil, choiceError(field, CodeMixedLiteralTypes, "literal %s: %v", t.Bare(), err)
		}
		base := schema.Scalar(kind).WithMeta(t.Meta)
		return base, &ChoiceMeta{Source: SourceLiteral, Options: options}, nil
	}
	return t, nil, nil
}

// homogeneous normalizes values and checks they share one scalar kind.
func homogeneous(values []any) ([]any, ScalarKind, error) {
	out := make([]any, len(values))
	var kind ScalarKind
	for i, v := range values {
		native, k, ok := nativeScalar(v)
		if !ok {
			return nil, "", fmt.Errorf("unsupported value %#v (%T)", v, v)
		}
		if i == 0 {
			kind = k
		} else if k != kind {
			return nil, "", fmt.Errorf("mixed value types %s and %s", kind, k)
		}
		out[i] = native
	}
	return out, kind, nil
}

// invokeProvider calls a dropdown provider and normalizes its result. Panics
// inside the provider are reported as ProviderFailed.
func invokeProvider(field string, provider schema.OptionsProvider) (options []any, kind ScalarKind, err error) {
	if provider == nil {
		return nil, "", choiceError(field, CodeProviderNotCallable, "dropdown provider is nil")
	}

	raw, callErr := callProvider(provider)
	if callErr != nil {
		e := choiceError(field, CodeProviderFailed, "dropdown provider failed: %v", callErr)
		e.Err = callErr
		return nil, "", e
	}

	values, ok := asSequence(raw)
	if !ok {
		return nil, "", choiceError(field, CodeProviderNonSequence, "dropdown provider must return a list, got %T", raw)
	}
	if len(values) == 0 {
		return nil, "", choiceError(field, CodeProviderReturnedEmpty, "dropdown provider returned no options")
	}
	options, kind, err = homogeneous(values)
	if err != nil {
		return nil, "", choiceError(field, CodeProviderMixedTypes, "dropdown provider: %v", err)
	}
	return options, kind, nil
}

func callProvider(provider schema.OptionsProvider) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return provider()
}
