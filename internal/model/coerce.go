package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

var boolTokens = map[string]bool{
	"true":  true,
	"1":     true,
	"yes":   true,
	"false": false,
	"0":     false,
	"no":    false,
}

// coerceScalar converts a native or wire-format value to the canonical Go
// representation of kind. Booleans never stand in for numbers and numbers
// never stand in for booleans.
func coerceScalar(field string, kind ScalarKind, v any) (any, error) {
	v = deref(v)
	if n, ok := v.(json.Number); ok {
		if kind == KindInt {
			return coerceIntNumber(field, n)
		}
		v = string(n)
	}

	switch kind {
	case KindInt:
		return coerceInt(field, v)
	case KindFloat:
		return coerceFloat(field, v)
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		if native, k, ok := nativeScalar(v); ok && k == KindString {
			return native, nil
		}
	case KindBool:
		if s, ok := v.(string); ok {
			b, known := boolTokens[strings.ToLower(s)]
			if !known {
				return nil, coercionError(field, CodeCoercionFailed, "cannot convert %q to bool", s)
			}
			return b, nil
		}
		if native, k, ok := nativeScalar(v); ok && k == KindBool {
			return native, nil
		}
	case KindDate:
		if s, ok := v.(string); ok {
			d, err := schema.ParseDate(s)
			if err != nil {
				return nil, coercionFailed(field, err, "cannot convert %q to date", s)
			}
			return d, nil
		}
		if t, ok := timeValue(v); ok {
			return schema.DateOf(t), nil
		}
		if native, k, ok := nativeScalar(v); ok && k == KindDate {
			return native, nil
		}
	case KindTime:
		if s, ok := v.(string); ok {
			t, err := schema.ParseTime(s)
			if err != nil {
				return nil, coercionFailed(field, err, "cannot convert %q to time", s)
			}
			return t, nil
		}
		if t, ok := timeValue(v); ok {
			return schema.TimeOf(t), nil
		}
		if native, k, ok := nativeScalar(v); ok && k == KindTime {
			return native, nil
		}
	}
	return nil, typeMismatch(field, kind, v)
}

func coerceInt(field string, v any) (any, error) {
	if s, ok := v.(string); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, coercionFailed(field, err, "cannot convert %q to int", s)
		}
		return n, nil
	}
	native, k, ok := nativeScalar(v)
	if !ok {
		return nil, typeMismatch(field, KindInt, v)
	}
	switch k {
	case KindInt:
		return native, nil
	case KindFloat:
		f := native.(float64)
		if isIntegral(f) {
			return int64(f), nil
		}
	}
	return nil, typeMismatch(field, KindInt, v)
}

// coerceIntNumber accepts a JSON number in integer or exactly integral
// decimal form ("12", "1.0", "1e3").
func coerceIntNumber(field string, n json.Number) (any, error) {
	if i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return nil, coercionFailed(field, err, "cannot convert %q to int", string(n))
	}
	if !isIntegral(f) {
		return nil, typeMismatch(field, KindInt, n)
	}
	return int64(f), nil
}

func coerceFloat(field string, v any) (any, error) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, coercionFailed(field, err, "cannot convert %q to float", s)
		}
		return f, nil
	}
	native, k, ok := nativeScalar(v)
	if !ok {
		return nil, typeMismatch(field, KindFloat, v)
	}
	switch k {
	case KindFloat:
		return native, nil
	case KindInt:
		return float64(native.(int64)), nil
	}
	return nil, typeMismatch(field, KindFloat, v)
}

func typeMismatch(field string, kind ScalarKind, v any) *Error {
	e := coercionError(field, CodeTypeMismatch, "expected %s, got %T", kind, v)
	e.Value = v
	return e
}

func coercionFailed(field string, cause error, format string, args ...any) *Error {
	e := coercionError(field, CodeCoercionFailed, format, args...)
	e.Err = cause
	return e
}
