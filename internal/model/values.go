package model

import (
	"math"
	"reflect"
	"time"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

var (
	localDateType = reflect.TypeOf(schema.LocalDate{})
	localTimeType = reflect.TypeOf(schema.LocalTime{})
)

// nativeScalar classifies v by its Go type without any parsing and returns
// the canonical representation: int64, float64, string, bool, LocalDate or
// LocalTime. Named types are unwrapped to their underlying kind.
func nativeScalar(v any) (any, ScalarKind, bool) {
	switch x := v.(type) {
	case nil:
		return nil, "", false
	case bool:
		return x, KindBool, true
	case int:
		return int64(x), KindInt, true
	case int8:
		return int64(x), KindInt, true
	case int16:
		return int64(x), KindInt, true
	case int32:
		return int64(x), KindInt, true
	case int64:
		return x, KindInt, true
	case uint:
		return uintScalar(uint64(x))
	case uint8:
		return int64(x), KindInt, true
	case uint16:
		return int64(x), KindInt, true
	case uint32:
		return int64(x), KindInt, true
	case uint64:
		return uintScalar(x)
	case float32:
		return float64(x), KindFloat, true
	case float64:
		return x, KindFloat, true
	case string:
		return x, KindString, true
	case schema.LocalDate:
		return x, KindDate, true
	case schema.LocalTime:
		return x, KindTime, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), KindBool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), KindInt, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintScalar(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float(), KindFloat, true
	case reflect.String:
		return rv.String(), KindString, true
	case reflect.Struct:
		if rv.Type().ConvertibleTo(localDateType) {
			return rv.Convert(localDateType).Interface(), KindDate, true
		}
		if rv.Type().ConvertibleTo(localTimeType) {
			return rv.Convert(localTimeType).Interface(), KindTime, true
		}
	}
	return nil, "", false
}

func uintScalar(u uint64) (any, ScalarKind, bool) {
	if u > math.MaxInt64 {
		return nil, "", false
	}
	return int64(u), KindInt, true
}

// asSequence unpacks slices and arrays. Strings and byte slices are not
// sequences.
func asSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	switch v.(type) {
	case string, []byte:
		return nil, false
	case []any:
		return append([]any(nil), v.([]any)...), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isNil reports whether v is nil or a nil pointer, map, slice or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// deref follows non-nil pointers.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// isIntegral reports whether f is a whole number that fits in an int64.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) &&
		f >= -(1<<63) && f < 1<<63
}

func timeValue(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x != nil {
			return *x, true
		}
	}
	return time.Time{}, false
}
