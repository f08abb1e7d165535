package collect

import (
	"math"
	"reflect"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// goIntRange returns the bounds of a sized or unsigned Go integer kind.
// int and int64 hold every validated value and report false.
func goIntRange(t reflect.Type) (schema.Constraints, bool) {
	bounds := func(lo, hi float64) schema.Constraints {
		return schema.Constraints{Ge: &lo, Le: &hi}
	}
	switch t.Kind() {
	case reflect.Int8:
		return bounds(math.MinInt8, math.MaxInt8), true
	case reflect.Int16:
		return bounds(math.MinInt16, math.MaxInt16), true
	case reflect.Int32:
		return bounds(math.MinInt32, math.MaxInt32), true
	case reflect.Uint8:
		return bounds(0, math.MaxUint8), true
	case reflect.Uint16:
		return bounds(0, math.MaxUint16), true
	case reflect.Uint32:
		return bounds(0, math.MaxUint32), true
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		lo := 0.0
		return schema.Constraints{Ge: &lo}, true
	}
	return schema.Constraints{}, false
}

// clampToGoRange narrows the numeric bounds of c to what t can hold. Bounds
// already tighter than the Go range are kept.
func clampToGoRange(c schema.Constraints, t reflect.Type) schema.Constraints {
	r, ok := goIntRange(t)
	if !ok {
		return c
	}
	if r.Ge != nil && (c.Ge == nil || *c.Ge < *r.Ge) && (c.Gt == nil || *c.Gt < *r.Ge) {
		c.Ge = r.Ge
	}
	if r.Le != nil && (c.Le == nil || *c.Le > *r.Le) && (c.Lt == nil || *c.Lt > *r.Le) {
		c.Le = r.Le
	}
	return c
}

// overflows reports whether the validated integer v does not fit in t.
func overflows(v int64, t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Zero(t).OverflowInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v < 0 || reflect.Zero(t).OverflowUint(uint64(v))
	}
	return false
}
