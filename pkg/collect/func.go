package collect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/validation"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Func binds a Go function to declared parameters so it can be invoked with
// submitted values once they validate.
type Func struct {
	fn     reflect.Value
	fields []model.FieldDescriptor
}

// BindFunc declares one field per parameter of fn, in order. Every
// parameter must be declared, variadic functions are not supported, and the
// first invalid declaration fails the bind.
func BindFunc(fn any, params []Field, opts ...Option) (*Func, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("collect: expected a function, got %T", fn)
	}
	rt := rv.Type()
	if rt.IsVariadic() {
		return nil, errors.New("collect: variadic functions are not supported")
	}
	if rt.NumIn() != len(params) {
		return nil, fmt.Errorf("collect: function takes %d parameters, %d declared", rt.NumIn(), len(params))
	}

	fields, err := Analyze(params, opts...)
	if err != nil {
		return nil, err
	}
	if len(fields) != len(params) {
		return nil, errors.New("collect: every function parameter must produce a field")
	}
	for i, field := range fields {
		if err := checkParam(field, rt.In(i)); err != nil {
			return nil, fmt.Errorf("collect: parameter %d (%s): %w", i, field.Name, err)
		}
		if fields[i], err = boundParam(field, rt.In(i)); err != nil {
			return nil, fmt.Errorf("collect: parameter %d (%s): %w", i, field.Name, err)
		}
	}
	return &Func{fn: rv, fields: fields}, nil
}

// Fields returns the descriptors of the bound parameters.
func (f *Func) Fields() []model.FieldDescriptor {
	return append([]model.FieldDescriptor(nil), f.fields...)
}

// Call validates values and calls the function. Validation issues are
// returned as a failed Result without calling. A trailing error result of
// the function is returned as the error.
func (f *Func) Call(values map[string]any) ([]any, validation.Result, error) {
	result := validation.ValidateValues(f.fields, values)
	if !result.Valid {
		return nil, result, nil
	}

	args := make([]reflect.Value, len(f.fields))
	for i, field := range f.fields {
		arg, err := convertValue(result.Values[field.Name], f.fn.Type().In(i))
		if err != nil {
			return nil, result, fmt.Errorf("collect: parameter %s: %w", field.Name, err)
		}
		args[i] = arg
	}

	outs := f.fn.Call(args)
	var callErr error
	if n := len(outs); n > 0 && f.fn.Type().Out(n-1) == errorType {
		if e, ok := outs[n-1].Interface().(error); ok {
			callErr = e
		}
		outs = outs[:n-1]
	}
	ret := make([]any, len(outs))
	for i, out := range outs {
		ret[i] = out.Interface()
	}
	return ret, result, callErr
}

// checkParam reports whether a Go parameter type can receive the validated
// values of field.
func checkParam(field model.FieldDescriptor, t reflect.Type) error {
	if field.IsOptional() {
		if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
			return fmt.Errorf("optional field needs a pointer or interface parameter, got %s", t)
		}
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	if field.IsList() {
		if t.Kind() == reflect.Interface {
			return nil
		}
		if t.Kind() != reflect.Slice {
			return fmt.Errorf("list field needs a slice parameter, got %s", t)
		}
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return nil
	}
	if !kindAccepts(field.Kind, t) {
		return fmt.Errorf("%s field cannot be passed as %s", field.Kind, t)
	}
	return nil
}

// boundParam adds the range of a sized or unsigned integer parameter to the
// field's constraints so out of range values fail validation instead of
// wrapping on conversion.
func boundParam(field model.FieldDescriptor, t reflect.Type) (model.FieldDescriptor, error) {
	if field.Kind != model.KindInt || field.Choices != nil {
		return field, nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if field.IsList() && t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	var current model.ConstraintsMeta
	if field.Constraints != nil {
		current = *field.Constraints
	}
	clamped := clampToGoRange(current, t)
	if clamped == current {
		return field, nil
	}
	field.Constraints = &clamped
	if field.HasDefault() {
		if _, err := validation.Validate(field, field.Default); err != nil {
			return field, fmt.Errorf("default does not fit %s: %w", t, err)
		}
	}
	return field, nil
}

func kindAccepts(kind model.ScalarKind, t reflect.Type) bool {
	switch kind {
	case model.KindDate:
		return t == localDateType
	case model.KindTime:
		return t == localTimeType
	case model.KindBool:
		return t.Kind() == reflect.Bool
	case model.KindString:
		return t.Kind() == reflect.String
	case model.KindFloat:
		return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	case model.KindInt:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
	}
	return false
}

// convertValue turns a validated native value into an argument of type t.
func convertValue(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	switch t.Kind() {
	case reflect.Interface:
		return reflect.ValueOf(v), nil
	case reflect.Pointer:
		elem, err := convertValue(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a list, got %T", v)
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			elem, err := convertValue(item, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}
	if n, ok := v.(int64); ok && overflows(n, t) {
		return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().ConvertibleTo(t) {
		return reflect.Value{}, fmt.Errorf("cannot pass %T as %s", v, t)
	}
	return rv.Convert(t), nil
}
