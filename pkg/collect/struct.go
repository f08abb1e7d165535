package collect

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// TagName is the struct tag read by FromStruct.
const TagName = "typeinput"

// EnumDeclarer is implemented by named Go types that should be presented as
// an enum field. The method is called on the zero value.
type EnumDeclarer interface {
	TypeInputEnum() schema.Type
}

var (
	localDateType = reflect.TypeOf(schema.LocalDate{})
	localTimeType = reflect.TypeOf(schema.LocalTime{})
	enumDeclarer  = reflect.TypeOf((*EnumDeclarer)(nil)).Elem()
)

// structCache caches parsed field specs per struct type.
var structCache sync.Map // map[reflect.Type]*structEntry

type structEntry struct {
	fields []structField
	err    error
}

type structField struct {
	name  string
	index []int
	typ   reflect.Type
	tag   tagSpec
}

type tagSpec struct {
	label          *string
	description    *string
	placeholder    *string
	patternMessage *string
	step           *float64
	rows           *int
	slider         bool
	hideValue      bool
	password       bool
	format         string
	choices        []string
	options        string
	optional       string
	def            *string
	constraints    schema.Constraints
	list           schema.Constraints
}

// StructOption configures FromStruct.
type StructOption func(*structConfig)

type structConfig struct {
	providers map[string]schema.OptionsProvider
}

// WithProvider registers a dropdown provider referenced by `options=name`.
func WithProvider(name string, provider schema.OptionsProvider) StructOption {
	return func(cfg *structConfig) {
		if cfg.providers == nil {
			cfg.providers = make(map[string]schema.OptionsProvider)
		}
		cfg.providers[name] = provider
	}
}

// FromStruct declares one field per exported struct field of v, in
// declaration order. Pointer fields are optional and slices are lists. The
// `typeinput` tag decorates the field:
//
//	type Settings struct {
//		Volume int      `json:"volume" typeinput:"label=Volume,ge=0,le=100,slider"`
//		Email  *string  `json:"email" typeinput:"format=email"`
//		Tags   []string `json:"tags" typeinput:"list_min=1,max_length=12"`
//	}
//
// Non-zero field values of v become defaults unless the tag declares one.
func FromStruct(v any, opts ...StructOption) ([]Field, error) {
	cfg := structConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.New("collect: struct value is required")
	}
	rt := rv.Type()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
		if rv.IsValid() && !rv.IsNil() {
			rv = rv.Elem()
		} else {
			rv = reflect.Value{}
		}
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("collect: expected struct, got %s", rt)
	}

	specs, err := structSpecs(rt)
	if err != nil {
		return nil, err
	}

	out := make([]Field, 0, len(specs))
	for _, spec := range specs {
		field, err := spec.declare(cfg)
		if err != nil {
			return nil, fmt.Errorf("collect: %s.%s: %w", rt.Name(), spec.name, err)
		}
		if field.Default == nil && rv.IsValid() {
			field.Default = fieldDefault(rv.FieldByIndex(spec.index))
		}
		out = append(out, field)
	}
	return out, nil
}

// Struct adapts FromStruct into a Collector.
func Struct(v any, opts ...StructOption) Collector {
	return CollectorFunc(func() ([]Field, error) {
		return FromStruct(v, opts...)
	})
}

func structSpecs(rt reflect.Type) ([]structField, error) {
	if cached, ok := structCache.Load(rt); ok {
		entry := cached.(*structEntry)
		return entry.fields, entry.err
	}
	fields, err := parseStruct(rt)
	actual, _ := structCache.LoadOrStore(rt, &structEntry{fields: fields, err: err})
	entry := actual.(*structEntry)
	return entry.fields, entry.err
}

func parseStruct(rt reflect.Type) ([]structField, error) {
	var fields []structField
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		raw, hasTag := sf.Tag.Lookup(TagName)
		if hasTag && raw == "-" {
			continue
		}
		name := sf.Name
		if jsonTag := sf.Tag.Get("json"); jsonTag != "" {
			part := strings.Split(jsonTag, ",")[0]
			if part == "-" {
				continue
			}
			if part != "" {
				name = part
			}
		}
		spec, err := parseTag(raw)
		if err != nil {
			return nil, fmt.Errorf("collect: %s.%s: %w", rt.Name(), sf.Name, err)
		}
		fields = append(fields, structField{name: name, index: sf.Index, typ: sf.Type, tag: spec})
	}
	return fields, nil
}

// parseTag splits a tag into comma separated key=value pairs. Values cannot
// contain commas; use format= aliases or a Schema for such patterns.
func parseTag(raw string) (tagSpec, error) {
	var spec tagSpec
	if strings.TrimSpace(raw) == "" {
		return spec, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "label":
			spec.label = &value
		case "description":
			spec.description = &value
		case "placeholder":
			spec.placeholder = &value
		case "pattern_message":
			spec.patternMessage = &value
		case "step":
			spec.step, err = parseFloatPtr(key, value)
		case "rows":
			spec.rows, err = parseIntPtr(key, value)
		case "slider":
			spec.slider = true
		case "hide_value":
			spec.hideValue = true
		case "password":
			spec.password = true
		case "format":
			spec.format = value
		case "choices":
			spec.choices = strings.Split(value, "|")
		case "options":
			spec.options = value
		case "optional":
			if value != "enabled" && value != "disabled" {
				return spec, fmt.Errorf("optional must be enabled or disabled, got %q", value)
			}
			spec.optional = value
		case "default":
			spec.def = &value
		case "ge":
			spec.constraints.Ge, err = parseFloatPtr(key, value)
		case "le":
			spec.constraints.Le, err = parseFloatPtr(key, value)
		case "gt":
			spec.constraints.Gt, err = parseFloatPtr(key, value)
		case "lt":
			spec.constraints.Lt, err = parseFloatPtr(key, value)
		case "min_length":
			spec.constraints.MinLength, err = parseIntPtr(key, value)
		case "max_length":
			spec.constraints.MaxLength, err = parseIntPtr(key, value)
		case "pattern":
			spec.constraints.Pattern = &value
		case "list_min":
			spec.list.MinLength, err = parseIntPtr(key, value)
		case "list_max":
			spec.list.MaxLength, err = parseIntPtr(key, value)
		default:
			return spec, fmt.Errorf("unknown %s tag key %q", TagName, key)
		}
		if err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func parseFloatPtr(key, value string) (*float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return &f, nil
}

func parseIntPtr(key, value string) (*int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return &n, nil
}

func (f structField) declare(cfg structConfig) (Field, error) {
	goType := f.typ
	optional := false
	if goType.Kind() == reflect.Pointer {
		optional = true
		goType = goType.Elem()
	}

	isList := goType.Kind() == reflect.Slice && goType.Elem().Kind() != reflect.Uint8
	itemGo := goType
	if isList {
		itemGo = goType.Elem()
	}

	item, err := f.itemType(itemGo, cfg)
	if err != nil {
		return Field{}, err
	}

	typ := item
	if isList {
		typ = schema.List(item)
		if len(f.tag.list.Keys()) > 0 {
			typ = schema.Annotated(typ, f.tag.list)
		}
	} else if len(f.tag.list.Keys()) > 0 {
		return Field{}, errors.New("list_min and list_max require a slice field")
	}
	if f.tag.label != nil {
		typ = schema.Annotated(typ, schema.Label(*f.tag.label))
	}
	if f.tag.description != nil {
		typ = schema.Annotated(typ, schema.Description(*f.tag.description))
	}

	switch {
	case f.tag.optional == "enabled":
		typ = schema.OptionalEnabled(typ)
	case f.tag.optional == "disabled":
		typ = schema.OptionalDisabled(typ)
	case optional:
		typ = schema.Optional(typ)
	}

	field := Field{Name: f.name, Type: typ}
	if f.tag.def != nil {
		def, err := parseDefault(*f.tag.def, item, isList)
		if err != nil {
			return Field{}, err
		}
		field.Default = def
	}
	return field, nil
}

func (f structField) itemType(goType reflect.Type, cfg structConfig) (schema.Type, error) {
	base := goTypeOf(goType)

	if f.tag.format != "" {
		if base.Shape != schema.ShapeScalar || base.Scalar != schema.KindString {
			return schema.Type{}, fmt.Errorf("format=%s requires a string field", f.tag.format)
		}
		alias, ok := schema.Alias(f.tag.format)
		if !ok {
			return schema.Type{}, fmt.Errorf("unknown format %q", f.tag.format)
		}
		base = alias
	}

	if len(f.tag.choices) > 0 {
		if base.Shape != schema.ShapeScalar {
			return schema.Type{}, fmt.Errorf("choices require a scalar field, got %s", base)
		}
		values := make([]any, len(f.tag.choices))
		for i, raw := range f.tag.choices {
			v, err := parseScalar(strings.TrimSpace(raw), base.Scalar)
			if err != nil {
				return schema.Type{}, fmt.Errorf("choices: %w", err)
			}
			values[i] = v
		}
		base = schema.Literal(values...).WithMeta(base.Meta)
	}

	var frags []schema.Fragment
	if f.tag.options != "" {
		provider, ok := cfg.providers[f.tag.options]
		if !ok {
			return schema.Type{}, fmt.Errorf("options provider %q is not registered", f.tag.options)
		}
		frags = append(frags, schema.Dropdown{Provider: provider})
	}
	constraints := f.tag.constraints
	if len(f.tag.choices) == 0 && f.tag.options == "" && !goType.Implements(enumDeclarer) {
		constraints = clampToGoRange(constraints, goType)
	}
	if len(constraints.Keys()) > 0 {
		frags = append(frags, constraints)
	}
	if f.tag.step != nil {
		frags = append(frags, schema.Step(*f.tag.step))
	}
	if f.tag.placeholder != nil {
		frags = append(frags, schema.Placeholder(*f.tag.placeholder))
	}
	if f.tag.patternMessage != nil {
		frags = append(frags, schema.PatternMessage(*f.tag.patternMessage))
	}
	if f.tag.rows != nil {
		frags = append(frags, schema.Rows(*f.tag.rows))
	}
	if f.tag.slider {
		frags = append(frags, schema.Slider{ShowValue: !f.tag.hideValue})
	}
	if f.tag.password {
		frags = append(frags, schema.IsPassword{})
	}
	return schema.Annotated(base, frags...), nil
}

// goTypeOf maps a Go type to its undecorated declaration.
func goTypeOf(t reflect.Type) schema.Type {
	if t.Implements(enumDeclarer) {
		return reflect.Zero(t).Interface().(EnumDeclarer).TypeInputEnum()
	}
	switch t {
	case localDateType:
		return schema.Date()
	case localTimeType:
		return schema.Time()
	}
	switch t.Kind() {
	case reflect.Bool:
		return schema.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.Int()
	case reflect.Float32, reflect.Float64:
		return schema.Float()
	case reflect.String:
		return schema.String()
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return schema.Inferred()
		}
	case reflect.Slice:
		return schema.List(goTypeOf(t.Elem()))
	case reflect.Pointer:
		return schema.Optional(goTypeOf(t.Elem()))
	}
	return schema.Named(t.String())
}

func parseDefault(raw string, item schema.Type, isList bool) (any, error) {
	if !isList {
		return parseItemDefault(raw, item)
	}
	if raw == "" {
		return []any{}, nil
	}
	parts := strings.Split(raw, "|")
	out := make([]any, len(parts))
	for i, part := range parts {
		v, err := parseItemDefault(strings.TrimSpace(part), item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseItemDefault(raw string, item schema.Type) (any, error) {
	switch item.Shape {
	case schema.ShapeEnum:
		if m, ok := item.Enum.Member(raw); ok {
			return m, nil
		}
		return nil, fmt.Errorf("default: %s has no member %q", item.Name, raw)
	case schema.ShapeLiteral:
		if len(item.Literals) == 0 {
			return raw, nil
		}
		return parseScalar(raw, kindOfValue(item.Literals[0]))
	case schema.ShapeScalar:
		if item.Scalar == "" {
			return raw, nil
		}
		return parseScalar(raw, item.Scalar)
	}
	return raw, nil
}

func kindOfValue(v any) schema.ScalarKind {
	switch v.(type) {
	case int64:
		return schema.KindInt
	case float64:
		return schema.KindFloat
	case bool:
		return schema.KindBool
	case schema.LocalDate:
		return schema.KindDate
	case schema.LocalTime:
		return schema.KindTime
	}
	return schema.KindString
}

// parseScalar converts a tag literal into the canonical value of kind.
func parseScalar(raw string, kind schema.ScalarKind) (any, error) {
	switch kind {
	case schema.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q", raw)
		}
		return n, nil
	case schema.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", raw)
		}
		return f, nil
	case schema.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return b, nil
	case schema.KindDate:
		return schema.ParseDate(raw)
	case schema.KindTime:
		return schema.ParseTime(raw)
	}
	return raw, nil
}

// fieldDefault reads a struct value as a default. Zero values and nil
// pointers mean no default.
func fieldDefault(v reflect.Value) any {
	if !v.IsValid() || v.IsZero() {
		return nil
	}
	if v.Kind() == reflect.Pointer {
		return v.Elem().Interface()
	}
	return v.Interface()
}
