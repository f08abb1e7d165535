package uischema

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

func buildType(raw typeFile, cfg loadConfig) (schema.Type, error) {
	kind := strings.ToLower(strings.TrimSpace(raw.Kind))

	var typ schema.Type
	switch kind {
	case "":
		return schema.Type{}, fmt.Errorf("type kind is required")
	case "int", "integer":
		typ = schema.Int()
	case "float", "number":
		typ = schema.Float()
	case "str", "string":
		typ = schema.String()
	case "bool", "boolean":
		typ = schema.Bool()
	case "date":
		typ = schema.Date()
	case "time":
		typ = schema.Time()
	case "inferred":
		typ = schema.Inferred()
	case "none":
		typ = schema.None()
	case "list":
		if raw.Item == nil {
			typ = schema.BareList()
			break
		}
		item, err := buildType(*raw.Item, cfg)
		if err != nil {
			return schema.Type{}, fmt.Errorf("item: %w", err)
		}
		typ = schema.List(item)
	case "enum":
		name := strings.TrimSpace(raw.Enum)
		if name == "" {
			name = "Enum"
		}
		members := make([]schema.EnumMember, len(raw.Members))
		for i, m := range raw.Members {
			members[i] = schema.Member(m.Name, normalizeNumber(m.Value))
		}
		typ = schema.Enum(name, members...)
	case "literal":
		typ = schema.Literal(NormalizeNumbers(raw.Values)...)
	default:
		alias, ok := schema.Alias(kind)
		if !ok {
			typ = schema.Named(raw.Kind)
			break
		}
		typ = alias
	}

	frags := make([]schema.Fragment, 0, len(raw.Meta))
	for i, entry := range raw.Meta {
		if len(entry) != 1 {
			keys := make([]string, 0, len(entry))
			for k := range entry {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return schema.Type{}, fmt.Errorf("meta entry %d must have exactly one key, got %v", i, keys)
		}
		for key, value := range entry {
			frag, err := DecodeFragment(key, value, cfg.providers)
			if err != nil {
				return schema.Type{}, fmt.Errorf("meta entry %d (%s): %w", i, key, err)
			}
			frags = append(frags, frag)
		}
	}
	return schema.Annotated(typ, frags...), nil
}

// DecodeFragment converts one data-form fragment entry, such as
// `constraints: {ge: 0}` or `dropdown: regions`, into a schema.Fragment.
// Dropdown names are looked up in providers.
func DecodeFragment(key string, value any, providers map[string]schema.OptionsProvider) (schema.Fragment, error) {
	switch key {
	case "label":
		s, err := asString(value)
		return schema.Label(s), err
	case "description":
		s, err := asString(value)
		return schema.Description(s), err
	case "placeholder":
		s, err := asString(value)
		return schema.Placeholder(s), err
	case "pattern_message":
		s, err := asString(value)
		return schema.PatternMessage(s), err
	case "step":
		f, ok := asFloat(value)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %T", value)
		}
		return schema.Step(f), nil
	case "rows":
		f, ok := asFloat(value)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("expected an integer, got %v", value)
		}
		return schema.Rows(int(f)), nil
	case "constraints":
		var c constraintsFile
		if err := decodeStrict(value, &c); err != nil {
			return nil, err
		}
		return c.fragment(), nil
	case "slider":
		return decodeSlider(value)
	case "password":
		if b, ok := value.(bool); ok && !b {
			return nil, fmt.Errorf("password cannot be false; omit the entry instead")
		}
		return schema.IsPassword{}, nil
	case "dropdown":
		name, err := asString(value)
		if err != nil {
			return nil, err
		}
		provider, ok := providers[name]
		if !ok {
			return nil, fmt.Errorf("dropdown provider %q is not registered", name)
		}
		return schema.Dropdown{Provider: provider}, nil
	}
	return nil, fmt.Errorf("unknown fragment %q", key)
}

func decodeSlider(value any) (schema.Fragment, error) {
	switch v := value.(type) {
	case nil:
		return schema.NewSlider(), nil
	case bool:
		if !v {
			return nil, fmt.Errorf("slider cannot be false; omit the entry instead")
		}
		return schema.NewSlider(), nil
	}
	opts := struct {
		ShowValue *bool `mapstructure:"show_value"`
	}{}
	if err := decodeStrict(value, &opts); err != nil {
		return nil, err
	}
	slider := schema.NewSlider()
	if opts.ShowValue != nil {
		slider.ShowValue = *opts.ShowValue
	}
	return slider, nil
}

func asString(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", value)
	}
	return s, nil
}

func asFloat(value any) (float64, bool) {
	var f float64
	if err := mapstructure.Decode(value, &f); err != nil {
		return 0, false
	}
	return f, true
}

// normalizeNumber turns integral JSON numbers into int64 so int declarations
// survive a round trip through encoding/json.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
	case int:
		return int64(n)
	}
	return v
}

// NormalizeNumbers applies normalizeNumber only when every value is an
// integral number, so a mixed float set stays float.
func NormalizeNumbers(values []any) []any {
	integral := true
	for _, v := range values {
		if _, ok := normalizeNumber(v).(float64); ok {
			integral = false
			break
		}
	}
	out := make([]any, len(values))
	for i, v := range values {
		if integral {
			out[i] = normalizeNumber(v)
			continue
		}
		if n, ok := v.(int); ok {
			out[i] = float64(n)
			continue
		}
		out[i] = v
	}
	return out
}

// ConvertDefault maps a decoded default onto the declared type: integral
// numbers for int fields, ISO strings for dates and times, member names for
// enums. Values that do not convert pass through for the builder to reject.
func ConvertDefault(v any, t schema.Type) any {
	if v == nil {
		return nil
	}
	if t.Shape == schema.ShapeUnion {
		for _, m := range t.Members {
			if m.Shape != schema.ShapeAbsent {
				return ConvertDefault(v, m)
			}
		}
		return v
	}
	if t.Shape == schema.ShapeList {
		items, ok := v.([]any)
		if !ok || t.Item == nil {
			return v
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = convertItemDefault(item, *t.Item)
		}
		return out
	}
	return convertItemDefault(v, t)
}

func convertItemDefault(v any, t schema.Type) any {
	switch t.Shape {
	case schema.ShapeEnum:
		if name, ok := v.(string); ok {
			if m, found := t.Enum.Member(name); found {
				return m
			}
		}
		return normalizeNumber(v)
	case schema.ShapeLiteral:
		for _, lit := range t.Literals {
			if _, isFloat := lit.(float64); isFloat {
				if n, ok := v.(int); ok {
					return float64(n)
				}
				return v
			}
		}
		return normalizeNumber(v)
	case schema.ShapeScalar:
	default:
		return v
	}

	switch t.Scalar {
	case schema.KindInt:
		return normalizeNumber(v)
	case schema.KindFloat:
		if n, ok := v.(int); ok {
			return float64(n)
		}
	case schema.KindDate:
		switch d := v.(type) {
		case string:
			if parsed, err := schema.ParseDate(d); err == nil {
				return parsed
			}
		case time.Time:
			return schema.DateOf(d)
		}
	case schema.KindTime:
		if s, ok := v.(string); ok {
			if parsed, err := schema.ParseTime(s); err == nil {
				return parsed
			}
		}
	}
	return v
}
