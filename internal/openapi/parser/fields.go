package parser

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/openapi"
	"github.com/goliatone/go-typeinput/pkg/schema"
	"github.com/goliatone/go-typeinput/pkg/uischema"
)

type converter struct {
	providers map[string]schema.OptionsProvider
}

// objectFields declares one field per property of an object schema. Required
// properties come first, each group sorted by name. allOf members are merged.
func (c converter) objectFields(s *openapi3.Schema) ([]collect.Field, error) {
	props := make(map[string]*openapi3.SchemaRef)
	required := make(map[string]bool)
	collectProperties(s, props, required)

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	fields := make([]collect.Field, 0, len(names))
	for _, name := range names {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("property %s: unresolved reference %q", name, refOf(ref))
		}
		if ref.Value.ReadOnly {
			continue
		}
		field, err := c.property(name, ref.Value, required[name])
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func collectProperties(s *openapi3.Schema, props map[string]*openapi3.SchemaRef, required map[string]bool) {
	if s == nil {
		return
	}
	for _, ref := range s.AllOf {
		if ref != nil {
			collectProperties(ref.Value, props, required)
		}
	}
	for name, ref := range s.Properties {
		props[name] = ref
	}
	for _, name := range s.Required {
		required[name] = true
	}
}

func refOf(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return ""
	}
	return ref.Ref
}

func (c converter) property(name string, s *openapi3.Schema, required bool) (collect.Field, error) {
	typ, err := c.schemaType(s)
	if err != nil {
		return collect.Field{}, err
	}

	var frags []schema.Fragment
	if s.Title != "" {
		frags = append(frags, schema.Label(s.Title))
	}
	if s.Description != "" {
		frags = append(frags, schema.Description(s.Description))
	}
	typ = schema.Annotated(typ, frags...)

	def := uischema.ConvertDefault(s.Default, typ)
	if !required || s.Nullable || (s.Type != nil && s.Type.Includes(openapi3.TypeNull)) {
		typ = schema.Optional(typ)
	}
	return collect.Field{Name: name, Type: typ, Default: def}, nil
}

// schemaType maps a property schema onto the type IR. Items carry their own
// constraints and extension fragments; list bounds come from minItems and
// maxItems.
func (c converter) schemaType(s *openapi3.Schema) (schema.Type, error) {
	kind := firstSchemaType(s.Type)
	if kind == openapi3.TypeArray {
		if s.Items == nil {
			return schema.BareList(), nil
		}
		if s.Items.Value == nil {
			return schema.Type{}, fmt.Errorf("items: unresolved reference %q", s.Items.Ref)
		}
		item, err := c.schemaType(s.Items.Value)
		if err != nil {
			return schema.Type{}, fmt.Errorf("items: %w", err)
		}
		list := schema.List(item)
		var bounds schema.Constraints
		if s.MinItems > 0 {
			n := int(s.MinItems)
			bounds.MinLength = &n
		}
		if s.MaxItems != nil {
			n := int(*s.MaxItems)
			bounds.MaxLength = &n
		}
		if len(bounds.Keys()) > 0 {
			list = schema.Annotated(list, bounds)
		}
		return list, nil
	}

	var typ schema.Type
	switch kind {
	case openapi3.TypeInteger:
		typ = schema.Int()
	case openapi3.TypeNumber:
		typ = schema.Float()
	case openapi3.TypeBoolean:
		typ = schema.Bool()
	case openapi3.TypeString:
		typ = stringType(s.Format)
	case "":
		typ = schema.Inferred()
	default:
		typ = schema.Named(kind)
	}

	if len(s.Enum) > 0 {
		typ = schema.Literal(enumValues(s.Enum, kind)...).WithMeta(typ.Meta)
	}

	constraints := constraintsOf(s)
	if len(constraints.Keys()) > 0 {
		typ = schema.Annotated(typ, constraints)
	}

	frags, err := c.extension(s.Extensions)
	if err != nil {
		return schema.Type{}, err
	}
	return schema.Annotated(typ, frags...), nil
}

func stringType(format string) schema.Type {
	switch format {
	case "date":
		return schema.Date()
	case "time", "partial-time":
		return schema.Time()
	case "password":
		return schema.Annotated(schema.String(), schema.IsPassword{})
	case "binary":
		return schema.File()
	}
	if alias, ok := schema.Alias(format); ok {
		return alias
	}
	return schema.String()
}

func enumValues(values []any, kind string) []any {
	out := uischema.NormalizeNumbers(values)
	if kind != openapi3.TypeNumber {
		return out
	}
	for i, v := range out {
		if n, ok := v.(int64); ok {
			out[i] = float64(n)
		}
	}
	return out
}

func constraintsOf(s *openapi3.Schema) schema.Constraints {
	var c schema.Constraints
	if s.Min != nil {
		v := *s.Min
		if s.ExclusiveMin {
			c.Gt = &v
		} else {
			c.Ge = &v
		}
	}
	if s.Max != nil {
		v := *s.Max
		if s.ExclusiveMax {
			c.Lt = &v
		} else {
			c.Le = &v
		}
	}
	if s.MinLength > 0 {
		n := int(s.MinLength)
		c.MinLength = &n
	}
	if s.MaxLength != nil {
		n := int(*s.MaxLength)
		c.MaxLength = &n
	}
	if s.Pattern != "" {
		p := s.Pattern
		c.Pattern = &p
	}
	return c
}

// extension decodes the x-typeinput object. Keys are applied in sorted order.
func (c converter) extension(raw map[string]any) ([]schema.Fragment, error) {
	value, ok := raw[openapi.ExtensionKey]
	if !ok || value == nil {
		return nil, nil
	}
	entries, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object, got %T", openapi.ExtensionKey, value)
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	frags := make([]schema.Fragment, 0, len(keys))
	for _, key := range keys {
		frag, err := uischema.DecodeFragment(key, entries[key], c.providers)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", openapi.ExtensionKey, key, err)
		}
		frags = append(frags, frag)
	}
	return frags, nil
}
