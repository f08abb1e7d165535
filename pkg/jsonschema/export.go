// Package jsonschema exports field descriptors as a JSON Schema (draft
// 2020-12) object, so clients outside Go can validate submissions or render
// their own forms. Presentation facets travel in the x-typeinput keyword.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strconv"

	js "github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-typeinput/pkg/model"
)

// ExtensionKey carries widget and item UI hints on each property.
const ExtensionKey = "x-typeinput"

// Options configures the root schema.
type Options struct {
	ID          string
	Title       string
	Description string
}

// Export builds an object schema with one property per field, in order.
// Fields that are not optional are listed as required.
func Export(fields []model.FieldDescriptor, opts Options) *js.Schema {
	root := &js.Schema{
		Version:     js.Version,
		ID:          js.ID(opts.ID),
		Type:        "object",
		Title:       opts.Title,
		Description: opts.Description,
		Properties:  orderedmap.New[string, *js.Schema](),
	}
	root.AdditionalProperties = js.FalseSchema

	for _, field := range fields {
		root.Properties.Set(field.Name, Property(field))
		if !field.IsOptional() {
			root.Required = append(root.Required, field.Name)
		}
	}
	return root
}

// Marshal renders Export as indented JSON.
func Marshal(fields []model.FieldDescriptor, opts Options) ([]byte, error) {
	data, err := json.MarshalIndent(Export(fields, opts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal: %w", err)
	}
	return data, nil
}

// Property converts one descriptor into its property schema.
func Property(field model.FieldDescriptor) *js.Schema {
	item := itemSchema(field)

	prop := item
	if field.IsList() {
		prop = &js.Schema{Type: "array", Items: item}
		if field.List.MinLength != nil {
			n := uint64(*field.List.MinLength)
			prop.MinItems = &n
		}
		if field.List.MaxLength != nil {
			n := uint64(*field.List.MaxLength)
			prop.MaxItems = &n
		}
	}

	prop.Title = field.Label
	prop.Description = field.Description()
	if field.HasDefault() {
		prop.Default = field.Default
	}
	prop.Extras = map[string]any{ExtensionKey: extension(field)}
	return prop
}

func itemSchema(field model.FieldDescriptor) *js.Schema {
	s := &js.Schema{}
	switch field.Kind {
	case model.KindInt:
		s.Type = "integer"
	case model.KindFloat:
		s.Type = "number"
	case model.KindBool:
		s.Type = "boolean"
	case model.KindDate:
		s.Type, s.Format = "string", "date"
	case model.KindTime:
		s.Type, s.Format = "string", "time"
	default:
		s.Type = "string"
	}

	if field.Choices != nil {
		s.Enum = make([]any, len(field.Choices.Options))
		copy(s.Enum, field.Choices.Options)
	}

	if c := field.Constraints; c != nil {
		if c.Ge != nil {
			s.Minimum = number(*c.Ge)
		}
		if c.Gt != nil {
			s.ExclusiveMinimum = number(*c.Gt)
		}
		if c.Le != nil {
			s.Maximum = number(*c.Le)
		}
		if c.Lt != nil {
			s.ExclusiveMaximum = number(*c.Lt)
		}
		if c.MinLength != nil {
			n := uint64(*c.MinLength)
			s.MinLength = &n
		}
		if c.MaxLength != nil {
			n := uint64(*c.MaxLength)
			s.MaxLength = &n
		}
		if c.Pattern != nil {
			s.Pattern = *c.Pattern
		}
	}
	return s
}

func number(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
}

func extension(field model.FieldDescriptor) map[string]any {
	ext := map[string]any{
		"kind":   string(field.Kind),
		"widget": field.Widget,
	}
	if field.WidgetHint != "" {
		ext["widget_hint"] = field.WidgetHint
	}
	if field.Optional != nil {
		ext["optional"] = map[string]any{"enabled": field.Optional.Enabled}
	}
	if field.Choices != nil {
		ext["choices"] = string(field.Choices.Source)
		if field.Choices.Enum != nil {
			ext["enum"] = field.Choices.Enum.Name
		}
	}
	if ui := field.ItemUI; ui != nil {
		ext["step"] = ui.Step
		if ui.IsSlider {
			ext["slider"] = map[string]any{"show_value": ui.ShowSliderValue}
		}
		if ui.IsPassword {
			ext["password"] = true
		}
		if ui.Rows > 0 {
			ext["rows"] = ui.Rows
		}
		if ui.Placeholder != "" {
			ext["placeholder"] = ui.Placeholder
		}
		if ui.PatternMessage != "" {
			ext["pattern_message"] = ui.PatternMessage
		}
	}
	return ext
}
