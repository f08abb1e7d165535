package model

import "github.com/goliatone/go-typeinput/pkg/schema"

// ScalarKind re-exports the scalar kind enumeration of the type IR.
type ScalarKind = schema.ScalarKind

const (
	KindInt    = schema.KindInt
	KindFloat  = schema.KindFloat
	KindString = schema.KindString
	KindBool   = schema.KindBool
	KindDate   = schema.KindDate
	KindTime   = schema.KindTime
)

// ChoiceSource records where the options of a choice field come from.
type ChoiceSource string

const (
	SourceEnum     ChoiceSource = "enum"
	SourceLiteral  ChoiceSource = "literal"
	SourceProvider ChoiceSource = "provider"
)

// Widget tags produced by the widget resolver.
const (
	WidgetDropdown     = "Dropdown"
	WidgetSlider       = "Slider"
	WidgetPassword     = "Password"
	WidgetTextarea     = "Textarea"
	WidgetColor        = schema.WidgetColor
	WidgetEmail        = schema.WidgetEmail
	WidgetImageFile    = schema.WidgetImageFile
	WidgetVideoFile    = schema.WidgetVideoFile
	WidgetAudioFile    = schema.WidgetAudioFile
	WidgetDataFile     = schema.WidgetDataFile
	WidgetTextFile     = schema.WidgetTextFile
	WidgetDocumentFile = schema.WidgetDocumentFile
	WidgetFile         = schema.WidgetFile
	WidgetText         = "Text"
	WidgetNumber       = "Number"
	WidgetCheckbox     = "Checkbox"
	WidgetDate         = "Date"
	WidgetTime         = "Time"
)

// OptionalMeta is present when the field may be left empty.
type OptionalMeta struct {
	Enabled bool `json:"enabled"`
}

// ListMeta is present when the field holds a list of scalars. The bounds
// count items.
type ListMeta struct {
	MinLength *int `json:"min_length,omitempty"`
	MaxLength *int `json:"max_length,omitempty"`
}

// ChoiceMeta describes a fixed or provider-sourced option set. Options hold
// underlying scalar values, never enum members.
type ChoiceMeta struct {
	Source   ChoiceSource           `json:"source"`
	Enum     *schema.EnumType       `json:"-"`
	Provider schema.OptionsProvider `json:"-"`
	Options  []any                  `json:"options"`
}

// Contains reports whether v is one of the options.
func (c *ChoiceMeta) Contains(v any) bool {
	if c == nil {
		return false
	}
	for _, opt := range c.Options {
		if opt == v {
			return true
		}
	}
	return false
}

// ConstraintsMeta holds the merged value constraints of a field.
type ConstraintsMeta = schema.Constraints

// ItemUIMeta carries per-value presentation hints.
type ItemUIMeta struct {
	Step            float64 `json:"step"`
	IsSlider        bool    `json:"is_slider"`
	ShowSliderValue bool    `json:"show_slider_value"`
	IsPassword      bool    `json:"is_password"`
	Rows            int     `json:"rows,omitempty"`
	Placeholder     string  `json:"placeholder,omitempty"`
	PatternMessage  string  `json:"pattern_message,omitempty"`
}

// FieldUIMeta carries the field-level label and description.
type FieldUIMeta struct {
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// FieldDescriptor is the normalized, immutable description of one input
// field. Absent facets are nil. Callers must not mutate a descriptor once
// built; use the builder or RefreshChoices to derive a new one.
type FieldDescriptor struct {
	Name        string           `json:"name"`
	Kind        ScalarKind       `json:"kind"`
	Label       string           `json:"label"`
	Default     any              `json:"default,omitempty"`
	WidgetHint  string           `json:"widget_hint,omitempty"`
	Widget      string           `json:"widget"`
	Optional    *OptionalMeta    `json:"optional,omitempty"`
	List        *ListMeta        `json:"list,omitempty"`
	Choices     *ChoiceMeta      `json:"choices,omitempty"`
	Constraints *ConstraintsMeta `json:"constraints,omitempty"`
	ItemUI      *ItemUIMeta      `json:"item_ui,omitempty"`
	FieldUI     *FieldUIMeta     `json:"field_ui,omitempty"`
}

// HasDefault reports whether a default value is declared.
func (d FieldDescriptor) HasDefault() bool {
	return d.Default != nil
}

// IsOptional reports whether the field accepts absence.
func (d FieldDescriptor) IsOptional() bool {
	return d.Optional != nil
}

// IsList reports whether the field holds a list of values.
func (d FieldDescriptor) IsList() bool {
	return d.List != nil
}

// IsSlider reports whether the field renders as a slider.
func (d FieldDescriptor) IsSlider() bool {
	return d.ItemUI != nil && d.ItemUI.IsSlider
}

// Description returns the field-level help text, if any.
func (d FieldDescriptor) Description() string {
	if d.FieldUI == nil {
		return ""
	}
	return d.FieldUI.Description
}

// Step returns the numeric increment, defaulting to 1.
func (d FieldDescriptor) Step() float64 {
	if d.ItemUI == nil || d.ItemUI.Step <= 0 {
		return 1
	}
	return d.ItemUI.Step
}
