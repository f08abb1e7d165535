package model

import "github.com/goliatone/go-typeinput/pkg/schema"

// WidgetRule maps a finished descriptor to a widget tag when Match holds.
type WidgetRule struct {
	Name  string
	Match func(FieldDescriptor) bool
}

// WidgetResolver picks the widget tag of a descriptor. The second result is
// false when the resolver has no opinion.
type WidgetResolver interface {
	Resolve(FieldDescriptor) (string, bool)
}

var hintWidgets = []string{
	WidgetColor,
	WidgetEmail,
	WidgetImageFile,
	WidgetVideoFile,
	WidgetAudioFile,
	WidgetDataFile,
	WidgetTextFile,
	WidgetDocumentFile,
	WidgetFile,
}

var scalarWidgets = map[ScalarKind]string{
	KindString: WidgetText,
	KindInt:    WidgetNumber,
	KindFloat:  WidgetNumber,
	KindBool:   WidgetCheckbox,
	KindDate:   WidgetDate,
	KindTime:   WidgetTime,
}

// BuiltinWidgetRules returns the widget rules in priority order: choices,
// slider, password, textarea, pattern hints, then the scalar default. List
// fields resolve on their item facets, which the descriptor already carries.
func BuiltinWidgetRules() []WidgetRule {
	rules := []WidgetRule{
		{Name: WidgetDropdown, Match: func(d FieldDescriptor) bool { return d.Choices != nil }},
		{Name: WidgetSlider, Match: func(d FieldDescriptor) bool { return d.ItemUI != nil && d.ItemUI.IsSlider }},
		{Name: WidgetPassword, Match: func(d FieldDescriptor) bool { return d.ItemUI != nil && d.ItemUI.IsPassword }},
		{Name: WidgetTextarea, Match: func(d FieldDescriptor) bool { return d.ItemUI != nil && d.ItemUI.Rows > 0 }},
	}
	for _, hint := range hintWidgets {
		rules = append(rules, WidgetRule{Name: hint, Match: func(d FieldDescriptor) bool {
			return d.WidgetHint == hint
		}})
	}
	for _, kind := range []ScalarKind{KindString, KindInt, KindFloat, KindBool, KindDate, KindTime} {
		rules = append(rules, WidgetRule{Name: scalarWidgets[kind], Match: func(d FieldDescriptor) bool {
			return d.Kind == kind
		}})
	}
	return rules
}

var builtinRules = BuiltinWidgetRules()

// ResolveWidget applies the built-in rules.
func ResolveWidget(d FieldDescriptor) string {
	for _, rule := range builtinRules {
		if rule.Match(d) {
			return rule.Name
		}
	}
	return WidgetText
}

func widgetHint(c *ConstraintsMeta) string {
	if c == nil || c.Pattern == nil {
		return ""
	}
	hint, _ := schema.SpecialWidget(*c.Pattern)
	return hint
}
