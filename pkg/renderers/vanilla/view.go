package vanilla

import (
	"strings"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

type formView struct {
	ID          string
	Title       string
	Description string
	Action      string
	Method      string
	SubmitLabel string
	Hidden      []render.HiddenField
	Errors      []string
	Fields      []fieldView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

// fieldView is the flattened, string-typed shape the templates consume.
type fieldView struct {
	Name        string
	ID          string
	Label       string
	Description string
	Widget      string
	Control     string
	InputType   string

	Value   string
	Slots   []string
	Checked bool
	Options []optionView

	Required        bool
	Optional        bool
	OptionalEnabled bool
	Multiple        bool

	Min          string
	Max          string
	ExclusiveMin bool
	ExclusiveMax bool
	Step         string
	MinLength    string
	MaxLength    string
	Pattern      string
	MinItems     string
	MaxItems     string

	Placeholder    string
	PatternMessage string
	Rows           int
	Accept         string
	ShowValue      bool
	Errors         []string
}

func (r *Renderer) formView(form render.Form, options render.RenderOptions) formView {
	hidden := options.Hidden
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	switch method {
	case "", "POST":
		method = "POST"
	case "GET":
	default:
		hidden = render.MergeHiddenFields(hidden, render.Hidden("_method", method))
		method = "POST"
	}

	submit := strings.TrimSpace(options.SubmitLabel)
	if submit == "" {
		submit = "Submit"
	}

	view := formView{
		ID:          form.ID,
		Title:       form.Title,
		Description: r.policy.Sanitize(form.Description),
		Action:      options.Action,
		Method:      method,
		SubmitLabel: submit,
		Hidden:      render.SortedHiddenFields(hidden),
		Errors:      render.MergeFormErrors(options.FormErrors),
		Fields:      make([]fieldView, 0, len(form.Fields)),
	}
	for _, field := range form.Fields {
		view.Fields = append(view.Fields, r.fieldView(form.ID, field, options))
	}
	return view
}

func (r *Renderer) fieldView(formID string, d model.FieldDescriptor, options render.RenderOptions) fieldView {
	v := fieldView{
		Name:        d.Name,
		ID:          controlID(formID, d.Name),
		Label:       d.Label,
		Description: r.policy.Sanitize(d.Description()),
		Widget:      d.Widget,
		Required:    !d.IsOptional(),
		Optional:    d.IsOptional(),
		Multiple:    d.IsList(),
		Errors:      options.FieldErrors(d.Name),
	}
	if d.Optional != nil {
		v.OptionalEnabled = d.Optional.Enabled
	}

	current, ok := options.Value(d.Name)
	if !ok {
		current = d.Default
	}
	values := valueStrings(current)

	applyConstraints(&v, d)
	if d.ItemUI != nil {
		v.Placeholder = d.ItemUI.Placeholder
		v.PatternMessage = d.ItemUI.PatternMessage
		v.Rows = d.ItemUI.Rows
		v.ShowValue = d.ItemUI.ShowSliderValue
	}
	if d.Kind.Numeric() {
		v.Step = formatValue(d.Step())
	}
	if d.List != nil {
		v.MinItems = formatInt(d.List.MinLength)
		v.MaxItems = formatInt(d.List.MaxLength)
	}

	v.Control, v.InputType = r.control(d)
	switch v.Control {
	case "select":
		v.Options = optionViews(d, values)
	case "checkbox":
		v.Checked = len(values) > 0 && values[0] == "true"
	case "file":
		v.Accept = schema.FileAccept(d.Widget)
	}

	if len(values) > 0 {
		v.Value = values[0]
	}
	if d.IsList() && v.Control != "select" && v.Control != "file" {
		v.Slots = listSlots(values, d.List)
	}
	return v
}

// control maps a widget onto a template control and an input type. Custom
// widgets use their WithWidgetInput mapping; anything else falls back to a
// text input.
func (r *Renderer) control(d model.FieldDescriptor) (control, inputType string) {
	if t, ok := r.inputs[d.Widget]; ok {
		if t == "textarea" {
			return "textarea", ""
		}
		return "input", t
	}
	if control, inputType, ok := builtinControl(d); ok {
		return control, inputType
	}
	return "input", "text"
}

func builtinControl(d model.FieldDescriptor) (control, inputType string, ok bool) {
	switch d.Widget {
	case model.WidgetText:
		return "input", "text", true
	case model.WidgetDropdown:
		return "select", "", true
	case model.WidgetSlider:
		return "input", "range", true
	case model.WidgetPassword:
		return "input", "password", true
	case model.WidgetTextarea:
		return "textarea", "", true
	case model.WidgetCheckbox:
		if d.IsList() {
			return "input", "text", true
		}
		return "checkbox", "checkbox", true
	case model.WidgetNumber:
		return "input", "number", true
	case model.WidgetDate:
		return "input", "date", true
	case model.WidgetTime:
		return "input", "time", true
	case model.WidgetColor:
		return "input", "color", true
	case model.WidgetEmail:
		return "input", "email", true
	case model.WidgetImageFile, model.WidgetVideoFile, model.WidgetAudioFile,
		model.WidgetDataFile, model.WidgetTextFile, model.WidgetDocumentFile, model.WidgetFile:
		return "file", "file", true
	}
	return "", "", false
}

func applyConstraints(v *fieldView, d model.FieldDescriptor) {
	c := d.Constraints
	if c == nil {
		return
	}
	switch {
	case c.Ge != nil:
		v.Min = formatFloat(c.Ge)
	case c.Gt != nil:
		v.Min, v.ExclusiveMin = formatFloat(c.Gt), true
	}
	switch {
	case c.Le != nil:
		v.Max = formatFloat(c.Le)
	case c.Lt != nil:
		v.Max, v.ExclusiveMax = formatFloat(c.Lt), true
	}
	v.MinLength = formatInt(c.MinLength)
	v.MaxLength = formatInt(c.MaxLength)
	if c.Pattern != nil {
		v.Pattern = *c.Pattern
	}
}

func optionViews(d model.FieldDescriptor, selected []string) []optionView {
	if d.Choices == nil {
		return nil
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s] = struct{}{}
	}
	out := make([]optionView, 0, len(d.Choices.Options))
	for _, opt := range d.Choices.Options {
		value := formatValue(opt)
		_, isSelected := chosen[value]
		out = append(out, optionView{Value: value, Label: optionLabel(d.Choices, opt), Selected: isSelected})
	}
	return out
}

// optionLabel shows enum member names; literal and provider options show
// their value.
func optionLabel(c *model.ChoiceMeta, opt any) string {
	if c.Enum != nil {
		value := formatValue(opt)
		for _, m := range c.Enum.Members {
			if formatValue(m.Value) == value {
				return m.Name
			}
		}
	}
	return formatValue(opt)
}

// listSlots returns the current items plus one blank slot while the list is
// below its maximum.
func listSlots(values []string, bounds *model.ListMeta) []string {
	slots := append([]string(nil), values...)
	if bounds == nil || bounds.MaxLength == nil || len(slots) < *bounds.MaxLength {
		slots = append(slots, "")
	}
	return slots
}

func valueStrings(v any) []string {
	switch value := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, formatValue(item))
		}
		return out
	case []string:
		return append([]string(nil), value...)
	}
	return []string{formatValue(v)}
}
