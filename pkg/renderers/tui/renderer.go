package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/schema"
	"github.com/goliatone/go-typeinput/pkg/validation"
)

const noneOption = "(none)"

// Renderer implements render.Renderer for terminal sessions. Text prompts
// hand the field validator to the driver, which rejects invalid answers
// inline. Every answer is validated again here; invalid answers are reported
// and the field is asked again.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field in order and serializes the validated
// values. Absent optional fields are omitted from the output.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(form, values)
}

// Collect prompts for every field and returns the validated native values.
func (r *Renderer) Collect(ctx context.Context, form render.Form, opts render.RenderOptions) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if form.Title != "" {
		if err := r.info(ctx, form.Title); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.FormErrors {
		if err := r.fail(ctx, message); err != nil {
			return nil, err
		}
	}

	state := NewState(opts.Values, opts.Errors)
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any, len(form.Fields))
	for name, value := range state.Values() {
		if value != nil {
			values[name] = value
		}
	}
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.FieldDescriptor, state *State) error {
	for _, message := range state.ErrorsFor(field.Name) {
		if err := r.fail(ctx, fmt.Sprintf("%s: %s", field.Label, message)); err != nil {
			return err
		}
	}

	current, ok := state.Value(field.Name)
	if !ok {
		current = field.Default
	}

	for attempt := 1; ; attempt++ {
		raw, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}
		value, err := validation.Validate(field, raw)
		if err == nil {
			state.Set(field.Name, value)
			return nil
		}
		issue := validation.IssueFromError(field.Name, err)
		if err := r.fail(ctx, fmt.Sprintf("%s: %s", field.Label, issue.Message)); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("tui: field %s: %w", field.Name, err)
		}
	}
}

// ask shows the prompt matching the field's widget and returns the raw
// answer. nil means the user left an optional field empty.
func (r *Renderer) ask(ctx context.Context, field model.FieldDescriptor, current any) (any, error) {
	message := field.Label
	help := helpText(field)

	if field.Choices != nil {
		return r.askChoice(ctx, field, current, message, help)
	}
	if field.Kind == model.KindBool && !field.IsList() {
		def, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: help})
	}

	def := formatList(current)
	parse := func(answer string) any {
		if strings.TrimSpace(answer) == "" && def != "" {
			answer = def
		}
		if strings.TrimSpace(answer) == "" && field.IsOptional() {
			return nil
		}
		if field.IsList() {
			return splitList(answer)
		}
		return answer
	}
	check := func(answer string) error {
		if _, err := validation.Validate(field, parse(answer)); err != nil {
			return errors.New(validation.IssueFromError(field.Name, err).Message)
		}
		return nil
	}

	var (
		answer string
		err    error
	)
	switch {
	case field.Widget == model.WidgetPassword:
		answer, err = r.driver.Password(ctx, InputConfig{Message: message, Help: help, Check: check})
	case field.Widget == model.WidgetTextarea:
		answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: def, Help: help, Check: check})
	default:
		answer, err = r.driver.Input(ctx, InputConfig{Message: message, Default: def, Help: help, Check: check})
	}
	if err != nil {
		return nil, err
	}
	return parse(answer), nil
}

func (r *Renderer) askChoice(ctx context.Context, field model.FieldDescriptor, current any, message, help string) (any, error) {
	options := make([]string, len(field.Choices.Options))
	for i, opt := range field.Choices.Options {
		options[i] = optionLabel(field.Choices, opt)
	}

	if field.IsList() {
		selected := make(map[string]struct{})
		for _, v := range asSlice(current) {
			selected[formatValue(v)] = struct{}{}
		}
		var defaults []int
		for i, opt := range field.Choices.Options {
			if _, ok := selected[formatValue(opt)]; ok {
				defaults = append(defaults, i)
			}
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: options, Defaults: defaults, Help: help})
		if err != nil {
			return nil, err
		}
		if len(indices) == 0 && field.IsOptional() {
			return nil, nil
		}
		out := make([]any, 0, len(indices))
		for _, idx := range indices {
			out = append(out, field.Choices.Options[idx])
		}
		return out, nil
	}

	offset := 0
	if field.IsOptional() {
		options = append([]string{noneOption}, options...)
		offset = 1
	}
	defaultIdx := -1
	if current != nil {
		want := formatValue(current)
		for i, opt := range field.Choices.Options {
			if formatValue(opt) == want {
				defaultIdx = i + offset
				break
			}
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIdx, Help: help})
	if err != nil {
		return nil, err
	}
	idx -= offset
	if idx < 0 {
		if offset == 1 && idx == -1 {
			return nil, nil
		}
		return nil, fmt.Errorf("tui: invalid selection for %s", field.Name)
	}
	if idx >= len(field.Choices.Options) {
		return nil, fmt.Errorf("tui: invalid selection for %s", field.Name)
	}
	return field.Choices.Options[idx], nil
}

func (r *Renderer) info(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+message)
}

func (r *Renderer) fail(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+message)
}

func (r *Renderer) serialize(form render.Form, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values)), nil
	default:
		return json.Marshal(values)
	}
}

// helpText joins the description, placeholder and bounds into one line.
func helpText(field model.FieldDescriptor) string {
	var parts []string
	if desc := field.Description(); desc != "" {
		parts = append(parts, desc)
	}
	if field.ItemUI != nil && field.ItemUI.Placeholder != "" {
		parts = append(parts, "e.g. "+field.ItemUI.Placeholder)
	}
	if c := field.Constraints; c != nil {
		if c.Ge != nil && c.Le != nil {
			parts = append(parts, fmt.Sprintf("between %s and %s", formatValue(*c.Ge), formatValue(*c.Le)))
		}
		if c.Pattern != nil && field.ItemUI != nil && field.ItemUI.PatternMessage != "" {
			parts = append(parts, field.ItemUI.PatternMessage)
		}
	}
	if field.IsList() && field.Choices == nil {
		parts = append(parts, "separate items with commas")
	}
	if field.IsOptional() && field.Kind != model.KindBool {
		parts = append(parts, "optional, leave blank to skip")
	}
	return strings.Join(parts, "; ")
}

func optionLabel(c *model.ChoiceMeta, opt any) string {
	if c.Enum != nil {
		want := formatValue(opt)
		for _, m := range c.Enum.Members {
			if formatValue(m.Value) == want {
				return m.Name
			}
		}
	}
	return formatValue(opt)
}

func splitList(answer string) []any {
	var out []any
	for _, part := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func asSlice(v any) []any {
	switch value := v.(type) {
	case nil:
		return nil
	case []any:
		return value
	case []string:
		out := make([]any, len(value))
		for i, s := range value {
			out[i] = s
		}
		return out
	}
	return []any{v}
}

func formatList(v any) string {
	items := asSlice(v)
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = formatValue(item)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case schema.EnumMember:
		return formatValue(value.Value)
	}
	return fmt.Sprint(v)
}

func encodeForm(values map[string]any) string {
	out := url.Values{}
	for name, value := range values {
		for _, item := range asSlice(value) {
			out.Add(name, formatValue(item))
		}
	}
	return out.Encode()
}

func prettyPrint(form render.Form, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		seen[field.Name] = struct{}{}
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Label, formatList(value))
	}
	var extra []string
	for name := range values {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Fprintf(&b, "%s: %s\n", name, formatList(values[name]))
	}
	return b.String()
}
