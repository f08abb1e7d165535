package validation

import (
	"errors"
	"sort"
	"strings"

	internalmodel "github.com/goliatone/go-typeinput/internal/model"
	"github.com/goliatone/go-typeinput/pkg/model"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Field   string     `json:"field,omitempty"`
	Index   *int       `json:"index,omitempty"`
	Code    model.Code `json:"code,omitempty"`
	Message string     `json:"message"`
}

// Result captures the outcome of validating a set of submitted values.
type Result struct {
	Valid  bool           `json:"valid"`
	Values map[string]any `json:"values,omitempty"`
	Issues []Issue        `json:"issues,omitempty"`
}

// Validate coerces raw into the native representation described by field.
// Wire-format strings are parsed; enum fields also accept member names. A
// nil value with a nil error means an absent optional field.
func Validate(field model.FieldDescriptor, raw any) (any, error) {
	return internalmodel.Validate(field, raw)
}

// ValidateValues validates every field against values, keyed by field name.
// Missing keys fall back to the field's default, then to absence. All issues
// are collected; Values only holds fields that passed.
func ValidateValues(fields []model.FieldDescriptor, values map[string]any) Result {
	result := Result{Valid: true, Values: make(map[string]any, len(fields))}
	known := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		known[field.Name] = struct{}{}
		raw, ok := values[field.Name]
		if !ok && field.HasDefault() {
			raw = field.Default
		}
		value, err := Validate(field, raw)
		if err != nil {
			result.Valid = false
			result.Issues = append(result.Issues, IssueFromError(field.Name, err))
			continue
		}
		result.Values[field.Name] = value
	}

	var unknown []string
	for name := range values {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		result.Valid = false
		result.Issues = append(result.Issues, Issue{Field: name, Message: "unknown field"})
	}

	if len(result.Values) == 0 {
		result.Values = nil
	}
	return result
}

// IssueFromError converts an error into an Issue, stripping the field prefix
// the model errors carry.
func IssueFromError(field string, err error) Issue {
	if err == nil {
		return Issue{Field: field, Message: "unknown error"}
	}
	var typed *model.Error
	if errors.As(err, &typed) {
		issue := Issue{Field: field, Code: typed.Code, Message: strings.TrimSpace(typed.Message)}
		if typed.Field != "" {
			issue.Field = typed.Field
		}
		if typed.Index >= 0 {
			idx := typed.Index
			issue.Index = &idx
		}
		if issue.Message == "" {
			issue.Message = string(typed.Code)
		}
		return issue
	}
	return Issue{Field: field, Message: strings.TrimSpace(err.Error())}
}

// Messages groups issue messages by field, in the shape renderers expect.
func (r Result) Messages() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}
