package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-typeinput/pkg/model"
)

// HiddenField is a hidden input emitted ahead of the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries a CSRF token under the input name the backend expects.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns hidden fields ordered by name.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	merged := MergeHiddenFields(fields)
	if len(merged) == 0 {
		return nil
	}
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, len(names))
	for i, name := range names {
		out[i] = HiddenField{Name: name, Value: merged[name]}
	}
	return out
}

// ValuesFromForm turns an HTML form submission into raw values ready for
// validation.ValidateValues. Blank inputs become explicit nil so a cleared
// optional field stays absent instead of falling back to its default.
// Checkbox fields are false when unchecked. Names the form does not declare
// are passed through so validation can report them, except those listed in
// ignore (typically hidden inputs such as CSRF tokens).
func ValuesFromForm(form Form, submitted url.Values, ignore ...string) map[string]any {
	out := make(map[string]any, len(submitted))
	declared := make(map[string]struct{}, len(form.Fields)+len(ignore))
	for _, name := range ignore {
		declared[name] = struct{}{}
	}

	for _, field := range form.Fields {
		declared[field.Name] = struct{}{}
		raw, present := submitted[field.Name]

		switch {
		case field.IsList():
			if !present && field.HasDefault() {
				continue
			}
			var items []any
			for _, v := range raw {
				if strings.TrimSpace(v) != "" {
					items = append(items, submittedScalar(field, v))
				}
			}
			if len(items) == 0 {
				out[field.Name] = nil
				continue
			}
			out[field.Name] = items
		case field.Kind == model.KindBool && field.Choices == nil:
			out[field.Name] = checked(raw)
		default:
			if !present {
				continue
			}
			v := ""
			if len(raw) > 0 {
				v = raw[len(raw)-1]
			}
			if strings.TrimSpace(v) == "" {
				out[field.Name] = nil
				continue
			}
			out[field.Name] = submittedScalar(field, v)
		}
	}

	for name, raw := range submitted {
		if _, ok := declared[name]; ok || len(raw) == 0 {
			continue
		}
		out[name] = raw[len(raw)-1]
	}
	return out
}

func submittedScalar(field model.FieldDescriptor, v string) any {
	if field.Kind == model.KindString {
		return v
	}
	return strings.TrimSpace(v)
}

func checked(raw []string) bool {
	for _, v := range raw {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1", "yes":
			return true
		}
	}
	return false
}
