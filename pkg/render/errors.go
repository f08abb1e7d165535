package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-typeinput/pkg/validation"
)

// ErrorMapping splits validation feedback into field-level and form-level
// messages keyed by field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Options returns RenderOptions carrying the mapped messages.
func (m ErrorMapping) Options(values map[string]any) RenderOptions {
	return RenderOptions{Values: values, Errors: m.Fields, FormErrors: m.Form}
}

// ErrorsFromResult maps the issues of a validation result onto the form.
// List item issues are prefixed with their position. Issues naming a field
// the form does not declare become form-level messages.
func ErrorsFromResult(form Form, result validation.Result) ErrorMapping {
	known := fieldNames(form)
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for _, issue := range result.Issues {
		message := strings.TrimSpace(issue.Message)
		if message == "" {
			message = string(issue.Code)
		}
		if issue.Index != nil {
			message = fmt.Sprintf("item %d: %s", *issue.Index+1, message)
		}
		if _, ok := known[issue.Field]; !ok {
			if issue.Field != "" {
				message = issue.Field + ": " + message
			}
			mapping.Form = append(mapping.Form, message)
			continue
		}
		mapping.Fields[issue.Field] = append(mapping.Fields[issue.Field], message)
	}
	return mapping.normalize()
}

// MapErrorPayload normalises server error payloads, including JSON pointer
// and bracketed paths such as "/body/tags/0" or "$.tags[0]", onto field
// names. Unknown paths are kept as form-level errors so messages are not lost.
func MapErrorPayload(form Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping.normalize()
	}
	known := fieldNames(form)

	for rawPath, messages := range payload {
		name, index, ok := mapErrorPath(rawPath, known)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		for _, message := range messages {
			if index >= 0 && strings.TrimSpace(message) != "" {
				message = fmt.Sprintf("item %d: %s", index+1, strings.TrimSpace(message))
			}
			mapping.Fields[name] = append(mapping.Fields[name], message)
		}
	}
	return mapping.normalize()
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func (m ErrorMapping) normalize() ErrorMapping {
	for name, messages := range m.Fields {
		if clean := normalizeMessages(messages); clean != nil {
			m.Fields[name] = clean
		} else {
			delete(m.Fields, name)
		}
	}
	if len(m.Fields) == 0 {
		m.Fields = nil
	}
	m.Form = normalizeMessages(m.Form)
	return m
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func fieldNames(form Form) map[string]struct{} {
	out := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		out[field.Name] = struct{}{}
	}
	return out
}

// mapErrorPath finds the first segment naming a known field, skipping
// transport wrappers like "body" or "payload". A numeric segment right after
// the field is reported as the list index, otherwise index is -1.
func mapErrorPath(raw string, known map[string]struct{}) (name string, index int, ok bool) {
	if isFormLevelKey(raw) {
		return "", -1, false
	}
	segments := parsePathSegments(raw)
	for i, segment := range segments {
		if _, found := known[segment]; !found {
			if isWrapperSegment(segment) {
				continue
			}
			return "", -1, false
		}
		index = -1
		if i+1 < len(segments) {
			if n, err := strconv.Atoi(segments[i+1]); err == nil && n >= 0 {
				index = n
			}
		}
		return segment, index, true
	}
	return "", -1, false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "attributes", "values":
		return true
	default:
		return false
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
