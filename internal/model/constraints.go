package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// extractConstraints merges every Constraints fragment, inner to outer, with
// same key last wins. Any fragment still attached afterwards was not consumed
// by an earlier stage and is rejected.
func extractConstraints(field string, t schema.Type) (schema.Type, *ConstraintsMeta, error) {
	var (
		merged schema.Constraints
		found  bool
	)
	for _, frag := range t.Meta {
		c, ok := frag.(schema.Constraints)
		if !ok {
			return schema.Type{}, nil, extractionError(field, CodeUnexpectedMetadata,
				"%s is not allowed on %s", frag.FragmentName(), t.Bare())
		}
		merged = merged.Merge(c)
		found = true
	}
	t = t.WithMeta(nil)
	if !found || len(merged.Keys()) == 0 {
		return t, nil, nil
	}
	return t, &merged, nil
}

// validateConstraintShape checks that the merged constraints make sense for
// the scalar kind they apply to.
func validateConstraintShape(field string, kind ScalarKind, c *ConstraintsMeta) error {
	if c == nil {
		return nil
	}
	numeric := c.Ge != nil || c.Le != nil || c.Gt != nil || c.Lt != nil
	textual := c.MinLength != nil || c.MaxLength != nil || c.Pattern != nil

	if numeric && !kind.Numeric() {
		return constraintError(field, CodeInvalidConstraint, "numeric bounds cannot apply to %s", kind)
	}
	if textual && kind != KindString {
		return constraintError(field, CodeInvalidConstraint, "length and pattern constraints cannot apply to %s", kind)
	}
	for key, bound := range map[string]*float64{"ge": c.Ge, "le": c.Le, "gt": c.Gt, "lt": c.Lt} {
		if bound != nil && math.IsNaN(*bound) {
			return constraintError(field, CodeInvalidConstraint, "%s must be a number", key)
		}
	}
	if c.MinLength != nil && *c.MinLength < 0 {
		return constraintError(field, CodeInvalidConstraint, "min_length must be >= 0, got %d", *c.MinLength)
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		return constraintError(field, CodeInvalidConstraint, "max_length must be >= 0, got %d", *c.MaxLength)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return constraintError(field, CodeInvalidConstraint, "min_length %d exceeds max_length %d", *c.MinLength, *c.MaxLength)
	}
	if c.Pattern != nil {
		if _, err := compilePattern(*c.Pattern); err != nil {
			e := constraintError(field, CodeInvalidConstraint, "invalid pattern %q: %v", *c.Pattern, err)
			e.Err = err
			return e
		}
	}
	return nil
}

var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// checkConstraints applies bounds, length and pattern checks to a coerced
// scalar. Lengths count runes.
func checkConstraints(d FieldDescriptor, v any) error {
	c := d.Constraints
	if c == nil {
		return nil
	}

	if f, ok := asFloat(v); ok {
		switch {
		case c.Ge != nil && !(f >= *c.Ge):
			return violation(d, *c.Ge, v, "must be greater than or equal to %s", formatNumber(*c.Ge))
		case c.Gt != nil && !(f > *c.Gt):
			return violation(d, *c.Gt, v, "must be greater than %s", formatNumber(*c.Gt))
		case c.Le != nil && !(f <= *c.Le):
			return violation(d, *c.Le, v, "must be less than or equal to %s", formatNumber(*c.Le))
		case c.Lt != nil && !(f < *c.Lt):
			return violation(d, *c.Lt, v, "must be less than %s", formatNumber(*c.Lt))
		}
		return nil
	}

	s, ok := v.(string)
	if !ok {
		return nil
	}
	length := utf8.RuneCountInString(s)
	if c.MinLength != nil && length < *c.MinLength {
		return violation(d, *c.MinLength, v, "must have at least %d characters", *c.MinLength)
	}
	if c.MaxLength != nil && length > *c.MaxLength {
		return violation(d, *c.MaxLength, v, "must have at most %d characters", *c.MaxLength)
	}
	if c.Pattern != nil {
		re, err := compilePattern(*c.Pattern)
		if err != nil {
			return violation(d, *c.Pattern, v, "pattern %q does not compile", *c.Pattern)
		}
		if !re.MatchString(s) {
			if d.ItemUI != nil && d.ItemUI.PatternMessage != "" {
				e := violation(d, *c.Pattern, v, "does not match")
				e.Message = d.ItemUI.PatternMessage
				return e
			}
			return violation(d, *c.Pattern, v, "must match pattern %q", *c.Pattern)
		}
	}
	return nil
}

func violation(d FieldDescriptor, bound, value any, format string, args ...any) *Error {
	e := coercionError(d.Name, CodeConstraintViolation, "value %s %s", formatValue(value), fmt.Sprintf(format, args...))
	e.Bound = bound
	e.Value = value
	return e
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case float64:
		return formatNumber(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
