package model

import "github.com/goliatone/go-typeinput/pkg/schema"

// validateShape rejects the structurally unsupported forms before any
// extraction runs: the bare absence type and unions other than {T, None}.
func validateShape(field string, t schema.Type) error {
	switch t.Shape {
	case schema.ShapeAbsent:
		return shapeError(field, CodeInvalidShape, "type cannot be only None")
	case schema.ShapeUnion:
		if len(t.Meta) > 0 {
			return shapeError(field, CodeInvalidShape, "metadata must be attached to a union member, not to the union %s", t)
		}
		if len(t.Members) != 2 {
			return shapeError(field, CodeInvalidShape, "union must have exactly two members (T | None), got %d in %s", len(t.Members), t)
		}
		for _, m := range t.Members {
			if m.Shape == schema.ShapeAbsent {
				return nil
			}
		}
		return shapeError(field, CodeInvalidShape, "union %s must include None", t)
	}
	return nil
}

// extractOptional unwraps a {T, None} union. The enabled flag comes from an
// explicit marker on the None arm, or from whether a default is declared.
func extractOptional(field string, t schema.Type, def any) (schema.Type, *OptionalMeta, error) {
	if t.Shape != schema.ShapeUnion {
		return t, nil, nil
	}

	var (
		inner    *schema.Type
		absences int
		marker   *schema.OptionalMarker
	)
	for i := range t.Members {
		member := t.Members[i]
		if member.Shape != schema.ShapeAbsent {
			if inner != nil {
				return schema.Type{}, nil, shapeError(field, CodeUnsupportedUnion, "only T | None unions are supported, got %s", t)
			}
			inner = &member
			continue
		}
		absences++
		for _, frag := range member.Meta {
			if m, ok := frag.(schema.OptionalMarker); ok {
				mm := m
				marker = &mm
			}
		}
	}

	if absences > 1 {
		return schema.Type{}, nil, shapeError(field, CodeDuplicateAbsenceMarker, "union %s declares None more than once", t)
	}
	if inner == nil {
		return schema.Type{}, nil, shapeError(field, CodeUnsupportedUnion, "union %s has no non-None member", t)
	}

	enabled := def != nil
	if marker != nil {
		enabled = marker.Enabled
	}
	return *inner, &OptionalMeta{Enabled: enabled}, nil
}
