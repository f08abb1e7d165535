package model

import "github.com/goliatone/go-typeinput/pkg/schema"

// extractList unwraps a list node into its item type. Only length bounds may
// decorate the list itself.
func extractList(field string, t schema.Type) (schema.Type, *ListMeta, error) {
	if t.Shape != schema.ShapeList {
		return t, nil, nil
	}
	if t.Item == nil {
		return schema.Type{}, nil, extractionError(field, CodeMissingListItemType, "list requires an item type")
	}
	item := *t.Item
	if item.Shape == schema.ShapeList {
		return schema.Type{}, nil, extractionError(field, CodeNestedListsUnsupported, "nested lists are not supported: %s", t)
	}

	var bounds schema.Constraints
	for _, frag := range t.Meta {
		c, ok := frag.(schema.Constraints)
		if !ok {
			return schema.Type{}, nil, extractionError(field, CodeInvalidListLevelMetadata,
				"%s must be declared on the list item type, not on the list", frag.FragmentName())
		}
		for _, key := range c.Keys() {
			if key != "min_length" && key != "max_length" {
				return schema.Type{}, nil, extractionError(field, CodeInvalidListLevelMetadata,
					"list-level constraints only accept min_length and max_length, got %s", key)
			}
		}
		bounds = bounds.Merge(c)
	}

	if bounds.MinLength != nil && *bounds.MinLength < 0 {
		return schema.Type{}, nil, constraintError(field, CodeInvalidConstraint, "list min_length must be >= 0, got %d", *bounds.MinLength)
	}
	if bounds.MaxLength != nil && *bounds.MaxLength < 0 {
		return schema.Type{}, nil, constraintError(field, CodeInvalidConstraint, "list max_length must be >= 0, got %d", *bounds.MaxLength)
	}
	if bounds.MinLength != nil && bounds.MaxLength != nil && *bounds.MinLength > *bounds.MaxLength {
		return schema.Type{}, nil, constraintError(field, CodeInvalidConstraint,
			"list min_length %d exceeds max_length %d", *bounds.MinLength, *bounds.MaxLength)
	}

	return item, &ListMeta{MinLength: bounds.MinLength, MaxLength: bounds.MaxLength}, nil
}
