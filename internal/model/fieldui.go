package model

import "github.com/goliatone/go-typeinput/pkg/schema"

type labelScan struct {
	ui             FieldUIMeta
	hasLabel       bool
	hasDescription bool
}

func (s labelScan) found() bool {
	return s.hasLabel || s.hasDescription
}

func (s labelScan) meta() *FieldUIMeta {
	if !s.found() {
		return nil
	}
	ui := s.ui
	return &ui
}

// scanLabels consumes Label and Description fragments, last one wins, and
// returns the remaining fragments in order.
func scanLabels(meta []schema.Fragment) ([]schema.Fragment, labelScan) {
	var (
		scan labelScan
		rest []schema.Fragment
	)
	for _, frag := range meta {
		switch f := frag.(type) {
		case schema.Label:
			scan.ui.Label = string(f)
			scan.hasLabel = true
		case schema.Description:
			scan.ui.Description = string(f)
			scan.hasDescription = true
		default:
			rest = append(rest, frag)
		}
	}
	return rest, scan
}

// extractFieldUI pulls the field-level label and description. A list whose
// outer layer carries neither falls back to its item decoration. A list that
// declares its own rejects labels on the item.
func extractFieldUI(field string, t schema.Type) (schema.Type, *FieldUIMeta, error) {
	rest, outer := scanLabels(t.Meta)
	t = t.WithMeta(rest)

	if t.Shape != schema.ShapeList || t.Item == nil {
		return t, outer.meta(), nil
	}

	itemRest, item := scanLabels(t.Item.Meta)
	if !item.found() {
		return t, outer.meta(), nil
	}
	if outer.found() {
		if item.hasLabel {
			return schema.Type{}, nil, extractionError(field, CodeItemLevelLabel,
				"label %q must be declared on the list, not on its item type", item.ui.Label)
		}
		return schema.Type{}, nil, extractionError(field, CodeItemLevelDescription,
			"description %q must be declared on the list, not on its item type", item.ui.Description)
	}

	stripped := t.Item.WithMeta(itemRest)
	t.Item = &stripped
	return t, item.meta(), nil
}
