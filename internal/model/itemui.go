package model

import (
	"math"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// extractItemUI consumes per-value presentation fragments. Same-kind
// fragments resolve last wins.
func extractItemUI(field string, t schema.Type) (schema.Type, *ItemUIMeta, error) {
	ui := ItemUIMeta{Step: 1}
	found := false
	var rest []schema.Fragment

	for _, frag := range t.Meta {
		switch f := frag.(type) {
		case schema.Step:
			v := float64(f)
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return schema.Type{}, nil, extractionError(field, CodeInvalidFragment, "step must be a positive number, got %v", v)
			}
			ui.Step = v
		case schema.Placeholder:
			ui.Placeholder = string(f)
		case schema.PatternMessage:
			ui.PatternMessage = string(f)
		case schema.Rows:
			if f <= 0 {
				return schema.Type{}, nil, extractionError(field, CodeInvalidFragment, "rows must be positive, got %d", int(f))
			}
			ui.Rows = int(f)
		case schema.Slider:
			ui.IsSlider = true
			ui.ShowSliderValue = f.ShowValue
		case schema.IsPassword:
			ui.IsPassword = true
		default:
			rest = append(rest, frag)
			continue
		}
		found = true
	}

	t = t.WithMeta(rest)
	if !found {
		return t, nil, nil
	}
	return t, &ui, nil
}
