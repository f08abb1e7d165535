package uischema

import (
	"fmt"

	pkgmodel "github.com/goliatone/go-typeinput/pkg/model"
)

// Decorator applies a form's per-field widget overrides to built
// descriptors.
type Decorator struct {
	form Form
}

// NewDecorator builds a Decorator for form. A form without overrides yields
// a no-op decorator.
func NewDecorator(form Form) *Decorator {
	return &Decorator{form: form}
}

// Decorator returns the widget override decorator of f.
func (f Form) Decorator() pkgmodel.Decorator {
	return NewDecorator(f)
}

// Decorate implements model.Decorator. Overrides naming unknown fields are
// reported as errors.
func (d *Decorator) Decorate(fields []pkgmodel.FieldDescriptor) ([]pkgmodel.FieldDescriptor, error) {
	if d == nil || len(d.form.Widgets) == 0 {
		return fields, nil
	}

	out := append([]pkgmodel.FieldDescriptor(nil), fields...)
	applied := make(map[string]struct{}, len(d.form.Widgets))
	for i := range out {
		widget, ok := d.form.Widgets[out[i].Name]
		if !ok {
			continue
		}
		out[i].Widget = widget
		applied[out[i].Name] = struct{}{}
	}
	for name := range d.form.Widgets {
		if _, ok := applied[name]; !ok {
			return nil, fmt.Errorf("uischema: form %q overrides the widget of unknown field %q", d.form.ID, name)
		}
	}
	return out, nil
}
