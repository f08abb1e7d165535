package render

import (
	"context"

	"github.com/goliatone/go-typeinput/pkg/model"
)

// Form is the unit handed to renderers: presentation text plus the built
// descriptors, in declaration order. Description may carry sanitized markup.
type Form struct {
	ID          string
	Title       string
	Description string
	Fields      []model.FieldDescriptor
}

// Field returns the descriptor named name.
func (f Form) Field(name string) (model.FieldDescriptor, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return model.FieldDescriptor{}, false
}

// Renderer turns a Form into a byte representation (HTML, terminal prompts,
// JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
