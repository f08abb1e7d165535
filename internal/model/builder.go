package model

import "github.com/goliatone/go-typeinput/pkg/schema"

// Builder turns decorated types into field descriptors.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	opts.Widgets = options.Widgets
	return &Builder{opts: opts}
}

// Build runs the extraction pipeline over one declared field. def is the
// declared default; nil means none. Errors are *Error values bound to name.
func (b *Builder) Build(name string, typ schema.Type, def any) (FieldDescriptor, error) {
	desc, err := b.build(name, typ, def)
	if err != nil {
		return FieldDescriptor{}, withField(err, name)
	}
	return desc, nil
}

func (b *Builder) build(name string, typ schema.Type, def any) (FieldDescriptor, error) {
	if isNil(def) {
		def = nil
	}
	if err := validateShape(name, typ); err != nil {
		return FieldDescriptor{}, err
	}

	t, optional, err := extractOptional(name, typ, def)
	if err != nil {
		return FieldDescriptor{}, err
	}
	t, fieldUI, err := extractFieldUI(name, t)
	if err != nil {
		return FieldDescriptor{}, err
	}
	t, list, err := extractList(name, t)
	if err != nil {
		return FieldDescriptor{}, err
	}
	t, itemUI, err := extractItemUI(name, t)
	if err != nil {
		return FieldDescriptor{}, err
	}
	t, choices, err := extractChoices(name, t)
	if err != nil {
		return FieldDescriptor{}, err
	}
	t, constraints, err := extractConstraints(name, t)
	if err != nil {
		return FieldDescriptor{}, err
	}
	kind, err := baseKind(name, t)
	if err != nil {
		return FieldDescriptor{}, err
	}
	if err := validateConstraintShape(name, kind, constraints); err != nil {
		return FieldDescriptor{}, err
	}

	desc := FieldDescriptor{
		Name:        name,
		Kind:        kind,
		Optional:    optional,
		List:        list,
		Choices:     choices,
		Constraints: constraints,
		ItemUI:      itemUI,
		FieldUI:     fieldUI,
		WidgetHint:  widgetHint(constraints),
	}

	if err := validateSlider(desc); err != nil {
		return FieldDescriptor{}, err
	}
	normalized, err := normalizeDefault(desc, def)
	if err != nil {
		return FieldDescriptor{}, err
	}
	desc.Default = normalized
	desc.Widget = b.resolveWidget(desc)
	desc.Label = b.label(desc)
	return desc, nil
}

// baseKind checks that only a supported scalar remains once every facet has
// been extracted.
func baseKind(name string, t schema.Type) (ScalarKind, error) {
	if t.Shape != schema.ShapeScalar || !t.Scalar.Valid() {
		return "", shapeError(name, CodeUnsupportedType, "unsupported type %s", t)
	}
	return t.Scalar, nil
}

func (b *Builder) resolveWidget(desc FieldDescriptor) string {
	if b.opts.Widgets != nil {
		if widget, ok := b.opts.Widgets.Resolve(desc); ok && widget != "" {
			return widget
		}
	}
	return ResolveWidget(desc)
}

func (b *Builder) label(desc FieldDescriptor) string {
	if desc.FieldUI != nil && desc.FieldUI.Label != "" {
		return desc.FieldUI.Label
	}
	return b.opts.Labeler(desc.Name)
}
