package model

import (
	"github.com/goliatone/go-typeinput/internal/model"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

// Builder converts decorated types into field descriptors.
type Builder interface {
	Build(name string, typ schema.Type, def any) (FieldDescriptor, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	widgets WidgetResolver
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithWidgetResolver consults resolver before the built-in widget rules.
func WithWidgetResolver(resolver WidgetResolver) BuilderOption {
	return func(opts *builderOptions) {
		opts.widgets = resolver
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{Widgets: cfg.widgets}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}
