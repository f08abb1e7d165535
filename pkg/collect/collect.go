// Package collect turns field declarations into descriptors. Declarations
// come from a fluent Schema, from tagged struct types, from function
// parameter tables, or from the declaration loaders in pkg/uischema and
// pkg/openapi.
package collect

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

// Field is one declared input: a name, its decorated type and the declared
// default (nil for none).
type Field struct {
	Name    string
	Type    schema.Type
	Default any
}

// Collector produces declared fields from some source.
type Collector interface {
	Collect() ([]Field, error)
}

// CollectorFunc adapts a function into a Collector.
type CollectorFunc func() ([]Field, error)

// Collect calls the underlying function.
func (fn CollectorFunc) Collect() ([]Field, error) {
	return fn()
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	builder     model.Builder
	decorators  []model.Decorator
	skipInvalid bool
	logger      *zap.Logger
}

// WithBuilder overrides the descriptor builder.
func WithBuilder(builder model.Builder) Option {
	return func(cfg *config) {
		if builder != nil {
			cfg.builder = builder
		}
	}
}

// WithDecorators runs decorators over the built descriptors, in order.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(cfg *config) {
		cfg.decorators = append(cfg.decorators, decorators...)
	}
}

// SkipInvalid logs and drops fields the pipeline rejects instead of failing
// the whole collection.
func SkipInvalid() Option {
	return func(cfg *config) {
		cfg.skipInvalid = true
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Analyze builds one descriptor per field, preserving declaration order.
// Field names must be unique and non-empty.
func Analyze(fields []Field, opts ...Option) ([]model.FieldDescriptor, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.builder == nil {
		cfg.builder = model.NewBuilder()
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	out := make([]model.FieldDescriptor, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, errors.New("collect: field name is required")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("collect: duplicate field %q", name)
		}
		seen[name] = struct{}{}

		desc, err := cfg.builder.Build(name, field.Type, field.Default)
		if err != nil {
			var typed *model.Error
			if cfg.skipInvalid && errors.As(err, &typed) {
				cfg.logger.Warn("skipping field",
					zap.String("field", name),
					zap.String("type", field.Type.String()),
					zap.String("code", string(typed.Code)),
					zap.Error(err))
				continue
			}
			return nil, err
		}
		cfg.logger.Debug("field analyzed",
			zap.String("field", name),
			zap.String("kind", string(desc.Kind)),
			zap.String("widget", desc.Widget))
		out = append(out, desc)
	}

	for _, decorator := range cfg.decorators {
		if decorator == nil {
			continue
		}
		decorated, err := decorator.Decorate(out)
		if err != nil {
			return nil, fmt.Errorf("collect: decorate: %w", err)
		}
		out = decorated
	}
	return out, nil
}

// From collects fields from c and analyzes them.
func From(c Collector, opts ...Option) ([]model.FieldDescriptor, error) {
	if c == nil {
		return nil, errors.New("collect: collector is required")
	}
	fields, err := c.Collect()
	if err != nil {
		return nil, err
	}
	return Analyze(fields, opts...)
}
