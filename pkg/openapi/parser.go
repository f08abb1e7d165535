package openapi

import (
	"context"

	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/schema"
	"github.com/goliatone/go-typeinput/pkg/source"
)

// ExtensionKey names the schema extension carrying presentation fragments
// such as `{slider: true, step: 5}`.
const ExtensionKey = "x-typeinput"

// ComponentPrefix prefixes the ids of forms built from component schemas.
const ComponentPrefix = "schema:"

// Operation is one form found in a document: an operation request body or
// a component schema.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Fields      []collect.Field
}

// Collect implements collect.Collector.
func (o Operation) Collect() ([]collect.Field, error) {
	return append([]collect.Field(nil), o.Fields...), nil
}

// Parser extracts forms from OpenAPI documents.
type Parser interface {
	Operations(ctx context.Context, doc source.Document) ([]Operation, error)
}

// ParserOptions configures parsing behaviour.
type ParserOptions struct {
	// ResolveReferences allows external $ref targets and validates the
	// document after loading.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without any form.
	AllowPartialDocuments bool

	// Providers serves `dropdown` names found in x-typeinput extensions.
	Providers map[string]schema.OptionsProvider
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles external reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments allows documents without forms.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// WithProvider registers a dropdown provider.
func WithProvider(name string, provider schema.OptionsProvider) ParserOption {
	return func(opts *ParserOptions) {
		if opts.Providers == nil {
			opts.Providers = make(map[string]schema.OptionsProvider)
		}
		opts.Providers[name] = provider
	}
}

// NewParserOptions applies options and returns the configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Find returns the operation with id.
func Find(ops []Operation, id string) (Operation, bool) {
	for _, op := range ops {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}
