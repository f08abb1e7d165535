package typeinput

import (
	"context"

	"github.com/goliatone/go-typeinput/pkg/orchestrator"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/source"
	"github.com/goliatone/go-typeinput/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Form is a titled, ordered set of field descriptors.
type Form = render.Form

// Request selects a document, a form and a renderer.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the declaration document, builds the requested form and
// renders it using the named renderer. An empty renderer name selects the
// HTML renderer.
func Generate(ctx context.Context, src source.Source, formID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   src,
		FormID:   formID,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders a form using a pre-loaded document, bypassing
// the loader stage.
func GenerateFromDocument(ctx context.Context, doc source.Document, formID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		FormID:   formID,
		Renderer: rendererName,
	})
}

// ValidateDocument validates submitted values against a form declared in doc.
func ValidateDocument(ctx context.Context, doc source.Document, formID string, values map[string]any, options ...orchestrator.Option) (validation.Result, error) {
	gen := orchestrator.New(options...)
	result, _, err := gen.Validate(ctx, orchestrator.Request{Document: &doc, FormID: formID}, values)
	return result, err
}
