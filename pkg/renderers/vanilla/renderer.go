package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/render"
)

const formTemplate = "form.html"

type Option func(*config)

type config struct {
	templateFS fs.FS
	baseDir    string
	classes    Classes
	stylesheet bool
	policy     *bluemonday.Policy
	inputs     map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain form.html and field.html.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(path)
	}
}

// WithClasses overrides the chrome CSS classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithInlineStylesheet embeds the default stylesheet in a <style> block.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.stylesheet = enabled
	}
}

// WithDescriptionPolicy replaces the sanitizer applied to form and field
// descriptions before they are emitted unescaped.
func WithDescriptionPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithWidgetInput renders a custom widget as an input of inputType, or as a
// textarea when inputType is "textarea". Widgets that are neither built in
// nor mapped are refused by render.Registry.
func WithWidgetInput(widget, inputType string) Option {
	return func(cfg *config) {
		if widget == "" || inputType == "" {
			return
		}
		if cfg.inputs == nil {
			cfg.inputs = make(map[string]string)
		}
		cfg.inputs[widget] = inputType
	}
}

// Renderer emits a plain HTML form, one control per field descriptor.
type Renderer struct {
	engine     *engine
	classes    Classes
	stylesheet string
	policy     *bluemonday.Policy
	inputs     map[string]string
}

var (
	_ render.Renderer      = (*Renderer)(nil)
	_ render.WidgetSupport = (*Renderer)(nil)
)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), policy: bluemonday.UGCPolicy()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.baseDir != "" {
		cfg.templateFS = nil
	}

	eng, err := newEngine(cfg.templateFS, cfg.baseDir)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure templates: %w", err)
	}

	r := &Renderer{engine: eng, classes: cfg.classes.withDefaults(), policy: cfg.policy, inputs: cfg.inputs}
	if cfg.stylesheet {
		r.stylesheet = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

// SupportsWidget reports whether widget has a built-in control or was mapped
// with WithWidgetInput.
func (r *Renderer) SupportsWidget(widget string) bool {
	if _, ok := r.inputs[widget]; ok {
		return true
	}
	_, _, ok := builtinControl(model.FieldDescriptor{Widget: widget})
	return ok
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.engine == nil {
		return nil, fmt.Errorf("vanilla renderer: template engine is nil")
	}

	view := r.formView(form, options)
	out, err := r.engine.render(formTemplate, pongo2.Context{
		"form":       view,
		"classes":    r.classes,
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return out, nil
}
