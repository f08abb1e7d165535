package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-typeinput/internal/loader"
	internalParser "github.com/goliatone/go-typeinput/internal/openapi/parser"
	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/model"
	pkgopenapi "github.com/goliatone/go-typeinput/pkg/openapi"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/renderers/tui"
	"github.com/goliatone/go-typeinput/pkg/renderers/vanilla"
	"github.com/goliatone/go-typeinput/pkg/schema"
	"github.com/goliatone/go-typeinput/pkg/source"
	"github.com/goliatone/go-typeinput/pkg/uischema"
	"github.com/goliatone/go-typeinput/pkg/validation"
	"github.com/goliatone/go-typeinput/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom descriptor builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithWidgetRegistry resolves widgets through registry when the default
// descriptor builder is used. Ignored together with WithModelBuilder.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithUIDecorators registers decorators that run over every built form,
// after the form's own widget overrides.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithProvider registers a named dropdown provider for both UI schema and
// OpenAPI documents. Ignored by a parser injected with WithParser.
func WithProvider(name string, provider schema.OptionsProvider) Option {
	return func(o *Orchestrator) {
		if o.providers == nil {
			o.providers = make(map[string]schema.OptionsProvider)
		}
		o.providers[name] = provider
	}
}

// WithUISchemaFS supplies the built-in forms served when a request names no
// source or document. Pass nil to disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithSkipInvalid drops fields whose declarations fail to build instead of
// failing the whole form.
func WithSkipInvalid() Option {
	return func(o *Orchestrator) {
		o.skipInvalid = true
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from declaration document to
// descriptors, validation results and rendered output.
type Orchestrator struct {
	loader            source.Loader
	parser            pkgopenapi.Parser
	builder           model.Builder
	widgets           *widgets.Registry
	registry          *render.Registry
	defaultRenderer   string
	decorators        []model.Decorator
	providers         map[string]schema.OptionsProvider
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	skipInvalid       bool
	logger            *zap.Logger
	initialiseErr     error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes which form to process.
type Request struct {
	// Source identifies where the declaration document lives.
	Source source.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *source.Document

	// FormID selects a form: a UI schema form id, an OpenAPI operation id, or
	// "schema:<Component>". Optional when the document declares one form.
	FormID string

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	// RenderOptions carries prefilled values and server-side errors.
	RenderOptions render.RenderOptions
}

// Entry summarises one form a document declares.
type Entry struct {
	ID          string
	Title       string
	Description string
	Format      Format
	Fields      int

	collector collect.Collector
	decorator model.Decorator
}

// Forms lists the forms declared by the requested document, sorted by id.
// Without a source or document the built-in forms are listed.
func (o *Orchestrator) Forms(ctx context.Context, req Request) ([]Entry, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	if req.Source == nil && req.Document == nil {
		return o.builtinEntries()
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	format, err := DetectFormat(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %s: %w", doc.Location(), err)
	}

	var entries []Entry
	switch format {
	case FormatOpenAPI:
		ops, err := o.parser.Operations(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
		}
		for _, op := range ops {
			title := op.Summary
			if title == "" {
				title = op.ID
			}
			entries = append(entries, Entry{
				ID: op.ID, Title: title, Description: op.Description,
				Format: FormatOpenAPI, Fields: len(op.Fields), collector: op,
			})
		}
	default:
		forms, err := uischema.Parse(doc.Raw(), doc.Location(), o.uiSchemaOptions()...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		entries = uiSchemaEntries(forms)
	}

	o.logger.Debug("forms listed",
		zap.String("location", doc.Location()),
		zap.String("format", string(format)),
		zap.Int("count", len(entries)),
	)
	return entries, nil
}

// Form builds the descriptors of the requested form.
func (o *Orchestrator) Form(ctx context.Context, req Request) (render.Form, error) {
	entries, err := o.Forms(ctx, req)
	if err != nil {
		return render.Form{}, err
	}
	entry, err := selectEntry(entries, req.FormID)
	if err != nil {
		return render.Form{}, err
	}

	opts := []collect.Option{collect.WithBuilder(o.builder), collect.WithLogger(o.logger)}
	decorators := o.decorators
	if entry.decorator != nil {
		decorators = append([]model.Decorator{entry.decorator}, decorators...)
	}
	if len(decorators) > 0 {
		opts = append(opts, collect.WithDecorators(decorators...))
	}
	if o.skipInvalid {
		opts = append(opts, collect.SkipInvalid())
	}

	fields, err := collect.From(entry.collector, opts...)
	if err != nil {
		return render.Form{}, fmt.Errorf("orchestrator: form %q: %w", entry.ID, err)
	}
	o.logger.Debug("form built", zap.String("form", entry.ID), zap.Int("fields", len(fields)))
	return render.Form{ID: entry.ID, Title: entry.Title, Description: entry.Description, Fields: fields}, nil
}

// Generate builds the requested form and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer, form)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Validate builds the requested form and validates values against it.
func (o *Orchestrator) Validate(ctx context.Context, req Request, values map[string]any) (validation.Result, render.Form, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return validation.Result{}, render.Form{}, err
	}
	result := validation.ValidateValues(form.Fields, values)
	o.logger.Debug("values validated",
		zap.String("form", form.ID),
		zap.Bool("valid", result.Valid),
		zap.Int("issues", len(result.Issues)),
	)
	return result, form, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.Names()
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (source.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return source.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) builtinEntries() ([]Entry, error) {
	if o.uiSchemaFS == nil {
		return nil, errors.New("orchestrator: source or document is required")
	}
	store, err := uischema.LoadFS(o.uiSchemaFS, o.uiSchemaOptions()...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load ui schema: %w", err)
	}
	forms := make([]uischema.Form, 0, len(store.IDs()))
	for _, id := range store.IDs() {
		form, _ := store.Form(id)
		forms = append(forms, form)
	}
	return uiSchemaEntries(forms), nil
}

func (o *Orchestrator) uiSchemaOptions() []uischema.LoadOption {
	opts := make([]uischema.LoadOption, 0, len(o.providers))
	for name, provider := range o.providers {
		opts = append(opts, uischema.WithProvider(name, provider))
	}
	return opts
}

func uiSchemaEntries(forms []uischema.Form) []Entry {
	entries := make([]Entry, 0, len(forms))
	for _, form := range forms {
		title := form.Title
		if title == "" {
			title = model.DefaultLabeler(form.ID)
		}
		entries = append(entries, Entry{
			ID: form.ID, Title: title, Description: form.Description,
			Format: FormatUISchema, Fields: len(form.Fields),
			collector: form, decorator: form.Decorator(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func selectEntry(entries []Entry, id string) (Entry, error) {
	if id == "" {
		if len(entries) == 1 {
			return entries[0], nil
		}
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		return Entry{}, fmt.Errorf("orchestrator: form id is required, document declares %v", ids)
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("orchestrator: form %q not found", id)
}

func (o *Orchestrator) rendererFor(name string, form render.Form) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Resolve(target, form)
	if err == nil {
		return renderer, nil
	}
	if name != "" || errors.Is(err, render.ErrUnsupportedWidget) {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	o.logger.Debug("default renderer unavailable", zap.String("renderer", target), zap.Error(err))
	return o.registry.Resolve("", form)
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(source.NewLoaderOptions())
	}
	if o.parser == nil {
		opts := make([]pkgopenapi.ParserOption, 0, len(o.providers))
		for name, provider := range o.providers {
			opts = append(opts, pkgopenapi.WithProvider(name, provider))
		}
		o.parser = internalParser.New(pkgopenapi.NewParserOptions(opts...))
	}
	if o.builder == nil {
		var opts []model.BuilderOption
		if o.widgets != nil {
			opts = append(opts, model.WithWidgetResolver(o.widgets))
		}
		o.builder = model.NewBuilder(opts...)
	}
	if o.registry == nil {
		renderers := []render.Renderer{}
		html, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			renderers = append(renderers, html)
		}
		renderers = append(renderers, tui.New())
		o.registry, err = render.NewRegistry(renderers...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: renderer registry: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if !o.uiSchemaSpecified {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
}
