package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedWidget is returned when a renderer cannot draw a widget the
// form resolved to.
var ErrUnsupportedWidget = errors.New("render: unsupported widget")

// WidgetSupport is implemented by renderers that handle only part of the
// widget vocabulary. Renderers without it accept every widget.
type WidgetSupport interface {
	SupportsWidget(widget string) bool
}

// Registry holds renderers by name. The first registered renderer answers
// requests that do not name one.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	first     string
}

// NewRegistry registers renderers in order.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer)}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.first == "" {
		r.first = name
	}
	return nil
}

// Names returns the registered renderer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the renderer called name, or the first registered one when
// name is empty, after checking it can draw every field of form.
func (r *Registry) Resolve(name string, form Form) (Renderer, error) {
	r.mu.RLock()
	if name == "" {
		name = r.first
	}
	renderer, ok := r.renderers[name]
	r.mu.RUnlock()

	if name == "" {
		return nil, errors.New("render: no renderers registered")
	}
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	if err := checkWidgets(renderer, form); err != nil {
		return nil, err
	}
	return renderer, nil
}

func checkWidgets(renderer Renderer, form Form) error {
	support, ok := renderer.(WidgetSupport)
	if !ok {
		return nil
	}
	var missing []string
	for _, field := range form.Fields {
		if !support.SupportsWidget(field.Widget) {
			missing = append(missing, fmt.Sprintf("%s (%s)", field.Name, field.Widget))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s cannot render %s", ErrUnsupportedWidget, renderer.Name(), strings.Join(missing, ", "))
}
