package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-typeinput/pkg/model"
)

// Matcher decides whether a widget should handle the supplied descriptor.
type Matcher func(field model.FieldDescriptor) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Built-in rules are registered from BuiltinPriority downwards in steps of
// builtinStep, so callers can slot custom matchers between them.
const (
	BuiltinPriority = 1000
	builtinStep     = 10
)

// Registry selects widget tags for descriptors based on registered matchers.
// Higher priority wins; ties fall back to registration order. An empty
// registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget rules
// registered in their fixed priority order.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without built-in rules.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget tag for a descriptor. It satisfies
// model.WidgetResolver so a registry can be handed to model.NewBuilder.
func (r *Registry) Resolve(field model.FieldDescriptor) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, re-resolving the widget of every
// descriptor. Descriptors no rule matches keep their current widget.
func (r *Registry) Decorate(fields []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
	if r == nil || len(fields) == 0 {
		return fields, nil
	}
	decorated := make([]model.FieldDescriptor, len(fields))
	for idx, field := range fields {
		if widget, ok := r.Resolve(field); ok && widget != "" {
			field.Widget = widget
		}
		decorated[idx] = field
	}
	return decorated, nil
}

func (r *Registry) registerBuiltins() {
	for idx, builtin := range model.BuiltinWidgetRules() {
		r.Register(builtin.Name, BuiltinPriority-idx*builtinStep, Matcher(builtin.Match))
	}
}
