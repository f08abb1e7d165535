package model

// Decorator adjusts built descriptors before they reach a renderer, for
// example to reassign widgets. Decorators must return new descriptors rather
// than mutate shared facets.
type Decorator interface {
	Decorate([]FieldDescriptor) ([]FieldDescriptor, error)
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func([]FieldDescriptor) ([]FieldDescriptor, error)

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(fields []FieldDescriptor) ([]FieldDescriptor, error) {
	return fn(fields)
}
