package collect

import "github.com/goliatone/go-typeinput/pkg/schema"

// Schema is a fluent, explicit list of field declarations. It is the
// registration step used where reflection is not wanted.
type Schema struct {
	fields []Field
}

// NewSchema starts an empty declaration list.
func NewSchema() *Schema {
	return &Schema{}
}

// Add declares a field without a default.
func (s *Schema) Add(name string, typ schema.Type) *Schema {
	return s.AddDefault(name, typ, nil)
}

// AddDefault declares a field with a default value.
func (s *Schema) AddDefault(name string, typ schema.Type, def any) *Schema {
	s.fields = append(s.fields, Field{Name: name, Type: typ, Default: def})
	return s
}

// Fields returns a copy of the declarations in order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Collect implements Collector.
func (s *Schema) Collect() ([]Field, error) {
	return s.Fields(), nil
}
