package uischema

import (
	"sort"

	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

// Store keeps the parsed forms of one or more declaration documents. It is
// safe for concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form is one declared form: presentation text plus its fields in order.
type Form struct {
	ID          string
	Source      string
	Title       string
	Description string
	Icon        string
	Fields      []collect.Field
	Widgets     map[string]string
}

// Collect implements collect.Collector.
func (f Form) Collect() ([]collect.Field, error) {
	return append([]collect.Field(nil), f.Fields...), nil
}

// Form returns the form with the supplied id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs lists the form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `mapstructure:"forms"`
}

type formFile struct {
	Title       string      `mapstructure:"title"`
	Description string      `mapstructure:"description"`
	Icon        string      `mapstructure:"icon"`
	Fields      []fieldFile `mapstructure:"fields"`
}

type fieldFile struct {
	Name     string   `mapstructure:"name"`
	Type     typeFile `mapstructure:"type"`
	Default  any      `mapstructure:"default"`
	Optional any      `mapstructure:"optional"`
	Widget   string   `mapstructure:"widget"`
}

// typeFile is the data form of a schema.Type. A plain string is shorthand
// for {kind: <string>}; the kind may also name an alias such as email.
type typeFile struct {
	Kind    string           `mapstructure:"kind"`
	Item    *typeFile        `mapstructure:"item"`
	Enum    string           `mapstructure:"enum"`
	Members []memberFile     `mapstructure:"members"`
	Values  []any            `mapstructure:"values"`
	Meta    []map[string]any `mapstructure:"meta"`
}

type memberFile struct {
	Name  string `mapstructure:"name"`
	Value any    `mapstructure:"value"`
}

type constraintsFile struct {
	Ge        *float64 `mapstructure:"ge"`
	Le        *float64 `mapstructure:"le"`
	Gt        *float64 `mapstructure:"gt"`
	Lt        *float64 `mapstructure:"lt"`
	MinLength *int     `mapstructure:"min_length"`
	MaxLength *int     `mapstructure:"max_length"`
	Pattern   *string  `mapstructure:"pattern"`
}

func (c constraintsFile) fragment() schema.Constraints {
	return schema.Constraints{
		Ge:        c.Ge,
		Le:        c.Le,
		Gt:        c.Gt,
		Lt:        c.Lt,
		MinLength: c.MinLength,
		MaxLength: c.MaxLength,
		Pattern:   c.Pattern,
	}
}
