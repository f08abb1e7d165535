package schema

import (
	"fmt"
	"strings"
)

// ScalarKind enumerates the six value kinds a field can carry.
type ScalarKind string

const (
	KindInt    ScalarKind = "int"
	KindFloat  ScalarKind = "float"
	KindString ScalarKind = "str"
	KindBool   ScalarKind = "bool"
	KindDate   ScalarKind = "date"
	KindTime   ScalarKind = "time"
)

// Valid reports whether k names one of the supported scalar kinds.
func (k ScalarKind) Valid() bool {
	switch k {
	case KindInt, KindFloat, KindString, KindBool, KindDate, KindTime:
		return true
	}
	return false
}

// Numeric reports whether k is Int or Float.
func (k ScalarKind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// TypeShape identifies the node variant of a Type.
type TypeShape uint8

const (
	ShapeUnsupported TypeShape = iota
	ShapeScalar
	ShapeAbsent
	ShapeUnion
	ShapeList
	ShapeEnum
	ShapeLiteral
)

func (s TypeShape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeAbsent:
		return "absent"
	case ShapeUnion:
		return "union"
	case ShapeList:
		return "list"
	case ShapeEnum:
		return "enum"
	case ShapeLiteral:
		return "literal"
	default:
		return "unsupported"
	}
}

// Type is a decorated type expression: a structural node plus the ordered
// metadata fragments attached to it. Meta is ordered innermost first, so a
// later fragment comes from an outer decoration layer.
type Type struct {
	Shape    TypeShape
	Scalar   ScalarKind
	Name     string
	Members  []Type
	Item     *Type
	Enum     *EnumType
	Literals []any
	Meta     []Fragment
}

// EnumType is a named set of symbolic members with underlying values.
type EnumType struct {
	Name    string
	Members []EnumMember
}

// EnumMember is one symbolic name and its underlying scalar value.
type EnumMember struct {
	Enum  string `json:"-"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Member looks up an enum member by its symbolic name.
func (e *EnumType) Member(name string) (EnumMember, bool) {
	if e == nil {
		return EnumMember{}, false
	}
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// MustMember is Member that panics when the name is unknown.
func (e *EnumType) MustMember(name string) EnumMember {
	m, ok := e.Member(name)
	if !ok {
		panic(fmt.Sprintf("schema: enum %s has no member %q", e.Name, name))
	}
	return m
}

func Int() Type    { return Scalar(KindInt) }
func Float() Type  { return Scalar(KindFloat) }
func String() Type { return Scalar(KindString) }
func Bool() Type   { return Scalar(KindBool) }
func Date() Type   { return Scalar(KindDate) }
func Time() Type   { return Scalar(KindTime) }

// Scalar returns a bare scalar node of kind k.
func Scalar(k ScalarKind) Type {
	return Type{Shape: ShapeScalar, Scalar: k}
}

// Inferred returns a scalar node whose kind is taken from the options of a
// Dropdown fragment attached to it.
func Inferred() Type {
	return Type{Shape: ShapeScalar}
}

// None returns the absence marker used as the second arm of optional unions.
func None() Type {
	return Type{Shape: ShapeAbsent}
}

// Named returns a node for a type outside the supported set. The pipeline
// rejects it with an unsupported-type error naming it.
func Named(name string) Type {
	return Type{Shape: ShapeUnsupported, Name: name}
}

// Union joins members into a single union node. A single member is returned
// unchanged.
func Union(members ...Type) Type {
	if len(members) == 1 {
		return members[0]
	}
	return Type{Shape: ShapeUnion, Members: append([]Type(nil), members...)}
}

// Optional is shorthand for Union(t, None()).
func Optional(t Type) Type {
	return Union(t, None())
}

// OptionalEnabled declares t optional with the toggle initially on.
func OptionalEnabled(t Type) Type {
	return Union(t, Annotated(None(), OptionalMarker{Enabled: true}))
}

// OptionalDisabled declares t optional with the toggle initially off.
func OptionalDisabled(t Type) Type {
	return Union(t, Annotated(None(), OptionalMarker{Enabled: false}))
}

// List returns a list node whose items are item.
func List(item Type) Type {
	it := item
	return Type{Shape: ShapeList, Item: &it}
}

// BareList returns a list node without an item type.
func BareList() Type {
	return Type{Shape: ShapeList}
}

// Enum declares an enum type with the given members.
func Enum(name string, members ...EnumMember) Type {
	et := &EnumType{Name: name, Members: make([]EnumMember, len(members))}
	for i, m := range members {
		m.Enum = name
		et.Members[i] = m
	}
	return Type{Shape: ShapeEnum, Name: name, Enum: et}
}

// Member is a convenience constructor for EnumMember.
func Member(name string, value any) EnumMember {
	return EnumMember{Name: name, Value: value}
}

// Literal declares an inline fixed set of scalar values.
func Literal(values ...any) Type {
	return Type{Shape: ShapeLiteral, Literals: append([]any(nil), values...)}
}

// Annotated attaches fragments to t. Nested calls flatten, keeping inner
// fragments before outer ones.
func Annotated(t Type, fragments ...Fragment) Type {
	out := t
	meta := make([]Fragment, 0, len(t.Meta)+len(fragments))
	meta = append(meta, t.Meta...)
	for _, f := range fragments {
		if f != nil {
			meta = append(meta, f)
		}
	}
	out.Meta = meta
	return out
}

// Bare returns t without its fragments.
func (t Type) Bare() Type {
	out := t
	out.Meta = nil
	return out
}

// WithMeta returns t with its fragments replaced by meta.
func (t Type) WithMeta(meta []Fragment) Type {
	out := t
	if len(meta) == 0 {
		out.Meta = nil
		return out
	}
	out.Meta = append([]Fragment(nil), meta...)
	return out
}

// String renders a compact, human readable form used in error messages.
func (t Type) String() string {
	var base string
	switch t.Shape {
	case ShapeScalar:
		base = string(t.Scalar)
		if base == "" {
			base = "inferred"
		}
	case ShapeAbsent:
		base = "None"
	case ShapeUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		base = strings.Join(parts, " | ")
	case ShapeList:
		if t.Item == nil {
			base = "list"
		} else {
			base = "list[" + t.Item.String() + "]"
		}
	case ShapeEnum:
		base = t.Name
		if base == "" {
			base = "enum"
		}
	case ShapeLiteral:
		parts := make([]string, len(t.Literals))
		for i, v := range t.Literals {
			parts[i] = fmt.Sprintf("%#v", v)
		}
		base = "Literal[" + strings.Join(parts, ", ") + "]"
	default:
		base = t.Name
		if base == "" {
			base = "unknown"
		}
	}
	if len(t.Meta) == 0 {
		return base
	}
	names := make([]string, len(t.Meta))
	for i, f := range t.Meta {
		names[i] = f.FragmentName()
	}
	return "Annotated[" + base + ", " + strings.Join(names, ", ") + "]"
}
