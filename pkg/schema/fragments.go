package schema

// Fragment is one piece of metadata attached to a type through Annotated.
type Fragment interface {
	FragmentName() string
}

// OptionsProvider produces dropdown options at extraction time. The result
// must be a slice or array of scalars sharing one kind.
type OptionsProvider func() (any, error)

// Label sets the display label of a field.
type Label string

// Description sets the help text of a field.
type Description string

// Step sets the numeric increment of a field. It must be positive.
type Step float64

// Placeholder sets the placeholder text of a field.
type Placeholder string

// PatternMessage overrides the message shown when a pattern check fails.
type PatternMessage string

// Rows turns a string field into a multi-line textarea. It must be positive.
type Rows int

// Slider renders a numeric field as a slider. Both bounds must be declared.
type Slider struct {
	ShowValue bool
}

// IsPassword masks a string field.
type IsPassword struct{}

// Dropdown sources field options from a provider.
type Dropdown struct {
	Provider OptionsProvider
}

// OptionalMarker is attached to the absence arm of a union to set the initial
// state of the optional toggle.
type OptionalMarker struct {
	Enabled bool
}

// Constraints carries value constraints. Unset keys are nil. When attached to
// a list node only MinLength and MaxLength are allowed and they bound the
// number of items.
type Constraints struct {
	Ge        *float64 `json:"ge,omitempty"`
	Le        *float64 `json:"le,omitempty"`
	Gt        *float64 `json:"gt,omitempty"`
	Lt        *float64 `json:"lt,omitempty"`
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`
}

func (Label) FragmentName() string          { return "Label" }
func (Description) FragmentName() string    { return "Description" }
func (Step) FragmentName() string           { return "Step" }
func (Placeholder) FragmentName() string    { return "Placeholder" }
func (PatternMessage) FragmentName() string { return "PatternMessage" }
func (Rows) FragmentName() string           { return "Rows" }
func (Slider) FragmentName() string         { return "Slider" }
func (IsPassword) FragmentName() string     { return "IsPassword" }
func (Dropdown) FragmentName() string       { return "Dropdown" }
func (OptionalMarker) FragmentName() string { return "OptionalMarker" }
func (Constraints) FragmentName() string    { return "Field" }

// NewSlider returns a slider fragment that shows the current value.
func NewSlider() Slider {
	return Slider{ShowValue: true}
}

// Keys lists the constraint keys set on c, in declaration order.
func (c Constraints) Keys() []string {
	var keys []string
	if c.Ge != nil {
		keys = append(keys, "ge")
	}
	if c.Le != nil {
		keys = append(keys, "le")
	}
	if c.Gt != nil {
		keys = append(keys, "gt")
	}
	if c.Lt != nil {
		keys = append(keys, "lt")
	}
	if c.MinLength != nil {
		keys = append(keys, "min_length")
	}
	if c.MaxLength != nil {
		keys = append(keys, "max_length")
	}
	if c.Pattern != nil {
		keys = append(keys, "pattern")
	}
	return keys
}

// Merge overlays the keys set on outer onto c. Unset keys in outer leave c
// untouched.
func (c Constraints) Merge(outer Constraints) Constraints {
	if outer.Ge != nil {
		c.Ge = outer.Ge
	}
	if outer.Le != nil {
		c.Le = outer.Le
	}
	if outer.Gt != nil {
		c.Gt = outer.Gt
	}
	if outer.Lt != nil {
		c.Lt = outer.Lt
	}
	if outer.MinLength != nil {
		c.MinLength = outer.MinLength
	}
	if outer.MaxLength != nil {
		c.MaxLength = outer.MaxLength
	}
	if outer.Pattern != nil {
		c.Pattern = outer.Pattern
	}
	return c
}

func Ge(v float64) Constraints     { return Constraints{Ge: &v} }
func Le(v float64) Constraints     { return Constraints{Le: &v} }
func Gt(v float64) Constraints     { return Constraints{Gt: &v} }
func Lt(v float64) Constraints     { return Constraints{Lt: &v} }
func MinLength(n int) Constraints  { return Constraints{MinLength: &n} }
func MaxLength(n int) Constraints  { return Constraints{MaxLength: &n} }
func Pattern(p string) Constraints { return Constraints{Pattern: &p} }

func Between(lo, hi float64) Constraints {
	return Constraints{Ge: &lo, Le: &hi}
}

func Length(lo, hi int) Constraints {
	return Constraints{MinLength: &lo, MaxLength: &hi}
}
