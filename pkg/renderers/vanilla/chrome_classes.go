package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "typeinput-form"
	ClassHeader  ChromeClass = "typeinput-header"
	ClassField   ChromeClass = "typeinput-field"
	ClassActions ChromeClass = "typeinput-actions"
	ClassErrors  ChromeClass = "typeinput-errors"
)

// Classes overrides the chrome classes. Empty entries keep the defaults.
type Classes struct {
	Form    string
	Header  string
	Field   string
	Actions string
	Errors  string
}

func (c Classes) withDefaults() Classes {
	if c.Form == "" {
		c.Form = string(ClassForm)
	}
	if c.Header == "" {
		c.Header = string(ClassHeader)
	}
	if c.Field == "" {
		c.Field = string(ClassField)
	}
	if c.Actions == "" {
		c.Actions = string(ClassActions)
	}
	if c.Errors == "" {
		c.Errors = string(ClassErrors)
	}
	return c
}
