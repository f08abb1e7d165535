package model

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Labeler derives the display label of a field that declares none.
	Labeler func(string) string
	// Widgets overrides widget resolution. Descriptors it has no opinion on
	// fall back to the built-in rules.
	Widgets WidgetResolver
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
	}
}
