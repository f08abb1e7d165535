package model

// RefreshChoices re-invokes the dropdown provider of d and returns a copy
// carrying the new options. Unlike the initial build, the declared default
// must be among the refreshed options. Descriptors without a provider are
// returned unchanged.
func RefreshChoices(d FieldDescriptor) (FieldDescriptor, error) {
	if d.Choices == nil || d.Choices.Source != SourceProvider {
		return d, nil
	}

	options, kind, err := invokeProvider(d.Name, d.Choices.Provider)
	if err != nil {
		return FieldDescriptor{}, err
	}
	if kind != d.Kind {
		return FieldDescriptor{}, choiceError(d.Name, CodeProviderTypeMismatch,
			"dropdown options are %s but the field type is %s", kind, d.Kind)
	}

	refreshed := d
	choices := *d.Choices
	choices.Options = options
	refreshed.Choices = &choices

	if d.Default == nil {
		return refreshed, nil
	}
	defaults := []any{d.Default}
	if d.List != nil {
		if items, ok := asSequence(d.Default); ok {
			defaults = items
		}
	}
	for _, v := range defaults {
		if !choices.Contains(v) {
			e := crossError(d.Name, CodeDefaultNotInOptions, "default %s is not one of the refreshed options %s",
				formatValue(v), formatOptions(options))
			e.Value = v
			return FieldDescriptor{}, e
		}
	}
	return refreshed, nil
}
