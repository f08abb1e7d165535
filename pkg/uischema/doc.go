// Package uischema loads form declarations from YAML or JSON documents and
// turns them into collect.Field lists. Declarations describe each field's
// type, decoration fragments and default in data, so forms can be authored
// without Go code. Per-field widget overrides are applied through the
// Decorator returned by Form.Decorator.
package uischema
