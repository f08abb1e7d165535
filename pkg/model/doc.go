// Package model exposes the field descriptor produced by the extraction
// pipeline. Builders reside in internal/model but return the types aliased
// here. A descriptor carries one scalar kind plus optional facets (optional,
// list, choices, constraints, item UI, field UI); absent facets are nil and
// are omitted from JSON. Errors are *Error values carrying a Category and a
// Code, comparable with errors.Is against the Err* sentinels.
package model
