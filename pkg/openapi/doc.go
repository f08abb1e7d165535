// Package openapi exposes the contracts for collecting form fields from
// OpenAPI 3 documents. Request bodies and component schemas become
// collect.Field lists. The kin-openapi implementation lives under
// internal/openapi; construct it with typeinput.NewOpenAPIParser.
package openapi
