// Package orchestrator wires the loader, declaration parsers, descriptor
// builder and renderers into a single entry point. Documents are either UI
// schema declarations (a top-level "forms" key) or OpenAPI 3 documents.
package orchestrator
