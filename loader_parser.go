package typeinput

import (
	internalLoader "github.com/goliatone/go-typeinput/internal/loader"
	internalParser "github.com/goliatone/go-typeinput/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-typeinput/pkg/openapi"
	"github.com/goliatone/go-typeinput/pkg/source"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	cfg := source.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewOpenAPIParser constructs an OpenAPI parser backed by the internal
// implementation.
func NewOpenAPIParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
