package typeinput

import (
	"io/fs"

	vanilla "github.com/goliatone/go-typeinput/pkg/renderers/vanilla"
	"github.com/goliatone/go-typeinput/pkg/uischema"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedForms exposes the built-in UI schema declarations.
func EmbeddedForms() fs.FS {
	return uischema.EmbeddedFS()
}
