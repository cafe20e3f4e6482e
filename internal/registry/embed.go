package registry

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var embeddedTemplates embed.FS

// EmbeddedFS returns the template tree bundled with the binary, rooted at the
// kind directories (components/, hooks/, ...).
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path literal
		panic(err)
	}
	return sub
}
