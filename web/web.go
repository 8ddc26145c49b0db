// Package web embeds the index page and static assets served by the HTTP surface.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var files embed.FS

// IndexHTML returns the landing page.
func IndexHTML() ([]byte, error) {
	return files.ReadFile("index.html")
}

// Static returns the file system rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// static is embedded, Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
