package assets

import (
	"embed"
	"io"
	"io/fs"
)

//go:embed themes.txt web
var FS embed.FS

// Themes opens the embedded word catalog.
func Themes() (io.ReadCloser, error) {
	return FS.Open("themes.txt")
}

// Web returns the embedded browser client rooted at web/.
func Web() fs.FS {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
