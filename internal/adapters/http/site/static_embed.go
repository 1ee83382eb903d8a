package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// shareHTML is the viewer served for every /share/{token} path.
//
//go:embed static/share.html
var shareHTML []byte

// FS returns an http.FileSystem over the embedded site assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Unreachable as long as the embed directive and directory agree.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
