// Package site serves the embedded landing page and the share viewer.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded site routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Landing page and assets at the root.
	mux.Handle("/", http.FileServer(FS()))

	// Every /share/{token} path renders the same viewer page; the page
	// resolves its token client-side against /api/v1/shared/{token}.
	mux.HandleFunc("/share/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(shareHTML)
	})
}
