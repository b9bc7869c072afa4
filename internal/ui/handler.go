// Package ui serves the embedded console assets: the page shell, its
// stylesheet and the WebAssembly build of web/regui.
package ui

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed dist/*
var content embed.FS

// Handler serves the embedded UI assets, with index.html at "/".
func Handler() http.Handler {
	sub, err := fs.Sub(content, "dist")
	if err != nil {
		return http.NotFoundHandler()
	}
	return FSHandler(sub)
}

// FSHandler serves assets from fsys the same way Handler does.
func FSHandler(fsys fs.FS) http.Handler {
	files := http.FS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		p := path.Clean(r.URL.Path)
		if p == "/" || p == "." {
			p = "/index.html"
		}
		p = strings.TrimPrefix(p, "/")
		file, err := files.Open(p)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()
		info, err := file.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		switch path.Ext(p) {
		case ".wasm":
			w.Header().Set("Content-Type", "application/wasm")
		case ".html":
			// The shell must pick up a freshly built main.wasm.
			w.Header().Set("Cache-Control", "no-cache")
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	})
}
