package api

import (
	"io/fs"
	"net/http"

	"github.com/rpupo63/blog-service/public"
)

// staticHandler serves the embedded browser client.
type staticHandler struct {
	assets fs.FS
}

func newStaticHandler(assets fs.FS) staticHandler {
	if assets == nil {
		assets = public.Assets
	}
	return staticHandler{assets: assets}
}

func (h staticHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := fs.ReadFile(h.assets, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(index)
	}
}

// assetsHandler serves the files the index page links to.
func (h staticHandler) assetsHandler() http.Handler {
	fileServer := http.FileServerFS(h.assets)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}
