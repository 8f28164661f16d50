package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-service/errs"
)

// setupRoutes registers the blog API, the health check and the static client
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.getHealth())

	r.Route("/blogs", func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)

		r.Get("/", handlers.blogHandler.getAllBlogs())
		r.Post("/", handlers.blogHandler.createBlog())
		r.Get("/{id}", handlers.blogHandler.getBlog())
		r.Put("/{id}", handlers.blogHandler.updateBlog())
		r.Delete("/{id}", handlers.blogHandler.deleteBlog())
	})

	r.Get("/", handlers.staticHandler.index())
	r.Handle("/script.js", handlers.staticHandler.assetsHandler())
	r.Handle("/styles.css", handlers.staticHandler.assetsHandler())
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	NewResponder(loggerFor(r.Context())).WriteError(w, errs.NewRouteNotFoundError(r.Method, r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponder(loggerFor(r.Context())).WriteError(w, errs.NewMethodNotAllowedError(r.Method, r.URL.Path))
}
