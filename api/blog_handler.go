package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-service/database"
	"github.com/rpupo63/blog-service/errs"
	"github.com/rpupo63/blog-service/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultMaxBodyBytes = 100 << 10

type blogHandler struct {
	logger       zerolog.Logger
	blogRepo     database.BlogStore
	maxBodyBytes int64
}

func newBlogHandler(blogRepo database.BlogStore, maxBodyBytes int64) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return blogHandler{
		logger:       logger,
		blogRepo:     blogRepo,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h blogHandler) responder(r *http.Request) Responder {
	return NewResponder(requestLogger(r.Context(), h.logger))
}

// getAllBlogs retrieves every blog post, newest first
// @Summary List blog posts
// @Tags Blogs
// @Produce json
// @Success 200 {object} Envelope "Blogs with count"
// @Failure 500 {object} Envelope "Server error"
// @Router /blogs [get]
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := h.responder(r)

		blogs, err := h.blogRepo.FindAll(r.Context())
		if err != nil {
			responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}
		if blogs == nil {
			blogs = []*models.Blog{}
		}

		responder.WriteList(w, "Blogs retrieved successfully", blogs)
	}
}

// getBlog retrieves a blog post by ID
// @Summary Get blog post
// @Tags Blogs
// @Produce json
// @Param id path string true "Blog ID (24 hex characters)"
// @Success 200 {object} Envelope "Blog post"
// @Failure 400 {object} Envelope "Invalid ID"
// @Failure 404 {object} Envelope "Not found"
// @Failure 500 {object} Envelope "Server error"
// @Router /blogs/{id} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := h.responder(r)

		id, ok := blogIDParam(r)
		if !ok {
			responder.WriteError(w, errs.NewInvalidIDError())
			return
		}

		blog, err := h.blogRepo.FindByID(r.Context(), id)
		if err != nil {
			responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}

		if blog == nil {
			responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
			return
		}

		responder.WriteSuccess(w, http.StatusOK, "Blog retrieved successfully", blog)
	}
}

// createBlog creates a new blog post
// @Summary Create blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blog body models.BlogInput true "Title, body and optional author"
// @Success 201 {object} Envelope "Created blog post"
// @Failure 400 {object} Envelope "Validation failed"
// @Failure 500 {object} Envelope "Server error"
// @Router /blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := h.responder(r)

		input, err := h.decodeInput(w, r)
		if err != nil {
			responder.WriteError(w, err)
			return
		}

		if _, err := models.ValidateBlogInput(input); err != nil {
			responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.Create(r.Context(), input)
		if err != nil {
			responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		responder.WriteSuccess(w, http.StatusCreated, "Blog post created successfully", blog)
	}
}

// updateBlog replaces title, body and author of an existing blog post
// @Summary Update blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Param id path string true "Blog ID (24 hex characters)"
// @Param blog body models.BlogInput true "Title, body and optional author"
// @Success 200 {object} Envelope "Updated blog post"
// @Failure 400 {object} Envelope "Invalid ID or validation failed"
// @Failure 404 {object} Envelope "Not found"
// @Failure 500 {object} Envelope "Server error"
// @Router /blogs/{id} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := h.responder(r)

		// The id is checked before the body so a malformed id is always a 400
		id, ok := blogIDParam(r)
		if !ok {
			responder.WriteError(w, errs.NewInvalidIDError())
			return
		}

		input, err := h.decodeInput(w, r)
		if err != nil {
			responder.WriteError(w, err)
			return
		}

		if _, err := models.ValidateBlogInput(input); err != nil {
			responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.UpdateByID(r.Context(), id, input)
		if err != nil {
			responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		if blog == nil {
			responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
			return
		}

		responder.WriteSuccess(w, http.StatusOK, "Blog post updated successfully", blog)
	}
}

// deleteBlog deletes a blog post and returns it as it was before deletion
// @Summary Delete blog post
// @Tags Blogs
// @Produce json
// @Param id path string true "Blog ID (24 hex characters)"
// @Success 200 {object} Envelope "Deleted blog post"
// @Failure 400 {object} Envelope "Invalid ID"
// @Failure 404 {object} Envelope "Not found"
// @Failure 500 {object} Envelope "Server error"
// @Router /blogs/{id} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := h.responder(r)

		id, ok := blogIDParam(r)
		if !ok {
			responder.WriteError(w, errs.NewInvalidIDError())
			return
		}

		blog, err := h.blogRepo.DeleteByID(r.Context(), id)
		if err != nil {
			responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		if blog == nil {
			responder.WriteError(w, errs.NewNotFoundError("Blog post not found"))
			return
		}

		responder.WriteSuccess(w, http.StatusOK, "Blog post deleted successfully", blog)
	}
}

// decodeInput reads the request body into a BlogInput. An empty body decodes
// to an empty input so that it fails field validation like {} does.
func (h blogHandler) decodeInput(w http.ResponseWriter, r *http.Request) (models.BlogInput, error) {
	var input models.BlogInput

	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return input, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		}
		return input, errs.NewMalformedPayloadError(err)
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return input, nil
	}

	if err := json.Unmarshal(bodyBytes, &input); err != nil {
		return input, errs.NewMalformedPayloadError(err)
	}
	return input, nil
}

func blogIDParam(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	return id, models.IsValidID(id)
}

// wrapDatabaseError wraps a store error with context information. Validation
// and API errors pass through untouched.
func wrapDatabaseError(operation, entity string, cause error) error {
	var validationErr *models.ValidationError
	if errors.As(cause, &validationErr) {
		return cause
	}
	if errs.IsInvalidID(cause) {
		return errs.NewInvalidIDError()
	}
	var apiErr *errs.ApiErr
	if errors.As(cause, &apiErr) {
		return cause
	}
	return errs.NewDatabaseError(operation, entity, cause)
}
