// HTTP handlers for the posts endpoints.
package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PostHandlers handles HTTP requests for posts.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates a new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// RegisterRoutes registers the post routes on the given router. List and get
// are public; create, update, and delete are wrapped in the authentication
// middleware.
func (h *PostHandlers) RegisterRoutes(router chi.Router, requireUser func(http.Handler) http.Handler) {
	router.Get("/", h.handleList)
	router.Get("/{id}", h.handleGet)

	router.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

// parsePagination reads and bounds the skip/limit query parameters:
// skip >= 0 (default 0), limit in [1,100] (default 10).
func parsePagination(r *http.Request) (int, int, error) {
	skip := 0
	limit := 10

	if raw := r.URL.Query().Get("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, apperror.NewValidationError("skip must be a non-negative integer", err)
		}
		skip = v
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			return 0, 0, apperror.NewValidationError("limit must be an integer between 1 and 100", err)
		}
		limit = v
	}

	return skip, limit, nil
}

// postID reads the {id} path parameter.
func postID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewValidationError("post id must be an integer", err)
	}
	return id, nil
}

// handleList godoc
// @Summary List published posts
// @Description Returns a page of published posts with pagination metadata.
// @Tags posts
// @Produce json
// @Param skip query int false "Number of posts to skip" minimum(0) default(0)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(10)
// @Success 200 {object} PostListResponse "Paginated posts"
// @Failure 400 {object} apperror.ErrorResponse "Invalid pagination parameters"
// @Router /posts/ [get]
func (h *PostHandlers) handleList(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	resp, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, resp)
}

// handleGet godoc
// @Summary Get a post by id
// @Description Returns a single published post. Unpublished posts are not found.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} Post "The post"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (h *PostHandlers) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, post)
}

// handleCreate godoc
// @Summary Create a post
// @Description Creates a new post owned by the authenticated user.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body CreatePostRequest true "Post details"
// @Success 201 {object} Post "Created post"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /posts/ [post]
func (h *PostHandlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError(err.Error(), err))
		return
	}

	post, err := h.service.Create(r.Context(), req, user)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, post)
}

// handleUpdate godoc
// @Summary Update a post
// @Description Applies a partial update to a post. Only the author may update it.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param postBody body UpdatePostRequest true "Fields to update"
// @Success 200 {object} Post "Updated post"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Not the author"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id} [put]
func (h *PostHandlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
		return
	}

	id, err := postID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError(err.Error(), err))
		return
	}

	post, err := h.service.Update(r.Context(), id, req, user)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, post)
}

// handleDelete godoc
// @Summary Delete a post
// @Description Deletes a post. Only the author may delete it.
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Not the author"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (h *PostHandlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
		return
	}

	id, err := postID(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, user); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
