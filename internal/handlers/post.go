package handlers

import (
	"net/http"

	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/services"
	"blogcms/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PostHandler struct {
	svc services.PostService
}

func NewPostHandler(svc services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type publishRequest struct {
	Published bool `json:"published"`
}

// List
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Param        featured  query  bool    false  "Only featured posts"
// @Param        category  query  string  false  "Category"
// @Param        q         query  string  false  "Search in title and excerpt"
// @Param        limit     query  int     false  "Page size (default 20, max 100)"
// @Param        offset    query  int     false  "Offset"
// @Success      200  {object}  models.PostList
// @Failure      400  {object}  helpers.ErrorResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parsePostFilter(r)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	published := true
	f.Published = &published

	list, err := h.svc.List(r.Context(), f)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Get
// @Summary      Get a published post by id
// @Tags         posts
// @Produce      json
// @Param        id   path  string  true  "Post id"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"], true)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// GetBySlug
// @Summary      Get a published post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200   {object}  models.Post
// @Failure      404   {object}  helpers.ErrorResponse
// @Router       /api/posts/slug/{slug} [get]
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetBySlug(r.Context(), mux.Vars(r)["slug"], true)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// AdminList
// @Summary      List all posts including drafts
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Produce      json
// @Param        published  query  bool    false  "Filter by publish state"
// @Param        featured   query  bool    false  "Filter by featured flag"
// @Param        category   query  string  false  "Category"
// @Param        q          query  string  false  "Search in title and excerpt"
// @Param        limit      query  int     false  "Page size (default 20, max 100)"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {object}  models.PostList
// @Failure      400  {object}  helpers.ErrorResponse
// @Router       /api/admin/posts [get]
func (h *PostHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	f, err := parsePostFilter(r)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	list, err := h.svc.List(r.Context(), f)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// AdminGet
// @Summary      Get any post by id
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id   path  string  true  "Post id"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/admin/posts/{id} [get]
func (h *PostHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"], false)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// Create
// @Summary      Create a post
// @Description  Slug is derived from the title when omitted. Posts are published unless published=false.
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.PostInput  true  "Post"
// @Success      201   {object}  models.Post
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      409   {object}  helpers.ErrorResponse
// @Router       /api/admin/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Create post", zap.Error(err))
		helpers.WriteError(w, err)
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, p)
}

// Update
// @Summary      Replace a post
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Post id"
// @Param        body  body      models.PostInput  true  "Post"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      404   {object}  helpers.ErrorResponse
// @Failure      409   {object}  helpers.ErrorResponse
// @Router       /api/admin/posts/{id} [put]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Update post", zap.Error(err))
		helpers.WriteError(w, err)
		return
	}
	p, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// SetPublish
// @Summary      Publish or unpublish a post
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Post id"
// @Param        body  body      publishRequest  true  "Publish state"
// @Success      200   {object}  models.Post
// @Failure      404   {object}  helpers.ErrorResponse
// @Router       /api/admin/posts/{id}/publish [patch]
func (h *PostHandler) SetPublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	p, err := h.svc.SetPublish(r.Context(), mux.Vars(r)["id"], req.Published)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// Delete
// @Summary      Delete a post
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/admin/posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
