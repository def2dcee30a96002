package handlers

import (
	"net/http"

	"blogcms/internal/content"
	"blogcms/internal/errs"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/services"
	"blogcms/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RenderHandler struct {
	posts    services.PostService
	renderer *content.Renderer
}

func NewRenderHandler(posts services.PostService, renderer *content.Renderer) *RenderHandler {
	return &RenderHandler{posts: posts, renderer: renderer}
}

type renderResponse struct {
	Type       content.Type `json:"type"`
	Confidence float64      `json:"confidence"`
	Reasons    []string     `json:"reasons,omitempty"`
	HTML       string       `json:"html"`
}

type detectRequest struct {
	Content string `json:"content"`
}

func imageFor(p *models.Post) *content.Image {
	if p.ImageURL == nil {
		return nil
	}
	img := &content.Image{URL: *p.ImageURL}
	if p.ImageAlt != nil {
		img.Alt = *p.ImageAlt
	}
	return img
}

// Render
// @Summary      Render a post body
// @Description  Detects the body format and renders it. debug=1 adds the detection reasons and an inline summary.
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id     path   string  true   "Post id"
// @Param        debug  query  string  false  "1 to include detection details"
// @Success      200  {object}  renderResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/admin/posts/{id}/render [get]
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	p, err := h.posts.GetByID(r.Context(), mux.Vars(r)["id"], false)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	debug := r.URL.Query().Get("debug") == "1"

	out, err := h.renderer.Render(p.Content, content.RenderOptions{Image: imageFor(p), Debug: debug})
	if err != nil {
		logger.WithCtx(r.Context()).Error("render failed", zap.String("id", p.ID), zap.Error(err))
		helpers.WriteError(w, errs.Wrap(errs.Unknown, "render post", err))
		return
	}

	resp := renderResponse{Type: out.Detection.Type, Confidence: out.Detection.Confidence, HTML: out.HTML}
	if debug {
		resp.Reasons = out.Detection.Reasons
	}
	helpers.JSON(w, http.StatusOK, resp)
}

// Detect
// @Summary      Detect the format of a text body
// @Tags         admin-posts
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      detectRequest  true  "Text"
// @Success      200   {object}  content.Detection
// @Failure      400   {object}  helpers.ErrorResponse
// @Router       /api/admin/detect [post]
func (h *RenderHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, content.Detect(req.Content))
}

// Page serves the public HTML page of a published post.
func (h *RenderHandler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	p, err := h.posts.GetBySlug(r.Context(), mux.Vars(r)["slug"], true)
	if err != nil {
		status := helpers.StatusFor(err)
		if status == http.StatusNotFound {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(helpers.BuildNotFoundPage()))
			return
		}
		http.Error(w, "internal server error", status)
		return
	}

	out, err := h.renderer.Render(p.Content, content.RenderOptions{Image: imageFor(p)})
	if err != nil {
		logger.WithCtx(r.Context()).Error("render failed", zap.String("slug", p.Slug), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(helpers.BuildPostPage(p, out.HTML)))
}
