package handlers

import (
	"net/http"

	"blogcms/internal/logger"
	"blogcms/internal/services"
	"blogcms/internal/utils/helpers"

	"go.uber.org/zap"
)

type IngestHandler struct {
	svc *services.IngestService
}

func NewIngestHandler(svc *services.IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type urlRequest struct {
	URL string `json:"url" example:"https://example.com/article"`
}

type translateRequest struct {
	Content string `json:"content"`
}

// Scrape
// @Summary      Scrape an article
// @Description  Extracts title, content, author, date and lead image. Falls back to the raw HTML with parsed=false.
// @Tags         ingest
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      urlRequest  true  "Page URL"
// @Success      200   {object}  models.ScrapeResult
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      504   {object}  helpers.ErrorResponse
// @Router       /api/admin/scrape [post]
func (h *IngestHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	res, err := h.svc.Scrape(r.Context(), req.URL)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("scrape failed", zap.String("url", req.URL), zap.Error(err))
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, res)
}

// Generate
// @Summary      Rewrite scraped content into a draft
// @Description  Rewrites the content and generates a title and excerpt unless provided.
// @Tags         ingest
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      services.GenerateInput  true  "Scraped content"
// @Success      200   {object}  models.Draft
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      500   {object}  helpers.ErrorResponse
// @Failure      504   {object}  helpers.ErrorResponse
// @Router       /api/admin/generate [post]
func (h *IngestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var in services.GenerateInput
	if err := decodeJSON(w, r, &in); err != nil {
		helpers.WriteError(w, err)
		return
	}
	draft, err := h.svc.Generate(r.Context(), in)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, draft)
}

// ImportURL
// @Summary      Import a URL as a draft
// @Description  Extracts Markdown from the page and rewrites it into a draft in one step.
// @Tags         ingest
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      urlRequest  true  "Page URL"
// @Success      200   {object}  models.Draft
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      500   {object}  helpers.ErrorResponse
// @Failure      504   {object}  helpers.ErrorResponse
// @Router       /api/admin/import [post]
func (h *IngestHandler) ImportURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	draft, err := h.svc.ImportURL(r.Context(), req.URL)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, draft)
}

// Translate
// @Summary      Translate Vietnamese content to English
// @Tags         ingest
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      translateRequest  true  "Content"
// @Success      200   {object}  models.Translation
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      500   {object}  helpers.ErrorResponse
// @Router       /api/admin/translate [post]
func (h *IngestHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.WriteError(w, err)
		return
	}
	tr, err := h.svc.Translate(r.Context(), req.Content)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, tr)
}
