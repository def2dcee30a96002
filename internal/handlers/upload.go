package handlers

import (
	"fmt"
	"net/http"

	"blogcms/internal/logger"
	"blogcms/internal/services"
	"blogcms/internal/utils/helpers"

	"go.uber.org/zap"
)

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	svc *services.UploadService
}

func NewUploadHandler(svc *services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts jpeg, png, webp and gif up to the configured size and returns its public URL.
// @Tags admin
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Success 200 {object} models.Upload
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/admin/upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	limit := h.svc.MaxBytes()

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		log.Warn("failed to parse upload form", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, fmt.Sprintf("invalid form or file larger than %d bytes", limit))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("file field missing", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	up, err := h.svc.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, up)
}
