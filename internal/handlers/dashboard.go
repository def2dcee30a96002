package handlers

import (
	"net/http"

	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/services"
	"blogcms/internal/utils/helpers"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	posts services.PostService
}

func NewDashboardHandler(posts services.PostService) *DashboardHandler {
	return &DashboardHandler{posts: posts}
}

// Stats
// @Summary      Dashboard statistics
// @Description  Post totals and published posts per month for the last six months.
// @Tags         admin
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200  {object}  models.DashboardStats
// @Router       /api/admin/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.posts.Stats(r.Context())
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	stats, err := h.posts.Stats(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard stats failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(helpers.BuildDashboardPage(stats)))
}

func (h *DashboardHandler) Posts(w http.ResponseWriter, r *http.Request) {
	list, err := h.posts.List(r.Context(), models.PostFilter{Limit: 100})
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard post list failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(helpers.BuildPostsPage(list.Items)))
}
