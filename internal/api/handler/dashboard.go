package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type ChannelStatsResponse struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
	TotalViews       int64 `json:"total_views"`
}

// DashboardHandler serves the authenticated owner's channel overview.
type DashboardHandler struct {
	svc usecase.DashboardService
}

func NewDashboardHandler(svc usecase.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetChannelStats(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, ChannelStatsResponse{
		TotalVideos:      stats.TotalVideos,
		TotalSubscribers: stats.TotalSubscribers,
		TotalLikes:       stats.TotalLikes,
		TotalViews:       stats.TotalViews,
	})
}

// Videos handles GET /v1/dashboard/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.GetChannelVideos(r.Context(), middleware.UserIDFrom(r.Context()), pagination(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toPageResponse(page, toVideoResponse))
}
