package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type RelationResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id"`
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
	CreatedAt  string `json:"created_at"`
}

type ToggleResponse struct {
	State  string           `json:"state"`
	Record RelationResponse `json:"record"`
}

type ProfileResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar,omitempty"`
}

type VideoSummaryResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	AssetURL        string  `json:"asset_url"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	DurationSeconds float64 `json:"duration_seconds"`
	ViewCount       int64   `json:"view_count"`
	CreatedAt       string  `json:"created_at"`
}

// RelationHandler serves subscription and like toggles and the relation feeds.
type RelationHandler struct {
	relations usecase.RelationService
	feeds     usecase.FeedService
}

// NewRelationHandler creates a new RelationHandler.
func NewRelationHandler(relations usecase.RelationService, feeds usecase.FeedService) *RelationHandler {
	return &RelationHandler{relations: relations, feeds: feeds}
}

// ToggleSubscription handles POST /v1/subscriptions/c/{channelID}
func (h *RelationHandler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	channelID, err := parseID(r, "channelID", model.ErrInvalidTargetID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.relations.ToggleSubscription(r.Context(), middleware.UserIDFrom(r.Context()), channelID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeToggle(w, result)
}

// ToggleLike returns the handler for POST /v1/likes/toggle/{v|c|t}/{id}.
func (h *RelationHandler) ToggleLike(kind model.TargetKind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := parseID(r, param, model.ErrInvalidTargetID)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		result, err := h.relations.ToggleLike(r.Context(), middleware.UserIDFrom(r.Context()), kind, targetID)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		writeToggle(w, result)
	}
}

// ListChannelSubscribers handles GET /v1/subscriptions/c/{channelID}
func (h *RelationHandler) ListChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := parseID(r, "channelID", model.ErrInvalidTargetID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	page, err := h.feeds.ListChannelSubscribers(r.Context(), channelID, pagination(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toPageResponse(page, toProfileResponse))
}

// ListSubscribedChannels handles GET /v1/subscriptions/u/{subscriberID}
func (h *RelationHandler) ListSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := parseID(r, "subscriberID", model.ErrInvalidActorID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	page, err := h.feeds.ListSubscribedChannels(r.Context(), subscriberID, pagination(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toPageResponse(page, toProfileResponse))
}

// ListLikedVideos handles GET /v1/likes/videos
func (h *RelationHandler) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.feeds.ListLikedVideos(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	resp := make([]VideoSummaryResponse, 0, len(videos))
	for _, v := range videos {
		resp = append(resp, toVideoSummaryResponse(v))
	}
	JSON(w, http.StatusOK, resp)
}

func writeToggle(w http.ResponseWriter, result *model.ToggleResult) {
	status := http.StatusOK
	if result.State == model.ToggleCreated {
		status = http.StatusCreated
	}
	JSON(w, status, ToggleResponse{
		State:  string(result.State),
		Record: toRelationResponse(result.Record),
	})
}

func toRelationResponse(rel *model.Relation) RelationResponse {
	return RelationResponse{
		ID:         rel.ID.String(),
		ActorID:    rel.ActorID.String(),
		TargetKind: rel.TargetKind.String(),
		TargetID:   rel.TargetID.String(),
		CreatedAt:  rel.CreatedAt.Format(timeLayout),
	}
}

func toProfileResponse(p model.ProfileSummary) ProfileResponse {
	return ProfileResponse{Username: p.Username, FullName: p.FullName, Avatar: p.Avatar}
}

func toVideoSummaryResponse(v model.VideoSummary) VideoSummaryResponse {
	return VideoSummaryResponse{
		ID:              v.ID.String(),
		Title:           v.Title,
		Description:     v.Description,
		AssetURL:        v.AssetURL,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
		ViewCount:       v.ViewCount,
		CreatedAt:       v.CreatedAt.Format(timeLayout),
	}
}
