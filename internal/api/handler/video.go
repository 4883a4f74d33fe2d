package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// Multipart field names.
const (
	fieldVideoFile   = "videoFile"
	fieldThumbnail   = "thumbnail"
	fieldTitle       = "title"
	fieldDescription = "description"
)

type VideoResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"owner_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	AssetURL        string  `json:"asset_url"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	DurationSeconds float64 `json:"duration_seconds"`
	IsPublished     bool    `json:"is_published"`
	ViewCount       int64   `json:"view_count"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`

	Owner *OwnerResponse `json:"owner,omitempty"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc    usecase.VideoService
	feeds  usecase.FeedService
	upload UploadConfig
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService, feeds usecase.FeedService, upload UploadConfig) *VideoHandler {
	return &VideoHandler{svc: svc, feeds: feeds, upload: upload}
}

// Publish handles POST /v1/videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	form, err := stageMultipart(w, r, h.upload, fieldVideoFile, fieldThumbnail)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer form.close()

	title, _ := form.value(fieldTitle)
	description, _ := form.value(fieldDescription)

	video, err := h.svc.PublishVideo(r.Context(), usecase.PublishVideoInput{
		OwnerID:       middleware.UserIDFrom(r.Context()),
		Title:         title,
		Description:   description,
		VideoFile:     form.file(fieldVideoFile),
		ThumbnailFile: form.file(fieldThumbnail),
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video))
}

// Get handles GET /v1/videos/{videoID}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoID", model.ErrInvalidVideoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// Update handles PATCH /v1/videos/{videoID}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoID", model.ErrInvalidVideoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	form, err := stageMultipart(w, r, h.upload, fieldThumbnail)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	defer form.close()

	input := usecase.UpdateVideoInput{
		ActorID:       middleware.UserIDFrom(r.Context()),
		VideoID:       videoID,
		ThumbnailFile: form.file(fieldThumbnail),
	}
	if title, ok := form.value(fieldTitle); ok {
		input.Title = &title
	}
	if description, ok := form.value(fieldDescription); ok {
		input.Description = &description
	}

	video, err := h.svc.UpdateVideo(r.Context(), input)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/{videoID}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoID", model.ErrInvalidVideoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), middleware.UserIDFrom(r.Context()), videoID); err != nil {
		WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TogglePublish handles PATCH /v1/videos/toggle/publish/{videoID}
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoID", model.ErrInvalidVideoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	video, err := h.svc.TogglePublishStatus(r.Context(), middleware.UserIDFrom(r.Context()), videoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// ListMine handles GET /v1/videos
func (h *VideoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.listOwner(w, r, middleware.UserIDFrom(r.Context()))
}

// ListByUser handles GET /v1/users/{userID}/videos
func (h *VideoHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userID", model.ErrInvalidOwnerID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	h.listOwner(w, r, userID)
}

// ListAll handles GET /v1/videos/all?sortBy=&sortType=
func (h *VideoHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, err := h.feeds.ListAllVideos(r.Context(), videoSort(r), pagination(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toPageResponse(page, toVideoResponse))
}

func (h *VideoHandler) listOwner(w http.ResponseWriter, r *http.Request, ownerID uuid.UUID) {
	page, err := h.feeds.ListOwnerVideos(r.Context(), ownerID, videoSort(r), pagination(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toPageResponse(page, toVideoResponse))
}

func videoSort(r *http.Request) model.VideoSort {
	q := r.URL.Query()
	return model.ParseVideoSort(q.Get("sortBy"), q.Get("sortType"))
}

func toVideoResponse(v *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:              v.ID.String(),
		OwnerID:         v.OwnerID.String(),
		Title:           v.Title,
		Description:     v.Description,
		AssetURL:        v.AssetURL,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
		IsPublished:     v.IsPublished,
		ViewCount:       v.ViewCount,
		CreatedAt:       v.CreatedAt.Format(timeLayout),
		UpdatedAt:       v.UpdatedAt.Format(timeLayout),
	}
	if v.Owner != nil {
		owner := toOwnerResponse(*v.Owner)
		resp.Owner = &owner
	}
	return resp
}
