package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/domain/apperr"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

var errInvalidJSON = apperr.New(apperr.InvalidArgument, "Invalid JSON body")

// ContentRequest is the body of comment and tweet writes.
type ContentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"video_id"`
	OwnerID   string `json:"owner_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CommentViewResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Owner     OwnerResponse `json:"owner"`
}

// CommentHandler handles comment writes and the per-video comment feed.
type CommentHandler struct {
	comments usecase.CommentService
	feeds    usecase.FeedService
}

func NewCommentHandler(comments usecase.CommentService, feeds usecase.FeedService) *CommentHandler {
	return &CommentHandler{comments: comments, feeds: feeds}
}

// List handles GET /v1/comments/{videoID}
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoID", model.ErrInvalidVideoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	page, err := h.feeds.ListVideoComments(r.Context(), videoID, pagination(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toPageResponse(page, toCommentViewResponse))
}

// Add handles POST /v1/comments/{videoID}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoID", model.ErrInvalidVideoID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	req, err := decodeContent(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	comment, err := h.comments.AddComment(r.Context(), middleware.UserIDFrom(r.Context()), videoID, req.Content)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, toCommentResponse(comment))
}

// Update handles PATCH /v1/comments/c/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r, "commentID", model.ErrInvalidCommentID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	req, err := decodeContent(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	comment, err := h.comments.UpdateComment(r.Context(), middleware.UserIDFrom(r.Context()), commentID, req.Content)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /v1/comments/c/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r, "commentID", model.ErrInvalidCommentID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.comments.DeleteComment(r.Context(), middleware.UserIDFrom(r.Context()), commentID); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeContent(r *http.Request) (ContentRequest, error) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ContentRequest{}, errInvalidJSON
	}
	return req, nil
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(timeLayout),
		UpdatedAt: c.UpdatedAt.Format(timeLayout),
	}
}

func toCommentViewResponse(c model.CommentView) CommentViewResponse {
	return CommentViewResponse{
		ID:        c.ID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(timeLayout),
		Owner:     toOwnerResponse(c.Owner),
	}
}
