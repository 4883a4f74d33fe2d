package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type TweetResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type TweetViewResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Owner     OwnerResponse `json:"owner"`
}

type TweetHandler struct {
	tweets usecase.TweetService
	feeds  usecase.FeedService
}

func NewTweetHandler(tweets usecase.TweetService, feeds usecase.FeedService) *TweetHandler {
	return &TweetHandler{tweets: tweets, feeds: feeds}
}

// Create handles POST /v1/tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeContent(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	tweet, err := h.tweets.CreateTweet(r.Context(), middleware.UserIDFrom(r.Context()), req.Content)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, toTweetResponse(tweet))
}

// ListByUser handles GET /v1/tweets/user/{userID}
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userID", model.ErrInvalidOwnerID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	tweets, err := h.feeds.ListUserTweets(r.Context(), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	resp := make([]TweetViewResponse, 0, len(tweets))
	for _, t := range tweets {
		resp = append(resp, TweetViewResponse{
			ID:        t.ID.String(),
			Content:   t.Content,
			CreatedAt: t.CreatedAt.Format(timeLayout),
			Owner:     toOwnerResponse(t.Owner),
		})
	}
	JSON(w, http.StatusOK, resp)
}

// Update handles PATCH /v1/tweets/{tweetID}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, err := parseID(r, "tweetID", model.ErrInvalidTweetID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	req, err := decodeContent(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	tweet, err := h.tweets.UpdateTweet(r.Context(), middleware.UserIDFrom(r.Context()), tweetID, req.Content)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toTweetResponse(tweet))
}

// Delete handles DELETE /v1/tweets/{tweetID}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := parseID(r, "tweetID", model.ErrInvalidTweetID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.tweets.DeleteTweet(r.Context(), middleware.UserIDFrom(r.Context()), tweetID); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toTweetResponse(t *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt.Format(timeLayout),
		UpdatedAt: t.UpdatedAt.Format(timeLayout),
	}
}
