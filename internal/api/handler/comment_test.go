package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/infrastructure/memory"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

func newContentRouter(store *memory.Store) *chi.Mux {
	feeds := usecase.NewFeedService(store.Feeds())
	comments := NewCommentHandler(usecase.NewCommentService(store.Comments(), store.Videos()), feeds)
	tweets := NewTweetHandler(usecase.NewTweetService(store.Tweets()), feeds)

	r := chi.NewRouter()
	r.Get("/v1/comments/{videoID}", comments.List)
	r.Post("/v1/comments/{videoID}", comments.Add)
	r.Patch("/v1/comments/c/{commentID}", comments.Update)
	r.Delete("/v1/comments/c/{commentID}", comments.Delete)
	r.Post("/v1/tweets", tweets.Create)
	r.Get("/v1/tweets/user/{userID}", tweets.ListByUser)
	r.Patch("/v1/tweets/{tweetID}", tweets.Update)
	r.Delete("/v1/tweets/{tweetID}", tweets.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := asUser(httptest.NewRequest(method, path, bytes.NewBufferString(body)), userID)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCommentHandler_Flow(t *testing.T) {
	store := memory.NewStore()
	author := memory.User{ID: uuid.New(), Username: "ana", Avatar: "ana.png"}
	store.PutUser(author)
	video := testVideo(author.ID)
	if err := store.Videos().Create(context.Background(), video); err != nil {
		t.Fatalf("seed video: %v", err)
	}
	router := newContentRouter(store)
	base := "/v1/comments/" + video.ID.String()

	rec := doJSON(t, router, http.MethodPost, base, author.ID, `{"content":"  nice  "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created CommentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Content != "nice" {
		t.Errorf("content = %q, want trimmed", created.Content)
	}

	if rec := doJSON(t, router, http.MethodPost, base, author.ID, `{"content":"   "}`); rec.Code != http.StatusBadRequest {
		t.Errorf("blank content status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, base, author.ID, `not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/v1/comments/"+uuid.New().String(), author.ID, `{"content":"x"}`); rec.Code != http.StatusNotFound {
		t.Errorf("missing video status = %d, want 404", rec.Code)
	}

	commentPath := "/v1/comments/c/" + created.ID
	if rec := doJSON(t, router, http.MethodPatch, commentPath, uuid.New(), `{"content":"hijack"}`); rec.Code != http.StatusForbidden {
		t.Errorf("stranger update status = %d, want 403", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPatch, commentPath, author.ID, `{"content":"edited"}`); rec.Code != http.StatusOK {
		t.Errorf("update status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, base+"?limit=5", author.ID, "")
	var page PageResponse[CommentViewResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if page.Total != 1 || page.Items[0].Content != "edited" || page.Items[0].Owner.Username != "ana" {
		t.Errorf("page = %+v", page)
	}

	if rec := doJSON(t, router, http.MethodDelete, commentPath, author.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, commentPath, author.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestTweetHandler_Flow(t *testing.T) {
	store := memory.NewStore()
	author := memory.User{ID: uuid.New(), Username: "poster"}
	store.PutUser(author)
	router := newContentRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/v1/tweets", author.ID, `{"content":"first"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}
	var first TweetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if rec := doJSON(t, router, http.MethodPost, "/v1/tweets", author.ID, `{"content":"second"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/tweets/user/"+author.ID.String(), author.ID, "")
	var tweets []TweetViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &tweets); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(tweets) != 2 || tweets[0].Content != "second" || tweets[1].Owner.Username != "poster" {
		t.Errorf("tweets = %+v, want newest first", tweets)
	}

	if rec := doJSON(t, router, http.MethodPatch, "/v1/tweets/"+first.ID, uuid.New(), `{"content":"x"}`); rec.Code != http.StatusForbidden {
		t.Errorf("stranger update status = %d, want 403", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, "/v1/tweets/"+first.ID, author.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, "/v1/tweets/not-a-uuid", author.ID, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d, want 400", rec.Code)
	}
}
