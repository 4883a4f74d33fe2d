package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/api/handler"
	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/memory"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// fakeBlobStore hands out URLs in the same shape as the MinIO store.
type fakeBlobStore struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, localPath, folder string) (*repository.UploadedAsset, error) {
	id := folder + "/" + uuid.NewString()
	return &repository.UploadedAsset{
		URL:     "http://cdn.local/vidshare/upload/v1700000000/" + id + filepath.Ext(localPath),
		AssetID: id,
	}, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, assetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, assetID)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store, *fakeBlobStore) {
	t.Helper()
	store := memory.NewStore()
	blobs := &fakeBlobStore{}
	feeds := usecase.NewFeedService(store.Feeds())

	router := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), Dependencies{
		Videos:    usecase.NewVideoService(store.Videos(), blobs, nil, usecase.DefaultVideoServiceConfig()),
		Feeds:     feeds,
		Relations: usecase.NewRelationService(store.Relations()),
		Comments:  usecase.NewCommentService(store.Comments(), store.Videos()),
		Tweets:    usecase.NewTweetService(store.Tweets()),
		Dashboard: usecase.NewDashboardService(store.Stats(), feeds),
		Upload:    handler.UploadConfig{TempDir: t.TempDir(), MaxBytes: 1 << 20},
		Health:    map[string]handler.Pinger{"database": store},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store, blobs
}

func send(t *testing.T, method, url string, userID uuid.UUID, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeader, userID.String())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func publishForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Launch")
	_ = mw.WriteField("description", "first upload")
	for field, name := range map[string]string{"videoFile": "launch.mp4", "thumbnail": "launch.jpg"} {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fmt.Fprintf(fw, "%s-bytes", field)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestRouter_RequiresIdentity(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := send(t, http.MethodGet, srv.URL+"/v1/likes/videos", uuid.Nil, nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	resp = send(t, http.MethodGet, srv.URL+"/health", uuid.Nil, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header missing")
	}
}

func TestRouter_PublishLikeDelete(t *testing.T) {
	srv, store, blobs := newTestServer(t)
	owner := memory.User{ID: uuid.New(), Username: "owner"}
	fan := uuid.New()
	store.PutUser(owner)

	body, contentType := publishForm(t)
	resp := send(t, http.MethodPost, srv.URL+"/v1/videos", owner.ID, body, contentType)
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("publish status = %d, want 201 (%s)", resp.StatusCode, b)
	}
	var video handler.VideoResponse
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		t.Fatalf("decode video: %v", err)
	}

	likeURL := srv.URL + "/v1/likes/toggle/v/" + video.ID
	if resp := send(t, http.MethodPost, likeURL, fan, nil, ""); resp.StatusCode != http.StatusCreated {
		t.Fatalf("like status = %d, want 201", resp.StatusCode)
	}

	resp = send(t, http.MethodGet, srv.URL+"/v1/likes/videos", fan, nil, "")
	var liked []handler.VideoSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&liked); err != nil {
		t.Fatalf("decode liked: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != video.ID {
		t.Errorf("liked videos = %+v", liked)
	}

	resp = send(t, http.MethodPost, likeURL, fan, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unlike status = %d, want 200", resp.StatusCode)
	}
	var toggle handler.ToggleResponse
	if err := json.NewDecoder(resp.Body).Decode(&toggle); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if toggle.State != "removed" {
		t.Errorf("state = %q, want removed", toggle.State)
	}

	if resp := send(t, http.MethodDelete, srv.URL+"/v1/videos/"+video.ID, fan, nil, ""); resp.StatusCode != http.StatusForbidden {
		t.Errorf("delete by stranger status = %d, want 403", resp.StatusCode)
	}
	if resp := send(t, http.MethodDelete, srv.URL+"/v1/videos/"+video.ID, owner.ID, nil, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	if resp := send(t, http.MethodGet, srv.URL+"/v1/videos/"+video.ID, owner.ID, nil, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}

	blobs.mu.Lock()
	defer blobs.mu.Unlock()
	if len(blobs.deleted) != 2 {
		t.Errorf("deleted assets = %v, want video and thumbnail", blobs.deleted)
	}
}

func TestRouter_DashboardStats(t *testing.T) {
	srv, _, _ := newTestServer(t)
	owner := uuid.New()

	for i := 0; i < 3; i++ {
		if resp := send(t, http.MethodPost, srv.URL+"/v1/subscriptions/c/"+owner.String(), uuid.New(), nil, ""); resp.StatusCode != http.StatusCreated {
			t.Fatalf("subscribe status = %d, want 201", resp.StatusCode)
		}
	}

	resp := send(t, http.MethodGet, srv.URL+"/v1/dashboard/stats", owner, nil, "")
	var stats handler.ChannelStatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalSubscribers != 3 || stats.TotalVideos != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRouter_VideoOwnerAndSort(t *testing.T) {
	srv, store, _ := newTestServer(t)
	owner := memory.User{ID: uuid.New(), Username: "owner", Avatar: "http://cdn.local/o.png"}
	store.PutUser(owner)

	var ids []string
	for i := 0; i < 2; i++ {
		body, contentType := publishForm(t)
		resp := send(t, http.MethodPost, srv.URL+"/v1/videos", owner.ID, body, contentType)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("publish status = %d, want 201", resp.StatusCode)
		}
		var v handler.VideoResponse
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			t.Fatalf("decode video: %v", err)
		}
		ids = append(ids, v.ID)
	}

	resp := send(t, http.MethodGet, srv.URL+"/v1/videos/"+ids[0], owner.ID, nil, "")
	var got handler.VideoResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode video: %v", err)
	}
	if got.Owner == nil || got.Owner.Username != "owner" || got.Owner.Avatar != owner.Avatar {
		t.Errorf("owner = %+v", got.Owner)
	}

	resp = send(t, http.MethodGet, srv.URL+"/v1/videos/all?sortBy=createdAt&sortType=asc", owner.ID, nil, "")
	var page handler.PageResponse[handler.VideoResponse]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != ids[0] || page.Items[1].ID != ids[1] {
		t.Errorf("ascending order = %+v, want %v", page.Items, ids)
	}
	if page.Items[0].Owner == nil || page.Items[0].Owner.ID != owner.ID.String() {
		t.Errorf("listing owner = %+v", page.Items[0].Owner)
	}
}
