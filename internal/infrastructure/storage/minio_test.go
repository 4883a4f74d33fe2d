package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/hszk-dev/vidshare/internal/assetid"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// mockMinioClient implements minioClient interface for testing.
type mockMinioClient struct {
	bucketExistsFunc func(ctx context.Context, bucketName string) (bool, error)
	fPutObjectFunc   func(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	removeObjectFunc func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

func (m *mockMinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if m.bucketExistsFunc != nil {
		return m.bucketExistsFunc(ctx, bucketName)
	}
	return true, nil
}

func (m *mockMinioClient) FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.fPutObjectFunc != nil {
		return m.fPutObjectFunc(ctx, bucketName, objectName, filePath, opts)
	}
	return minio.UploadInfo{}, nil
}

func (m *mockMinioClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	if m.removeObjectFunc != nil {
		return m.removeObjectFunc(ctx, bucketName, objectName, opts)
	}
	return nil
}

type mockProber struct {
	durationFunc func(ctx context.Context, path string) (float64, error)
}

func (m *mockProber) Duration(ctx context.Context, path string) (float64, error) {
	if m.durationFunc != nil {
		return m.durationFunc(ctx, path)
	}
	return 0, nil
}

func TestNewClientWithMinioClient(t *testing.T) {
	tests := []struct {
		name       string
		bucket     string
		mockClient *mockMinioClient
		wantErr    error
	}{
		{
			name:   "successful initialization",
			bucket: "test-bucket",
			mockClient: &mockMinioClient{
				bucketExistsFunc: func(ctx context.Context, bucketName string) (bool, error) {
					return true, nil
				},
			},
			wantErr: nil,
		},
		{
			name:   "bucket does not exist",
			bucket: "non-existent-bucket",
			mockClient: &mockMinioClient{
				bucketExistsFunc: func(ctx context.Context, bucketName string) (bool, error) {
					return false, nil
				},
			},
			wantErr: repository.ErrBucketNotFound,
		},
		{
			name:   "bucket check error",
			bucket: "test-bucket",
			mockClient: &mockMinioClient{
				bucketExistsFunc: func(ctx context.Context, bucketName string) (bool, error) {
					return false, errors.New("connection refused")
				},
			},
			wantErr: errors.New("failed to check bucket existence"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newClientWithMinioClient(context.Background(), tt.mockClient, nil, tt.bucket, "http://cdn.local")

			if tt.wantErr != nil {
				if err == nil {
					t.Errorf("newClientWithMinioClient() expected error, got nil")
					return
				}
				if !errors.Is(err, tt.wantErr) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Errorf("newClientWithMinioClient() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("newClientWithMinioClient() unexpected error = %v", err)
				return
			}

			if client.bucket != tt.bucket {
				t.Errorf("client.bucket = %v, want %v", client.bucket, tt.bucket)
			}
		})
	}
}

func TestClient_Upload(t *testing.T) {
	fixedNow := time.Unix(1700000000, 0)

	tests := []struct {
		name         string
		localPath    string
		folder       string
		mockClient   *mockMinioClient
		prober       *mockProber
		wantDuration float64
		wantType     string
		wantErr      bool
	}{
		{
			name:       "video upload reports probed duration",
			localPath:  "/tmp/staging/clip.MP4",
			folder:     "videos",
			mockClient: &mockMinioClient{},
			prober: &mockProber{
				durationFunc: func(ctx context.Context, path string) (float64, error) {
					return 42.5, nil
				},
			},
			wantDuration: 42.5,
			wantType:     "video/mp4",
		},
		{
			name:         "thumbnail upload has zero duration",
			localPath:    "/tmp/staging/thumb.png",
			folder:       "thumbnails",
			mockClient:   &mockMinioClient{},
			prober:       &mockProber{},
			wantDuration: 0,
			wantType:     "image/png",
		},
		{
			name:       "probe failure does not fail the upload",
			localPath:  "/tmp/staging/clip.mp4",
			folder:     "videos",
			mockClient: &mockMinioClient{},
			prober: &mockProber{
				durationFunc: func(ctx context.Context, path string) (float64, error) {
					return 0, errors.New("ffprobe not found")
				},
			},
			wantDuration: 0,
			wantType:     "video/mp4",
		},
		{
			name:       "unknown extension uses octet-stream",
			localPath:  "/tmp/staging/blob.zzzq",
			folder:     "videos",
			mockClient: &mockMinioClient{},
			prober:     &mockProber{},
			wantType:   "application/octet-stream",
		},
		{
			name:      "put failure returns error",
			localPath: "/tmp/staging/clip.mp4",
			folder:    "videos",
			mockClient: &mockMinioClient{
				fPutObjectFunc: func(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
					return minio.UploadInfo{}, errors.New("network error")
				},
			},
			prober:  &mockProber{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotKey, gotPath, gotType string
			put := tt.mockClient.fPutObjectFunc
			tt.mockClient.fPutObjectFunc = func(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
				gotKey, gotPath, gotType = objectName, filePath, opts.ContentType
				if put != nil {
					return put(ctx, bucketName, objectName, filePath, opts)
				}
				return minio.UploadInfo{}, nil
			}

			client := &Client{
				client:        tt.mockClient,
				prober:        tt.prober,
				bucket:        "vidshare",
				publicBaseURL: "http://cdn.local",
				now:           func() time.Time { return fixedNow },
			}

			got, err := client.Upload(context.Background(), tt.localPath, tt.folder)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Upload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if !strings.HasPrefix(got.AssetID, tt.folder+"/") {
				t.Errorf("AssetID = %q, want prefix %q", got.AssetID, tt.folder+"/")
			}
			if gotKey != got.AssetID {
				t.Errorf("object key = %q, want asset id %q", gotKey, got.AssetID)
			}
			if gotPath != tt.localPath {
				t.Errorf("file path = %q, want %q", gotPath, tt.localPath)
			}
			if gotType != tt.wantType {
				t.Errorf("content type = %q, want %q", gotType, tt.wantType)
			}
			if got.DurationSeconds != tt.wantDuration {
				t.Errorf("DurationSeconds = %v, want %v", got.DurationSeconds, tt.wantDuration)
			}
			if !strings.HasPrefix(got.URL, "http://cdn.local/vidshare/upload/v1700000000/") {
				t.Errorf("URL = %q, unexpected prefix", got.URL)
			}

			id, err := assetid.FromURL(got.URL)
			if err != nil {
				t.Fatalf("FromURL() unexpected error = %v", err)
			}
			if id != got.AssetID {
				t.Errorf("FromURL(URL) = %q, want %q", id, got.AssetID)
			}
		})
	}
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		name       string
		mockClient *mockMinioClient
		wantErr    bool
	}{
		{
			name:       "successful delete",
			mockClient: &mockMinioClient{},
			wantErr:    false,
		},
		{
			name: "delete error",
			mockClient: &mockMinioClient{
				removeObjectFunc: func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
					return errors.New("access denied")
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{
				client: tt.mockClient,
				bucket: "vidshare",
			}

			err := client.Delete(context.Background(), "videos/abc")
			if (err != nil) != tt.wantErr {
				t.Errorf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_Ping(t *testing.T) {
	tests := []struct {
		name       string
		mockClient *mockMinioClient
		wantErr    bool
	}{
		{
			name:       "successful ping",
			mockClient: &mockMinioClient{},
			wantErr:    false,
		},
		{
			name: "ping error",
			mockClient: &mockMinioClient{
				bucketExistsFunc: func(ctx context.Context, bucketName string) (bool, error) {
					return false, errors.New("connection refused")
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{
				client: tt.mockClient,
				bucket: "vidshare",
			}

			err := client.Ping(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Ping() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
