package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hszk-dev/vidshare/internal/assetid"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// minioClient defines the interface for MinIO operations.
// This abstraction allows for easier unit testing with mocks.
// *minio.Client satisfies it directly.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// durationProber reports the playback duration of a local media file.
type durationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ClientConfig holds configuration for the MinIO client.
type ClientConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL prefixes every public asset URL.
	// Defaults to the endpoint with the scheme implied by UseSSL.
	PublicBaseURL string
}

// Client wraps a MinIO client and implements repository.BlobStore.
type Client struct {
	client        minioClient
	prober        durationProber
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

// NewClient creates a new MinIO client.
// It verifies the bucket exists during initialization to fail fast on misconfiguration.
func NewClient(ctx context.Context, cfg ClientConfig, prober durationProber) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + cfg.Endpoint
	}

	return newClientWithMinioClient(ctx, client, prober, cfg.Bucket, baseURL)
}

// newClientWithMinioClient creates a Client with a given minioClient implementation.
// This is used for dependency injection in tests.
func newClientWithMinioClient(ctx context.Context, client minioClient, prober durationProber, bucket, publicBaseURL string) (*Client, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, bucket)
	}

	return &Client{
		client:        client,
		prober:        prober,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		now:           time.Now,
	}, nil
}

// Upload stores the local file under folder with a fresh asset id.
// Media files are probed for their duration first; a probe failure is logged
// and reported as zero duration rather than failing the upload.
func (c *Client) Upload(ctx context.Context, localPath, folder string) (*repository.UploadedAsset, error) {
	ext := strings.ToLower(filepath.Ext(localPath))
	assetID := strings.Trim(folder, "/") + "/" + uuid.NewString()

	var duration float64
	if c.prober != nil {
		d, err := c.prober.Duration(ctx, localPath)
		if err != nil {
			slog.WarnContext(ctx, "failed to probe media duration",
				"path", localPath,
				"error", err,
			)
		}
		duration = d
	}

	_, err := c.client.FPutObject(ctx, c.bucket, assetID, localPath, minio.PutObjectOptions{
		ContentType: contentType(ext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &repository.UploadedAsset{
		URL:             assetid.BuildURL(c.publicBaseURL, c.bucket, c.now().Unix(), assetID, ext),
		AssetID:         assetID,
		DurationSeconds: duration,
	}, nil
}

// Delete removes an object from the storage.
// Removing an absent object is not an error in MinIO.
func (c *Client) Delete(ctx context.Context, assetID string) error {
	err := c.client.RemoveObject(ctx, c.bucket, assetID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Ping verifies the MinIO connection is alive by checking bucket access.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to ping minio: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func contentType(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Compile-time verification that Client implements repository.BlobStore.
var _ repository.BlobStore = (*Client)(nil)
