package repository

import (
	"context"
	"errors"
)

// ErrBucketNotFound is returned when the configured bucket does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// UploadedAsset is the confirmed result of an upload.
type UploadedAsset struct {
	// URL is the public, resolvable address of the asset.
	URL string
	// AssetID is the store's internal key. assetid.FromURL(URL) == AssetID.
	AssetID string
	// DurationSeconds is zero for non-media files.
	DurationSeconds float64
}

// BlobStore defines the remote asset store the lifecycle coordinator drives.
// Implementations should be provided by the infrastructure layer (e.g., MinIO).
type BlobStore interface {
	// Upload stores the local file under folder and returns its confirmed URL.
	// The local file is not removed.
	Upload(ctx context.Context, localPath, folder string) (*UploadedAsset, error)

	// Delete removes the asset with the given id. Deleting an asset that is
	// already gone succeeds, so reclaim can be replayed safely.
	Delete(ctx context.Context, assetID string) error
}
