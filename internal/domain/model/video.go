package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
)

// Video represents a published media asset.
// AssetURL and ThumbnailURL are only set once both uploads were confirmed.
type Video struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	Description     string
	AssetURL        string
	ThumbnailURL    string
	DurationSeconds float64
	IsPublished     bool
	ViewCount       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Owner is filled on reads when the owner's account exists.
	Owner *OwnerSummary
}

var (
	ErrEmptyTitle        = apperr.New(apperr.InvalidArgument, "title cannot be empty")
	ErrEmptyDescription  = apperr.New(apperr.InvalidArgument, "description cannot be empty")
	ErrInvalidOwnerID    = apperr.New(apperr.InvalidArgument, "owner ID cannot be nil")
	ErrInvalidVideoID    = apperr.New(apperr.InvalidArgument, "video ID cannot be nil")
	ErrTitleTooLong      = apperr.New(apperr.InvalidArgument, "title exceeds maximum length of 255 characters")
	ErrMissingAssetURL   = apperr.New(apperr.InvalidArgument, "asset URL and thumbnail URL are required")
	ErrNegativeDuration  = apperr.New(apperr.InvalidArgument, "duration cannot be negative")
	ErrNotVideoOwner     = apperr.New(apperr.PermissionDenied, "only the owner can modify this video")
	ErrMissingThumbnail  = apperr.New(apperr.InvalidArgument, "thumbnail file is required")
	ErrMissingVideoFiles = apperr.New(apperr.InvalidArgument, "video file and thumbnail are required")
)

const maxTitleLength = 255

// VideoDetails carries the metadata validated by NewVideo.
type VideoDetails struct {
	OwnerID         uuid.UUID
	Title           string
	Description     string
	AssetURL        string
	ThumbnailURL    string
	DurationSeconds float64
}

// ValidateVideoText checks title and description the way NewVideo does.
// It returns the trimmed values.
func ValidateVideoText(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return "", "", ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return "", "", ErrTitleTooLong
	}
	if description == "" {
		return "", "", ErrEmptyDescription
	}
	return title, description, nil
}

// NewVideo creates a published Video from confirmed remote assets.
func NewVideo(d VideoDetails) (*Video, error) {
	if d.OwnerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	title, description, err := ValidateVideoText(d.Title, d.Description)
	if err != nil {
		return nil, err
	}
	if d.AssetURL == "" || d.ThumbnailURL == "" {
		return nil, ErrMissingAssetURL
	}
	if d.DurationSeconds < 0 {
		return nil, ErrNegativeDuration
	}

	now := time.Now()
	return &Video{
		ID:              uuid.New(),
		OwnerID:         d.OwnerID,
		Title:           title,
		Description:     description,
		AssetURL:        d.AssetURL,
		ThumbnailURL:    d.ThumbnailURL,
		DurationSeconds: d.DurationSeconds,
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsOwnedBy reports whether userID owns the video.
func (v *Video) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && v.OwnerID == userID
}

// ReplaceThumbnail points the video at a newly uploaded thumbnail.
func (v *Video) ReplaceThumbnail(url string) {
	v.ThumbnailURL = url
	v.UpdatedAt = time.Now()
}

// UpdateDetails applies the non-nil title and description.
func (v *Video) UpdateDetails(title, description *string) error {
	nextTitle, nextDescription := v.Title, v.Description
	if title != nil {
		nextTitle = *title
	}
	if description != nil {
		nextDescription = *description
	}
	t, d, err := ValidateVideoText(nextTitle, nextDescription)
	if err != nil {
		return err
	}
	v.Title = t
	v.Description = d
	v.UpdatedAt = time.Now()
	return nil
}

// TogglePublished flips the publish flag and returns the new value.
func (v *Video) TogglePublished() bool {
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = time.Now()
	return v.IsPublished
}

// VideoSummary is a video joined with its owner, as shown in feeds.
type VideoSummary struct {
	ID              uuid.UUID
	Title           string
	Description     string
	AssetURL        string
	ThumbnailURL    string
	DurationSeconds float64
	ViewCount       int64
	CreatedAt       time.Time
	Owner           OwnerSummary
}
