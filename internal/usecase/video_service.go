package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/assetid"
	"github.com/hszk-dev/vidshare/internal/domain/apperr"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// Reclaim reasons attached to tasks for orphaned remote assets.
const (
	ReclaimReasonThumbnailUpload = "thumbnail_upload_failed"
	ReclaimReasonPersist         = "persist_failed"
	ReclaimReasonUpdate          = "update_persist_failed"
)

// PublishVideoInput carries the metadata and the two locally staged files of a
// new video. The service removes the staged files whatever the outcome.
type PublishVideoInput struct {
	OwnerID       uuid.UUID
	Title         string
	Description   string
	VideoFile     string
	ThumbnailFile string
}

// UpdateVideoInput replaces the thumbnail and optionally the title and
// description in one write.
type UpdateVideoInput struct {
	ActorID       uuid.UUID
	VideoID       uuid.UUID
	Title         *string
	Description   *string
	ThumbnailFile string
}

// VideoService coordinates video records with their remote assets.
type VideoService interface {
	// PublishVideo uploads the video and then the thumbnail and only then
	// creates the record. Upload failures are UploadFailed; a record write that
	// fails after both uploads is PersistFailed.
	PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// GetVideo retrieves video information by ID.
	GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// UpdateVideo uploads a new thumbnail and overwrites the record. The old
	// remote thumbnail is left in place.
	UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error)

	// DeleteVideo removes both remote assets and then the record, so a remote
	// failure leaves the record as a retry anchor.
	DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) error

	// TogglePublishStatus flips the publish flag.
	TogglePublishStatus(ctx context.Context, actorID, videoID uuid.UUID) (*model.Video, error)
}

// VideoServiceConfig holds configuration for VideoService.
type VideoServiceConfig struct {
	VideoFolder     string
	ThumbnailFolder string
}

// DefaultVideoServiceConfig returns the default configuration.
func DefaultVideoServiceConfig() VideoServiceConfig {
	return VideoServiceConfig{
		VideoFolder:     "videos",
		ThumbnailFolder: "thumbnails",
	}
}

type videoService struct {
	repo  repository.VideoRepository
	blobs repository.BlobStore
	// queue may be nil; orphaned assets are then only logged.
	queue repository.MessageQueue

	videoFolder     string
	thumbnailFolder string
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(
	repo repository.VideoRepository,
	blobs repository.BlobStore,
	queue repository.MessageQueue,
	cfg VideoServiceConfig,
) VideoService {
	return &videoService{
		repo:            repo,
		blobs:           blobs,
		queue:           queue,
		videoFolder:     cfg.VideoFolder,
		thumbnailFolder: cfg.ThumbnailFolder,
	}
}

func (s *videoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	defer removeStaged(input.VideoFile, input.ThumbnailFile)

	if input.OwnerID == uuid.Nil {
		return nil, model.ErrInvalidOwnerID
	}
	if input.VideoFile == "" || input.ThumbnailFile == "" {
		return nil, model.ErrMissingVideoFiles
	}
	if _, _, err := model.ValidateVideoText(input.Title, input.Description); err != nil {
		return nil, err
	}

	asset, err := s.upload(ctx, input.VideoFile, s.videoFolder)
	if err != nil {
		return nil, apperr.Wrapf(apperr.UploadFailed, "upload video", err, "failed to upload video file")
	}

	thumb, err := s.upload(ctx, input.ThumbnailFile, s.thumbnailFolder)
	if err != nil {
		s.reclaim(ctx, repository.ReclaimTask{
			AssetIDs: []string{asset.AssetID},
			Reason:   ReclaimReasonThumbnailUpload,
		})
		return nil, apperr.Wrapf(apperr.UploadFailed, "upload thumbnail", err, "failed to upload thumbnail")
	}

	video, err := model.NewVideo(model.VideoDetails{
		OwnerID:         input.OwnerID,
		Title:           input.Title,
		Description:     input.Description,
		AssetURL:        asset.URL,
		ThumbnailURL:    thumb.URL,
		DurationSeconds: asset.DurationSeconds,
	})
	if err != nil {
		s.reclaim(ctx, repository.ReclaimTask{
			AssetIDs: []string{asset.AssetID, thumb.AssetID},
			Reason:   ReclaimReasonPersist,
		})
		return nil, err
	}

	if err := s.repo.Create(ctx, video); err != nil {
		s.reclaim(ctx, repository.ReclaimTask{
			AssetIDs: []string{asset.AssetID, thumb.AssetID},
			Reason:   ReclaimReasonPersist,
			VideoID:  video.ID,
		})
		return nil, apperr.Wrapf(apperr.PersistFailed, "create video", err,
			"video record was not saved; remote assets %s and %s are orphaned", asset.AssetID, thumb.AssetID)
	}

	return video, nil
}

func (s *videoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if videoID == uuid.Nil {
		return nil, model.ErrInvalidVideoID
	}
	return s.repo.GetByID(ctx, videoID)
}

func (s *videoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	defer removeStaged(input.ThumbnailFile)

	if input.VideoID == uuid.Nil {
		return nil, model.ErrInvalidVideoID
	}
	if input.ThumbnailFile == "" {
		return nil, model.ErrMissingThumbnail
	}

	video, err := s.ownedVideo(ctx, input.ActorID, input.VideoID)
	if err != nil {
		return nil, err
	}
	if err := video.UpdateDetails(input.Title, input.Description); err != nil {
		return nil, err
	}

	thumb, err := s.upload(ctx, input.ThumbnailFile, s.thumbnailFolder)
	if err != nil {
		return nil, apperr.Wrapf(apperr.UploadFailed, "upload thumbnail", err, "failed to upload thumbnail")
	}
	video.ReplaceThumbnail(thumb.URL)

	if err := s.repo.Update(ctx, video); err != nil {
		s.reclaim(ctx, repository.ReclaimTask{
			AssetIDs: []string{thumb.AssetID},
			Reason:   ReclaimReasonUpdate,
			VideoID:  video.ID,
		})
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, err
		}
		return nil, apperr.Wrapf(apperr.PersistFailed, "update video", err, "video record was not updated")
	}

	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) error {
	if videoID == uuid.Nil {
		return model.ErrInvalidVideoID
	}

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return err
	}

	// Resolve both ids before touching the store so a malformed URL never
	// leaves one asset deleted and the other not.
	assetIDs := make([]string, 0, 2)
	for _, url := range []string{video.AssetURL, video.ThumbnailURL} {
		id, err := assetid.FromURL(url)
		if err != nil {
			return fmt.Errorf("resolve asset id: %w", err)
		}
		assetIDs = append(assetIDs, id)
	}

	for _, id := range assetIDs {
		err := s.blobs.Delete(ctx, id)
		recordAssetOp(metrics.AssetOpDelete, err)
		if err != nil {
			return apperr.Wrapf(apperr.RemoteDeleteFailed, "delete remote asset", err, "failed to delete remote asset %s", id)
		}
	}

	if err := s.repo.Delete(ctx, video.ID); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return err
		}
		return apperr.Wrapf(apperr.PersistFailed, "delete video", err, "remote assets were deleted but the video record was not")
	}

	return nil
}

func (s *videoService) TogglePublishStatus(ctx context.Context, actorID, videoID uuid.UUID) (*model.Video, error) {
	if videoID == uuid.Nil {
		return nil, model.ErrInvalidVideoID
	}

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	video.TogglePublished()
	if err := s.repo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update publish status: %w", err)
	}

	return video, nil
}

func (s *videoService) ownedVideo(ctx context.Context, actorID, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsOwnedBy(actorID) {
		return nil, model.ErrNotVideoOwner
	}
	return video, nil
}

// upload sends one staged file and removes it afterwards. An upload that
// returns no URL is a failure.
func (s *videoService) upload(ctx context.Context, localPath, folder string) (*repository.UploadedAsset, error) {
	asset, err := s.blobs.Upload(ctx, localPath, folder)
	removeStaged(localPath)
	if err == nil && (asset == nil || asset.URL == "") {
		err = errors.New("blob store returned no URL")
	}
	recordAssetOp(metrics.AssetOpUpload, err)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// reclaim hands orphaned assets to the worker. It never changes the result of
// the operation that orphaned them.
func (s *videoService) reclaim(ctx context.Context, task repository.ReclaimTask) {
	if s.queue == nil {
		slog.Error("orphaned remote assets left without reclaim queue",
			"asset_ids", task.AssetIDs,
			"reason", task.Reason,
		)
		return
	}

	// the request context may already be cancelled
	err := s.queue.PublishReclaimTask(context.WithoutCancel(ctx), task)
	recordAssetOp(metrics.AssetOpReclaimEnqueue, err)
	if err != nil {
		slog.Error("failed to enqueue reclaim task",
			"asset_ids", task.AssetIDs,
			"reason", task.Reason,
			"error", err,
		)
	}
}

func removeStaged(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove staged file", "path", p, "error", err)
		}
	}
}

func recordAssetOp(op string, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.AssetOperationsTotal.WithLabelValues(op, status).Inc()
}
