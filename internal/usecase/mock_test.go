package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn  func(ctx context.Context, video *model.Video) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	updateFn  func(ctx context.Context, video *model.Video) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockBlobStore provides a configurable mock for BlobStore.
type mockBlobStore struct {
	uploadFn func(ctx context.Context, localPath, folder string) (*repository.UploadedAsset, error)
	deleteFn func(ctx context.Context, assetID string) error

	mu      sync.Mutex
	deleted []string
}

func (m *mockBlobStore) Upload(ctx context.Context, localPath, folder string) (*repository.UploadedAsset, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, localPath, folder)
	}
	id := folder + "/" + uuid.NewString()
	return &repository.UploadedAsset{
		URL:     "http://cdn.local/vidshare/upload/v1700000000/" + id + ".bin",
		AssetID: id,
	}, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, assetID string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, assetID)
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(ctx, assetID)
	}
	return nil
}

func (m *mockBlobStore) deletedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// mockMessageQueue provides a configurable mock for MessageQueue.
type mockMessageQueue struct {
	publishReclaimTaskFn func(ctx context.Context, task repository.ReclaimTask) error

	mu        sync.Mutex
	published []repository.ReclaimTask
}

func (m *mockMessageQueue) PublishReclaimTask(ctx context.Context, task repository.ReclaimTask) error {
	m.mu.Lock()
	m.published = append(m.published, task)
	m.mu.Unlock()
	if m.publishReclaimTaskFn != nil {
		return m.publishReclaimTaskFn(ctx, task)
	}
	return nil
}

func (m *mockMessageQueue) ConsumeReclaimTasks(ctx context.Context, handler func(task repository.ReclaimTask) error) error {
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockMessageQueue) Close() error {
	return nil
}

func (m *mockMessageQueue) tasks() []repository.ReclaimTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.ReclaimTask(nil), m.published...)
}

// mockRelationRepository provides a configurable mock for RelationRepository.
type mockRelationRepository struct {
	findByKeyFn func(ctx context.Context, key model.RelationKey) (*model.Relation, error)
	insertFn    func(ctx context.Context, rel *model.Relation) error
	deleteFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRelationRepository) FindByKey(ctx context.Context, key model.RelationKey) (*model.Relation, error) {
	if m.findByKeyFn != nil {
		return m.findByKeyFn(ctx, key)
	}
	return nil, repository.ErrRelationNotFound
}

func (m *mockRelationRepository) Insert(ctx context.Context, rel *model.Relation) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, rel)
	}
	return nil
}

func (m *mockRelationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockStatsRepository provides a configurable mock for StatsRepository.
type mockStatsRepository struct {
	countVideosFn        func(ctx context.Context, ownerID uuid.UUID) (int64, error)
	countSubscribersFn   func(ctx context.Context, ownerID uuid.UUID) (int64, error)
	countLikesReceivedFn func(ctx context.Context, ownerID uuid.UUID) (int64, error)
	sumViewsFn           func(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

func callOrZero(fn func(context.Context, uuid.UUID) (int64, error), ctx context.Context, id uuid.UUID) (int64, error) {
	if fn != nil {
		return fn(ctx, id)
	}
	return 0, nil
}

func (m *mockStatsRepository) CountVideos(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return callOrZero(m.countVideosFn, ctx, ownerID)
}

func (m *mockStatsRepository) CountSubscribers(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return callOrZero(m.countSubscribersFn, ctx, ownerID)
}

func (m *mockStatsRepository) CountLikesReceived(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return callOrZero(m.countLikesReceivedFn, ctx, ownerID)
}

func (m *mockStatsRepository) SumViews(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return callOrZero(m.sumViewsFn, ctx, ownerID)
}
