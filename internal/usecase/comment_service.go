package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// CommentService is thin CRUD over comments. Listing lives in FeedService.
type CommentService interface {
	AddComment(ctx context.Context, actorID, videoID uuid.UUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{comments: comments, videos: videos}
}

func (s *commentService) AddComment(ctx context.Context, actorID, videoID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := model.NewComment(videoID, actorID, content)
	if err != nil {
		return nil, err
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.ownedComment(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	if err := comment.Edit(content); err != nil {
		return nil, err
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.ownedComment(ctx, actorID, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) ownedComment(ctx context.Context, actorID, commentID uuid.UUID) (*model.Comment, error) {
	if commentID == uuid.Nil {
		return nil, model.ErrInvalidCommentID
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !comment.IsOwnedBy(actorID) {
		return nil, model.ErrNotCommentOwner
	}
	return comment, nil
}
