package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// TweetService is thin CRUD over tweets.
type TweetService interface {
	CreateTweet(ctx context.Context, actorID uuid.UUID, content string) (*model.Tweet, error)
	UpdateTweet(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, actorID, tweetID uuid.UUID) error
}

type tweetService struct {
	repo repository.TweetRepository
}

// NewTweetService creates a new TweetService instance.
func NewTweetService(repo repository.TweetRepository) TweetService {
	return &tweetService{repo: repo}
}

func (s *tweetService) CreateTweet(ctx context.Context, actorID uuid.UUID, content string) (*model.Tweet, error) {
	tweet, err := model.NewTweet(actorID, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

func (s *tweetService) UpdateTweet(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*model.Tweet, error) {
	tweet, err := s.ownedTweet(ctx, actorID, tweetID)
	if err != nil {
		return nil, err
	}
	if err := tweet.Edit(content); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, tweet); err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return tweet, nil
}

func (s *tweetService) DeleteTweet(ctx context.Context, actorID, tweetID uuid.UUID) error {
	tweet, err := s.ownedTweet(ctx, actorID, tweetID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tweet.ID); err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	return nil
}

func (s *tweetService) ownedTweet(ctx context.Context, actorID, tweetID uuid.UUID) (*model.Tweet, error) {
	if tweetID == uuid.Nil {
		return nil, model.ErrInvalidTweetID
	}
	tweet, err := s.repo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if !tweet.IsOwnedBy(actorID) {
		return nil, model.ErrNotTweetOwner
	}
	return tweet, nil
}
