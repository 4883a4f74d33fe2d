package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
)

// Tweet is a short text post on an account's channel.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TweetView is a tweet joined with its author.
type TweetView struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	Owner     OwnerSummary
}

var ErrInvalidTweetID = apperr.New(apperr.InvalidArgument, "tweet ID cannot be nil")

// NewTweet creates a tweet owned by ownerID.
func NewTweet(ownerID uuid.UUID, content string) (*Tweet, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	content, err := NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

var ErrNotTweetOwner = apperr.New(apperr.PermissionDenied, "only the author can modify this tweet")

func (t *Tweet) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && t.OwnerID == userID
}

// Edit replaces the content.
func (t *Tweet) Edit(content string) error {
	content, err := NormalizeContent(content)
	if err != nil {
		return err
	}
	t.Content = content
	t.UpdatedAt = time.Now()
	return nil
}
