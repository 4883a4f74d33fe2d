package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/memory"
)

func TestCommentService(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	authorID := uuid.New()
	video := sampleVideo(uuid.New())
	_ = store.Videos().Create(ctx, video)

	svc := NewCommentService(store.Comments(), store.Videos())

	if _, err := svc.AddComment(ctx, authorID, uuid.New(), "hello"); !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("AddComment() on missing video error = %v, want %v", err, repository.ErrVideoNotFound)
	}
	if _, err := svc.AddComment(ctx, authorID, video.ID, "   "); !errors.Is(err, model.ErrEmptyContent) {
		t.Errorf("AddComment() blank error = %v, want %v", err, model.ErrEmptyContent)
	}

	comment, err := svc.AddComment(ctx, authorID, video.ID, " hello ")
	if err != nil {
		t.Fatalf("AddComment() unexpected error = %v", err)
	}
	if comment.Content != "hello" {
		t.Errorf("Content = %q, want %q", comment.Content, "hello")
	}

	if _, err := svc.UpdateComment(ctx, uuid.New(), comment.ID, "hijack"); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("UpdateComment() by stranger error = %v, want PermissionDenied", err)
	}
	updated, err := svc.UpdateComment(ctx, authorID, comment.ID, "edited")
	if err != nil || updated.Content != "edited" {
		t.Fatalf("UpdateComment() = %+v, %v", updated, err)
	}

	if err := svc.DeleteComment(ctx, uuid.New(), comment.ID); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("DeleteComment() by stranger error = %v, want %v", err, model.ErrNotCommentOwner)
	}
	if err := svc.DeleteComment(ctx, authorID, comment.ID); err != nil {
		t.Fatalf("DeleteComment() unexpected error = %v", err)
	}
	if err := svc.DeleteComment(ctx, authorID, comment.ID); !errors.Is(err, repository.ErrCommentNotFound) {
		t.Errorf("second DeleteComment() error = %v, want %v", err, repository.ErrCommentNotFound)
	}
	if err := svc.DeleteComment(ctx, authorID, uuid.Nil); !errors.Is(err, model.ErrInvalidCommentID) {
		t.Errorf("DeleteComment(nil) error = %v, want %v", err, model.ErrInvalidCommentID)
	}
}

func TestTweetService(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	author := memory.User{ID: uuid.New(), Username: "poster"}
	store.PutUser(author)

	svc := NewTweetService(store.Tweets())
	feeds := NewFeedService(store.Feeds())

	first, err := svc.CreateTweet(ctx, author.ID, "first")
	if err != nil {
		t.Fatalf("CreateTweet() unexpected error = %v", err)
	}
	if _, err := svc.CreateTweet(ctx, uuid.Nil, "anon"); !errors.Is(err, model.ErrInvalidOwnerID) {
		t.Errorf("CreateTweet(nil) error = %v, want %v", err, model.ErrInvalidOwnerID)
	}

	if _, err := svc.UpdateTweet(ctx, uuid.New(), first.ID, "x"); !errors.Is(err, model.ErrNotTweetOwner) {
		t.Errorf("UpdateTweet() by stranger error = %v, want %v", err, model.ErrNotTweetOwner)
	}
	if _, err := svc.UpdateTweet(ctx, author.ID, first.ID, "first, edited"); err != nil {
		t.Fatalf("UpdateTweet() unexpected error = %v", err)
	}

	tweets, err := feeds.ListUserTweets(ctx, author.ID)
	if err != nil {
		t.Fatalf("ListUserTweets() unexpected error = %v", err)
	}
	if len(tweets) != 1 || tweets[0].Content != "first, edited" || tweets[0].Owner.Username != "poster" {
		t.Errorf("ListUserTweets() = %+v", tweets)
	}

	if err := svc.DeleteTweet(ctx, author.ID, first.ID); err != nil {
		t.Fatalf("DeleteTweet() unexpected error = %v", err)
	}
	if _, err := svc.UpdateTweet(ctx, author.ID, first.ID, "gone"); !errors.Is(err, repository.ErrTweetNotFound) {
		t.Errorf("UpdateTweet() after delete error = %v, want %v", err, repository.ErrTweetNotFound)
	}
}
