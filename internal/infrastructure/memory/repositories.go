package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// RelationRepository implements repository.RelationRepository.
type RelationRepository struct{ s *Store }

// VideoRepository implements repository.VideoRepository.
type VideoRepository struct{ s *Store }

// CommentRepository implements repository.CommentRepository.
type CommentRepository struct{ s *Store }

// TweetRepository implements repository.TweetRepository.
type TweetRepository struct{ s *Store }

func (s *Store) Relations() *RelationRepository { return &RelationRepository{s: s} }
func (s *Store) Videos() *VideoRepository       { return &VideoRepository{s: s} }
func (s *Store) Comments() *CommentRepository   { return &CommentRepository{s: s} }
func (s *Store) Tweets() *TweetRepository       { return &TweetRepository{s: s} }

func (r *RelationRepository) FindByKey(_ context.Context, key model.RelationKey) (*model.Relation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.relationIndex[key]
	if !ok {
		return nil, repository.ErrRelationNotFound
	}
	rel := r.s.relations[id].rel
	return &rel, nil
}

func (r *RelationRepository) Insert(_ context.Context, rel *model.Relation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.relationIndex[rel.RelationKey]; exists {
		return repository.ErrDuplicateRelation
	}
	r.s.relations[rel.ID] = relationRow{rel: *rel, seq: r.s.nextSeq()}
	r.s.relationIndex[rel.RelationKey] = rel.ID
	return nil
}

func (r *RelationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.relations[id]
	if !ok {
		return repository.ErrRelationNotFound
	}
	delete(r.s.relations, id)
	delete(r.s.relationIndex, row.rel.RelationKey)
	return nil
}

// Count returns the number of stored relations.
func (r *RelationRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.relations)
}

func (r *VideoRepository) Create(_ context.Context, video *model.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.videos[video.ID]; exists {
		return repository.ErrDuplicateVideo
	}
	r.s.videos[video.ID] = videoRow{video: *video, seq: r.s.nextSeq()}
	return nil
}

func (r *VideoRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Video, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.videos[id]
	if !ok {
		return nil, repository.ErrVideoNotFound
	}
	return r.s.withOwner(row.video), nil
}

func (r *VideoRepository) Update(_ context.Context, video *model.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.videos[video.ID]
	if !ok {
		return repository.ErrVideoNotFound
	}
	row.video.Title = video.Title
	row.video.Description = video.Description
	row.video.ThumbnailURL = video.ThumbnailURL
	row.video.IsPublished = video.IsPublished
	row.video.UpdatedAt = video.UpdatedAt
	r.s.videos[video.ID] = row
	return nil
}

func (r *VideoRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.videos[id]; !ok {
		return repository.ErrVideoNotFound
	}
	delete(r.s.videos, id)
	return nil
}

func (r *CommentRepository) Create(_ context.Context, c *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments[c.ID] = commentRow{comment: *c, seq: r.s.nextSeq()}
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	c := row.comment
	return &c, nil
}

func (r *CommentRepository) Update(_ context.Context, c *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.comments[c.ID]
	if !ok {
		return repository.ErrCommentNotFound
	}
	row.comment.Content = c.Content
	row.comment.UpdatedAt = c.UpdatedAt
	r.s.comments[c.ID] = row
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *TweetRepository) Create(_ context.Context, t *model.Tweet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tweets[t.ID] = tweetRow{tweet: *t, seq: r.s.nextSeq()}
	return nil
}

func (r *TweetRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.tweets[id]
	if !ok {
		return nil, repository.ErrTweetNotFound
	}
	t := row.tweet
	return &t, nil
}

func (r *TweetRepository) Update(_ context.Context, t *model.Tweet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.tweets[t.ID]
	if !ok {
		return repository.ErrTweetNotFound
	}
	row.tweet.Content = t.Content
	row.tweet.UpdatedAt = t.UpdatedAt
	r.s.tweets[t.ID] = row
	return nil
}

func (r *TweetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tweets[id]; !ok {
		return repository.ErrTweetNotFound
	}
	delete(r.s.tweets, id)
	return nil
}

var (
	_ repository.RelationRepository = (*RelationRepository)(nil)
	_ repository.VideoRepository    = (*VideoRepository)(nil)
	_ repository.CommentRepository  = (*CommentRepository)(nil)
	_ repository.TweetRepository    = (*TweetRepository)(nil)
)
