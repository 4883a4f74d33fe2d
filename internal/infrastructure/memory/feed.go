package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// FeedRepository implements repository.FeedRepository with the same
// inner-join semantics as the SQL version: dangling rows are skipped.
type FeedRepository struct{ s *Store }

// StatsRepository implements repository.StatsRepository.
type StatsRepository struct{ s *Store }

func (s *Store) Feeds() *FeedRepository  { return &FeedRepository{s: s} }
func (s *Store) Stats() *StatsRepository { return &StatsRepository{s: s} }

func (f *FeedRepository) ListChannelSubscribers(_ context.Context, channelID uuid.UUID, p model.Pagination) ([]model.ProfileSummary, int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var rows []ordered[model.ProfileSummary]
	for _, r := range f.s.relations {
		if r.rel.TargetKind != model.TargetChannel || r.rel.TargetID != channelID {
			continue
		}
		if prof, ok := f.s.profile(r.rel.ActorID); ok {
			rows = append(rows, ordered[model.ProfileSummary]{prof, r.rel.CreatedAt, r.seq})
		}
	}
	items, total := paginate(rows, p)
	return items, total, nil
}

func (f *FeedRepository) ListSubscribedChannels(_ context.Context, subscriberID uuid.UUID, p model.Pagination) ([]model.ProfileSummary, int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var rows []ordered[model.ProfileSummary]
	for _, r := range f.s.relations {
		if r.rel.TargetKind != model.TargetChannel || r.rel.ActorID != subscriberID {
			continue
		}
		if prof, ok := f.s.profile(r.rel.TargetID); ok {
			rows = append(rows, ordered[model.ProfileSummary]{prof, r.rel.CreatedAt, r.seq})
		}
	}
	items, total := paginate(rows, p)
	return items, total, nil
}

func (f *FeedRepository) ListLikedVideos(_ context.Context, actorID uuid.UUID) ([]model.VideoSummary, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var rows []ordered[model.VideoSummary]
	for _, r := range f.s.relations {
		if r.rel.TargetKind != model.TargetVideo || r.rel.ActorID != actorID {
			continue
		}
		vr, ok := f.s.videos[r.rel.TargetID]
		if !ok {
			continue
		}
		owner, ok := f.s.owner(vr.video.OwnerID)
		if !ok {
			continue
		}
		v := vr.video
		rows = append(rows, ordered[model.VideoSummary]{model.VideoSummary{
			ID:              v.ID,
			Title:           v.Title,
			Description:     v.Description,
			AssetURL:        v.AssetURL,
			ThumbnailURL:    v.ThumbnailURL,
			DurationSeconds: v.DurationSeconds,
			ViewCount:       v.ViewCount,
			CreatedAt:       v.CreatedAt,
			Owner:           owner,
		}, r.rel.CreatedAt, r.seq})
	}
	sortFeed(rows)
	return project(rows), nil
}

func (f *FeedRepository) ListVideoComments(_ context.Context, videoID uuid.UUID, p model.Pagination) ([]model.CommentView, int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var rows []ordered[model.CommentView]
	for _, c := range f.s.comments {
		if c.comment.VideoID != videoID {
			continue
		}
		if owner, ok := f.s.owner(c.comment.OwnerID); ok {
			view := model.CommentView{ID: c.comment.ID, Content: c.comment.Content, CreatedAt: c.comment.CreatedAt, Owner: owner}
			rows = append(rows, ordered[model.CommentView]{view, c.comment.CreatedAt, c.seq})
		}
	}
	items, total := paginate(rows, p)
	return items, total, nil
}

func (f *FeedRepository) ListOwnerVideos(_ context.Context, ownerID uuid.UUID, order model.VideoSort, p model.Pagination) ([]*model.Video, int64, error) {
	return f.listVideos(func(v *model.Video) bool { return v.OwnerID == ownerID }, order, p)
}

func (f *FeedRepository) ListAllVideos(_ context.Context, order model.VideoSort, p model.Pagination) ([]*model.Video, int64, error) {
	return f.listVideos(func(*model.Video) bool { return true }, order, p)
}

// listVideos is a left join: a video without an owner row stays in the list.
func (f *FeedRepository) listVideos(match func(*model.Video) bool, order model.VideoSort, p model.Pagination) ([]*model.Video, int64, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var rows []ordered[*model.Video]
	for _, vr := range f.s.videos {
		v := f.s.withOwner(vr.video)
		if match(v) {
			rows = append(rows, ordered[*model.Video]{v, v.CreatedAt, vr.seq})
		}
	}
	sortVideos(rows, order)
	items, total := slicePage(rows, p)
	return items, total, nil
}

func (f *FeedRepository) ListUserTweets(_ context.Context, userID uuid.UUID) ([]model.TweetView, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	owner, ok := f.s.owner(userID)
	if !ok {
		return []model.TweetView{}, nil
	}

	var rows []ordered[model.TweetView]
	for _, t := range f.s.tweets {
		if t.tweet.OwnerID != userID {
			continue
		}
		view := model.TweetView{ID: t.tweet.ID, Content: t.tweet.Content, CreatedAt: t.tweet.CreatedAt, Owner: owner}
		rows = append(rows, ordered[model.TweetView]{view, t.tweet.CreatedAt, t.seq})
	}
	sortFeed(rows)
	return project(rows), nil
}

func (st *StatsRepository) CountVideos(_ context.Context, ownerID uuid.UUID) (int64, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	var n int64
	for _, vr := range st.s.videos {
		if vr.video.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (st *StatsRepository) CountSubscribers(_ context.Context, ownerID uuid.UUID) (int64, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	var n int64
	for _, r := range st.s.relations {
		if r.rel.TargetKind == model.TargetChannel && r.rel.TargetID == ownerID {
			n++
		}
	}
	return n, nil
}

func (st *StatsRepository) CountLikesReceived(_ context.Context, ownerID uuid.UUID) (int64, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	var n int64
	for _, r := range st.s.relations {
		if r.rel.TargetKind != model.TargetVideo {
			continue
		}
		if vr, ok := st.s.videos[r.rel.TargetID]; ok && vr.video.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (st *StatsRepository) SumViews(_ context.Context, ownerID uuid.UUID) (int64, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	var n int64
	for _, vr := range st.s.videos {
		if vr.video.OwnerID == ownerID {
			n += vr.video.ViewCount
		}
	}
	return n, nil
}

var (
	_ repository.FeedRepository  = (*FeedRepository)(nil)
	_ repository.StatsRepository = (*StatsRepository)(nil)
)
