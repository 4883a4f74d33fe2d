package model

// ChannelStats is computed on demand for one owner and never stored.
type ChannelStats struct {
	TotalVideos      int64
	TotalSubscribers int64
	TotalLikes       int64
	TotalViews       int64
}
