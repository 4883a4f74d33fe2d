// Package api assembles the HTTP surface of the service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hszk-dev/vidshare/internal/api/handler"
	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// Dependencies are the services and infrastructure the router exposes.
type Dependencies struct {
	Videos    usecase.VideoService
	Feeds     usecase.FeedService
	Relations usecase.RelationService
	Comments  usecase.CommentService
	Tweets    usecase.TweetService
	Dashboard usecase.DashboardService

	Upload handler.UploadConfig
	Health map[string]handler.Pinger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewRouter builds the chi router. Everything under /v1 requires an identity.
func NewRouter(logger *slog.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.NewHealthHandler(deps.Health).Health)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	relations := handler.NewRelationHandler(deps.Relations, deps.Feeds)
	videos := handler.NewVideoHandler(deps.Videos, deps.Feeds, deps.Upload)
	comments := handler.NewCommentHandler(deps.Comments, deps.Feeds)
	tweets := handler.NewTweetHandler(deps.Tweets, deps.Feeds)
	dashboard := handler.NewDashboardHandler(deps.Dashboard)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Identity)

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/c/{channelID}", relations.ToggleSubscription)
			r.Get("/c/{channelID}", relations.ListChannelSubscribers)
			r.Get("/u/{subscriberID}", relations.ListSubscribedChannels)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Post("/toggle/v/{videoID}", relations.ToggleLike(model.TargetVideo, "videoID"))
			r.Post("/toggle/c/{commentID}", relations.ToggleLike(model.TargetComment, "commentID"))
			r.Post("/toggle/t/{tweetID}", relations.ToggleLike(model.TargetTweet, "tweetID"))
			r.Get("/videos", relations.ListLikedVideos)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", videos.ListMine)
			r.Post("/", videos.Publish)
			r.Get("/all", videos.ListAll)
			r.Patch("/toggle/publish/{videoID}", videos.TogglePublish)
			r.Get("/{videoID}", videos.Get)
			r.Patch("/{videoID}", videos.Update)
			r.Delete("/{videoID}", videos.Delete)
		})
		r.Get("/users/{userID}/videos", videos.ListByUser)

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{videoID}", comments.List)
			r.Post("/{videoID}", comments.Add)
			r.Patch("/c/{commentID}", comments.Update)
			r.Delete("/c/{commentID}", comments.Delete)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Post("/", tweets.Create)
			r.Get("/user/{userID}", tweets.ListByUser)
			r.Patch("/{tweetID}", tweets.Update)
			r.Delete("/{tweetID}", tweets.Delete)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", dashboard.Stats)
			r.Get("/videos", dashboard.Videos)
		})
	})

	return r
}
