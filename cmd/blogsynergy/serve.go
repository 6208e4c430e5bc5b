package main

import (
	"os"
	"os/signal"
	"syscall"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wtorkanorka/BlogSynergy/blog/endpoints"
	bloghttp "github.com/wtorkanorka/BlogSynergy/blog/http"
	"github.com/wtorkanorka/BlogSynergy/blog/services"
	"github.com/wtorkanorka/BlogSynergy/server"
	"github.com/wtorkanorka/BlogSynergy/users"
)

func init() {
	RootCmd.AddCommand(&ServeCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve",
	Short: "Start the http server",
	Long:  "Start the http server on the configured address",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		key, err := readKey(cfg.Auth.Key)
		if err != nil {
			return err
		}

		st, closeStores, err := createStores(ctx, cfg)
		defer closeStores()
		if err != nil {
			return err
		}

		index, closeIndex, err := createIndex(cfg.Bleve.Store)
		defer closeIndex()
		if err != nil {
			return err
		}

		// Create services
		subscriptionService := services.NewSubscriptionService(st.subscriptions)
		postService := services.NewPostService(st.posts, index, st.tags, subscriptionService)
		feedService := services.NewFeedService(st.posts, subscriptionService)
		commentService := services.NewCommentService(st.posts, subscriptionService)
		searchService := services.NewSearchService(st.posts, index, st.tags, subscriptionService)
		tagService := services.NewTagService(st.tags)

		// An in-memory index starts empty
		if cfg.Bleve.Store == "" {
			n, err := searchService.Reindex(ctx)
			if err != nil {
				return err
			}
			logger.Printf("%d posts indexed", n)
		}

		authenticator := users.NewAuthenticator(st.users, cfg.Auth.CacheSize, cfg.Auth.CacheTTL)
		httpConfig := bloghttp.Config{
			Key:           key,
			Authenticator: authenticator,
			Logger:        logger,
			Debug:         cfg.Server.Debug,
			Metrics:       newMetrics(),
		}

		srv := server.New(logger, cfg.Server.Debug)
		users.RegisterHTTPRoutes(srv, authenticator, key, logger, cfg.Server.Debug)
		bloghttp.RegisterPostEndpoints(srv, postService, feedService, commentService, httpConfig)
		bloghttp.RegisterSubscriptionEndpoints(srv, subscriptionService, httpConfig)
		bloghttp.RegisterSearchEndpoints(srv, searchService, tagService, httpConfig)

		return srv.Start(ctx, cfg.Server.Addr)
	},
}

func newMetrics() *endpoints.Metrics {
	labels := []string{"method", "error"}
	return &endpoints.Metrics{
		Requests: kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "blogsynergy",
			Subsystem: "blog",
			Name:      "requests_total",
			Help:      "Number of requests received.",
		}, labels),
		Duration: kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "blogsynergy",
			Subsystem: "blog",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving requests, in seconds.",
		}, labels),
	}
}
