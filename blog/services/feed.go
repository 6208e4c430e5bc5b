package services

import (
	"context"
	"fmt"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type FeedMode string

const (
	FeedGlobal     FeedMode = "global"
	FeedSubscribed FeedMode = "subscribed"
)

const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 100
)

type FeedRequest struct {
	Mode  FeedMode
	Limit int
	Tags  []string
}

type FeedService struct {
	posts         blog.PostRepository
	subscriptions *SubscriptionService
	resolver      resolver
}

func NewFeedService(posts blog.PostRepository, subscriptions *SubscriptionService) *FeedService {
	return &FeedService{
		posts:         posts,
		subscriptions: subscriptions,
		resolver:      resolver{subscriptions: subscriptions},
	}
}

// feedLimit returns the number of posts to fetch for a requested limit.
func feedLimit(limit int) int {
	if limit <= 0 {
		return DefaultFeedLimit
	} else if limit > MaxFeedLimit {
		return MaxFeedLimit
	}
	return limit
}

// Assemble returns the most recent posts of the feed, as viewer can see
// them. The global feed shows every author, the subscribed feed the authors
// viewer subscribed to. Posts are redacted, never dropped.
func (s *FeedService) Assemble(ctx context.Context, viewer users.User, mode FeedMode, limit int) ([]blog.Post, error) {
	filter := blog.PostFilter{Limit: feedLimit(limit)}

	switch mode {
	case FeedGlobal, "":
	case FeedSubscribed:
		owners, err := s.subscriptions.Following(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		if len(owners) == 0 {
			return []blog.Post{}, nil
		}
		filter.AuthorIDs = owners
	default:
		return nil, errors.New(fmt.Sprintf("unknown feed mode %q", mode), errors.BadRequest())
	}

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, errStore("could not list posts", err)
	}

	return s.resolver.applyAll(ctx, viewer, posts)
}

// Feed assembles the feed then ranks it against the requested tags.
func (s *FeedService) Feed(ctx context.Context, viewer users.User, req FeedRequest) ([]blog.Post, error) {
	posts, err := s.Assemble(ctx, viewer, req.Mode, req.Limit)
	if err != nil {
		return nil, err
	}

	return Rank(posts, req.Tags), nil
}
