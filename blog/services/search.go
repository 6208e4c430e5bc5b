package services

import (
	"context"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type SearchService struct {
	posts blog.PostRepository
	index blog.PostIndex
	tags  blog.TagIndex

	resolver resolver
}

func NewSearchService(
	posts blog.PostRepository,
	index blog.PostIndex,
	tags blog.TagIndex,
	subscriptions *SubscriptionService,
) *SearchService {
	return &SearchService{
		posts: posts,
		index: index,
		tags:  tags,

		resolver: resolver{subscriptions: subscriptions},
	}
}

// Search returns the posts matching q and carrying all of tags. Posts viewer
// cannot read are left out: a redacted hit would tell what the private post
// talks about.
func (s *SearchService) Search(ctx context.Context, viewer users.User, q string, tags []string, limit int) ([]blog.Post, error) {
	limit = feedLimit(limit)

	// Over-fetch a little, some hits may be dropped.
	ids, err := s.index.Search(q, blog.NormalizeTags(tags), 2*limit)
	if err != nil {
		return nil, errStore("could not search posts", err)
	}

	posts := make([]blog.Post, 0, len(ids))
	for _, id := range ids {
		if len(posts) == limit {
			break
		}

		post, err := s.posts.Get(ctx, id)
		if err != nil {
			return nil, errStore("could not get post", err)
		} else if post.ID == "" {
			// Stale index entry
			continue
		}

		post, ok, err := s.resolver.apply(ctx, viewer, post)
		if err != nil {
			return nil, err
		} else if !ok {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Reindex rebuilds the search and tag indexes from the stored posts. Tags of
// private posts are left out of the tag index. It returns the number of posts
// indexed.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	posts, err := s.posts.List(ctx, blog.PostFilter{})
	if err != nil {
		return 0, errStore("could not list posts", err)
	}

	if err := s.index.IndexAll(posts); err != nil {
		return 0, errStore("could not index posts", err)
	}

	for _, post := range posts {
		if post.IsPrivate {
			continue
		}
		if err := s.tags.Index(post.Tags...); err != nil {
			return 0, errStore("could not index tags", err)
		}
	}
	return len(posts), nil
}
