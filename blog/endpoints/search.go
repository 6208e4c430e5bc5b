package endpoints

import (
	"context"

	"github.com/wtorkanorka/BlogSynergy/blog/services"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type SearchEndpoint struct {
	search *services.SearchService
	tags   *services.TagService
}

func NewSearchEndpoint(search *services.SearchService, tags *services.TagService) *SearchEndpoint {
	return &SearchEndpoint{
		search: search,
		tags:   tags,
	}
}

type SearchRequest struct {
	Q     string
	Tags  []string
	Limit int
}

func (ep *SearchEndpoint) Search(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(SearchRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	posts, err := ep.search.Search(ctx, user, req.Q, req.Tags, req.Limit)
	if err != nil {
		return nil, err
	}

	return data(posts), nil
}

func (ep *SearchEndpoint) Tags(ctx context.Context, r interface{}) (interface{}, error) {
	if _, err := users.FromContext(ctx); err != nil {
		return nil, err
	}

	q, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	tags, err := ep.tags.Search(q)
	if err != nil {
		return nil, err
	}

	return data(tags), nil
}
