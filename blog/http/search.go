package http

import (
	"context"
	"net/http"

	"github.com/wtorkanorka/BlogSynergy/blog/endpoints"
	"github.com/wtorkanorka/BlogSynergy/blog/services"
)

func RegisterSearchEndpoints(srv Server, search *services.SearchService, tags *services.TagService, cfg Config) {
	ep := endpoints.NewSearchEndpoint(search, tags)

	srv.RegisterHandler("/blog/v1/search", "GET", cfg.handler("search", ep.Search, decodeSearchRequest))
	srv.RegisterHandler("/blog/v1/tags", "GET", cfg.handler("tags", ep.Tags, decodeSearchTagRequest))
}

func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := endpoints.SearchRequest{
		Q:    r.URL.Query().Get("q"),
		Tags: queryTags(r),
	}

	limit, _, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	req.Limit = limit

	return req, nil
}

func decodeSearchTagRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := r.URL.Query().Get("q")
	return req, nil
}
