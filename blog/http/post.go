package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/blog/endpoints"
	"github.com/wtorkanorka/BlogSynergy/blog/services"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/server"
)

func RegisterPostEndpoints(
	srv Server,
	posts *services.PostService,
	feed *services.FeedService,
	comments *services.CommentService,
	cfg Config,
) {
	// Create endpoint
	ep := endpoints.NewPostEndpoint(posts, feed, comments)

	// Register all handlers
	srv.RegisterHandler("/blog/v1/posts", "GET", cfg.handler("feed", ep.Feed, decodeFeedRequest))
	srv.RegisterHandler("/blog/v1/posts", "POST", cfg.handler("create_post", ep.Create, decodeCreatePostRequest))
	srv.RegisterHandler("/blog/v1/posts/:id", "GET", cfg.handler("get_post", ep.Get, decodeIDParam("id")))
	srv.RegisterHandler("/blog/v1/posts/:id", "PUT", cfg.handler("update_post", ep.Update, decodeUpdatePostRequest))
	srv.RegisterHandler("/blog/v1/posts/:id", "DELETE", cfg.handler("delete_post", ep.Delete, decodeIDParam("id")))
	srv.RegisterHandler("/blog/v1/posts/:id/comments", "POST", cfg.handler("comment", ep.Comment, decodeCommentRequest))
}

// decodeFeedRequest reads mode, limit and tags from the query. The names used
// by the first web client are understood too: nonGlobal=true asks for the
// subscribed feed and range=N for N+1 posts.
func decodeFeedRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := endpoints.FeedRequest{
		Mode: services.FeedMode(r.URL.Query().Get("mode")),
		Tags: queryTags(r),
	}

	if req.Mode == "" {
		nonGlobal, _, err := queryBool(r, "nonGlobal")
		if err != nil {
			return nil, err
		}
		if nonGlobal {
			req.Mode = services.FeedSubscribed
		} else {
			req.Mode = services.FeedGlobal
		}
	}

	limit, ok, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	if !ok {
		var last int
		last, ok, err = queryInt(r, "range")
		if err != nil {
			return nil, err
		}
		if ok {
			limit = last + 1
		}
	}
	req.Limit = limit

	return req, nil
}

// queryTags accepts tags=a&tags=b as well as tags=a,b.
func queryTags(r *http.Request) []string {
	var tags []string
	for _, v := range r.URL.Query()["tags"] {
		tags = append(tags, strings.Split(v, ",")...)
	}
	return blog.NormalizeTags(tags)
}

func decodeCreatePostRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var post blog.Post
	if err := decodeJSON(r.Body, &post); err != nil {
		return nil, err
	}

	return post, nil
}

func decodeUpdatePostRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	id := server.Params(ctx)["id"]
	var body struct {
		ID string `json:"id"`
		blog.PostPatch
	}
	if err := decodeJSON(r.Body, &body); err != nil {
		return nil, err
	}

	if body.ID != "" && body.ID != id {
		return nil, errors.New("ids do not match between url and body", errors.BadRequest())
	}

	return endpoints.UpdatePostRequest{ID: id, Patch: body.PostPatch}, nil
}

func decodeCommentRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r.Body, &body); err != nil {
		return nil, err
	}

	return endpoints.CommentRequest{
		PostID:  server.Params(ctx)["id"],
		Content: body.Content,
	}, nil
}
