package endpoints

import (
	"context"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/blog/services"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type PostEndpoint struct {
	posts    *services.PostService
	feed     *services.FeedService
	comments *services.CommentService
}

func NewPostEndpoint(posts *services.PostService, feed *services.FeedService, comments *services.CommentService) *PostEndpoint {
	return &PostEndpoint{
		posts:    posts,
		feed:     feed,
		comments: comments,
	}
}

type FeedRequest struct {
	Mode  services.FeedMode
	Limit int
	Tags  []string
}

type UpdatePostRequest struct {
	ID    string
	Patch blog.PostPatch
}

type CommentRequest struct {
	PostID  string
	Content string
}

func (ep *PostEndpoint) Feed(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(FeedRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	posts, err := ep.feed.Feed(ctx, user, services.FeedRequest{
		Mode:  req.Mode,
		Limit: req.Limit,
		Tags:  req.Tags,
	})
	if err != nil {
		return nil, err
	}

	return data(posts), nil
}

func (ep *PostEndpoint) Create(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	post, ok := r.(blog.Post)
	if !ok {
		return nil, errInvalidRequest
	}

	post, err = ep.posts.Create(ctx, user, post)
	if err != nil {
		return nil, err
	}

	return data(post), nil
}

func (ep *PostEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	post, err := ep.posts.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	return data(post), nil
}

func (ep *PostEndpoint) Update(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(UpdatePostRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	post, err := ep.posts.Update(ctx, user, req.ID, req.Patch)
	if err != nil {
		return nil, err
	}

	return data(post), nil
}

func (ep *PostEndpoint) Delete(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	err = ep.posts.Delete(ctx, user, id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"ok": true,
	}, nil
}

func (ep *PostEndpoint) Comment(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(CommentRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	post, err := ep.comments.Append(ctx, user, req.PostID, req.Content)
	if err != nil {
		return nil, err
	}

	return data(post), nil
}
