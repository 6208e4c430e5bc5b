package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/users"
)

const anonymousName = "Anonymous"

type CommentService struct {
	posts    blog.PostRepository
	resolver resolver
	now      clock
}

func NewCommentService(posts blog.PostRepository, subscriptions *SubscriptionService) *CommentService {
	return &CommentService{
		posts:    posts,
		resolver: resolver{subscriptions: subscriptions},
		now:      utcNow,
	}
}

// Append adds a comment by viewer at the end of the comments of the post. The
// append is a single store operation: concurrent comments on the same post
// are all kept. The post is returned as written.
func (s *CommentService) Append(ctx context.Context, viewer users.User, postID, content string) (blog.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return blog.Post{}, errors.New("comment cannot be empty", errors.BadRequest())
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return blog.Post{}, errStore("could not get post", err)
	} else if post.ID == "" {
		return blog.Post{}, errPostNotFound(postID)
	}

	ok, err := CanView(viewer, post, s.resolver.membership(ctx))
	if err != nil {
		return blog.Post{}, err
	} else if !ok {
		return blog.Post{}, errors.New("You cannot comment on this post", errors.Forbidden())
	}

	firstName := viewer.FirstName
	if firstName == "" {
		firstName = anonymousName
	}

	comment := blog.Comment{
		ID:              uuid.NewString(),
		UserID:          viewer.ID,
		AuthorFirstName: firstName,
		AuthorLastName:  viewer.LastName,
		Content:         content,
		CreatedAt:       s.now(),
	}

	written, err := s.posts.AppendComment(ctx, postID, comment)
	if err != nil {
		return blog.Post{}, errStore("could not append comment", err)
	} else if written.ID == "" {
		// Deleted since we read it
		return blog.Post{}, errPostNotFound(postID)
	}

	written, _, err = s.resolver.apply(ctx, viewer, written)
	if err != nil {
		return blog.Post{}, err
	}
	return written, nil
}
