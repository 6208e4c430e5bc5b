package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type PostService struct {
	posts blog.PostRepository
	index blog.PostIndex
	tags  blog.TagIndex

	resolver resolver
	now      clock
}

func NewPostService(
	posts blog.PostRepository,
	index blog.PostIndex,
	tags blog.TagIndex,
	subscriptions *SubscriptionService,
) *PostService {
	return &PostService{
		posts: posts,
		index: index,
		tags:  tags,

		resolver: resolver{subscriptions: subscriptions},
		now:      utcNow,
	}
}

func validatePost(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required", errors.BadRequest())
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("content is required", errors.BadRequest())
	}
	return nil
}

// Create publishes a new post written by viewer.
func (s *PostService) Create(ctx context.Context, viewer users.User, post blog.Post) (blog.Post, error) {
	if post.ID != "" {
		return blog.Post{}, errors.New("id already set", errors.BadRequest())
	}
	if err := validatePost(post.Title, post.Content); err != nil {
		return blog.Post{}, err
	}

	now := s.now()
	post = blog.Post{
		AuthorID:        viewer.ID,
		AuthorFirstName: viewer.FirstName,
		AuthorLastName:  viewer.LastName,
		Title:           strings.TrimSpace(post.Title),
		Content:         post.Content,
		IsPrivate:       post.IsPrivate,
		Tags:            blog.NormalizeTags(post.Tags),
		PublishedAt:     now,
		UpdatedAt:       now,
		Comments:        []blog.Comment{},
	}

	if err := s.posts.Insert(ctx, &post); err != nil {
		return blog.Post{}, errStore("could not save post", err)
	}

	if err := s.indexPost(post); err != nil {
		return post, err
	}

	return post, nil
}

// Get returns the post as viewer can see it.
func (s *PostService) Get(ctx context.Context, viewer users.User, id string) (blog.Post, error) {
	post, err := s.get(ctx, id)
	if err != nil {
		return blog.Post{}, err
	}

	post, _, err = s.resolver.apply(ctx, viewer, post)
	if err != nil {
		return blog.Post{}, err
	}
	return post, nil
}

// Update replaces the title and content of a post, and its privacy and tags
// when the patch sets them. Only the author can do it.
func (s *PostService) Update(ctx context.Context, viewer users.User, id string, patch blog.PostPatch) (blog.Post, error) {
	if err := validatePost(patch.Title, patch.Content); err != nil {
		return blog.Post{}, err
	}

	post, err := s.get(ctx, id)
	if err != nil {
		return blog.Post{}, err
	}

	if post.AuthorID != viewer.ID {
		return blog.Post{}, errors.New("You cannot edit this post", errors.Forbidden())
	}

	patch.Title = strings.TrimSpace(patch.Title)
	if patch.Tags != nil {
		patch.Tags = blog.NormalizeTags(patch.Tags)
	}

	post, err = s.posts.Update(ctx, id, patch, s.now())
	if err != nil {
		return blog.Post{}, errStore("could not update post", err)
	} else if post.ID == "" {
		return blog.Post{}, errPostNotFound(id)
	}

	if err := s.indexPost(post); err != nil {
		return post, err
	}

	return post, nil
}

// Delete removes a post. The author and the admins can do it.
func (s *PostService) Delete(ctx context.Context, viewer users.User, id string) error {
	post, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return errors.New("You cannot delete this post", errors.Forbidden())
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return errStore("could not delete post", err)
	}

	if err := s.index.Delete(id); err != nil {
		return errInconsistent(fmt.Sprintf("post %s was deleted but is still indexed", id), err)
	}
	return nil
}

func (s *PostService) get(ctx context.Context, id string) (blog.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return blog.Post{}, errStore("could not get post", err)
	} else if post.ID == "" {
		return blog.Post{}, errPostNotFound(id)
	}
	return post, nil
}

// indexPost indexes the post for search. Only the tags of public posts reach
// the tag index, which every viewer can list.
func (s *PostService) indexPost(post blog.Post) error {
	if !post.IsPrivate {
		if err := s.tags.Index(post.Tags...); err != nil {
			return errInconsistent(fmt.Sprintf("post %s was saved but its tags were not indexed", post.ID), err)
		}
	}

	if err := s.index.Index(post); err != nil {
		return errInconsistent(fmt.Sprintf("post %s was saved but not indexed", post.ID), err)
	}
	return nil
}
