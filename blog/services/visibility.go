package services

import (
	"context"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/users"
)

// MembershipFunc tells whether viewerID is a subscriber of ownerID.
type MembershipFunc func(ownerID, viewerID string) (bool, error)

// CanView tells whether viewer may read the content of post. The first rule
// that matches wins: authors see their posts, everybody sees public posts,
// subscribers of the author see private ones. The membership is only looked
// up for private posts of somebody else.
func CanView(viewer users.User, post blog.Post, isSubscribed MembershipFunc) (bool, error) {
	if viewer.ID != "" && viewer.ID == post.AuthorID {
		return true, nil
	}

	if !post.IsPrivate {
		return true, nil
	}

	if viewer.ID == "" {
		return false, nil
	}
	return isSubscribed(post.AuthorID, viewer.ID)
}

// Redact returns the shell of post: who wrote it and when, nothing of what
// it says.
func Redact(post blog.Post) blog.Post {
	return blog.Post{
		ID:              post.ID,
		AuthorID:        post.AuthorID,
		AuthorFirstName: post.AuthorFirstName,
		AuthorLastName:  post.AuthorLastName,
		Title:           blog.RestrictedMarker,
		Content:         blog.RestrictedMarker,
		IsPrivate:       post.IsPrivate,
		Tags:            []string{},
		PublishedAt:     post.PublishedAt,
		UpdatedAt:       post.UpdatedAt,
		Comments:        []blog.Comment{},
		Restricted:      true,
	}
}

// resolver applies the visibility rules against the subscription graph.
type resolver struct {
	subscriptions *SubscriptionService
}

func (r resolver) membership(ctx context.Context) MembershipFunc {
	return func(ownerID, viewerID string) (bool, error) {
		return r.subscriptions.IsSubscribed(ctx, ownerID, viewerID)
	}
}

// apply returns post as viewer is allowed to see it, and whether that is the
// full post.
func (r resolver) apply(ctx context.Context, viewer users.User, post blog.Post) (blog.Post, bool, error) {
	ok, err := CanView(viewer, post, r.membership(ctx))
	if err != nil {
		return blog.Post{}, false, err
	}

	if !ok {
		return Redact(post), false, nil
	}

	post.Normalize()
	return post, true, nil
}

func (r resolver) applyAll(ctx context.Context, viewer users.User, posts []blog.Post) ([]blog.Post, error) {
	resolved := make([]blog.Post, len(posts))
	for i, post := range posts {
		var err error
		resolved[i], _, err = r.apply(ctx, viewer, post)
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}
