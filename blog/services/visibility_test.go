package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/users"
)

func TestCanView(t *testing.T) {
	public := blog.Post{ID: "p1", AuthorID: alice.ID}
	private := blog.Post{ID: "p2", AuthorID: alice.ID, IsPrivate: true}

	subscribers := map[string]bool{bob.ID: true}
	membership := func(ownerID, viewerID string) (bool, error) {
		return ownerID == alice.ID && subscribers[viewerID], nil
	}

	var tts = map[string]struct {
		Viewer   users.User
		Post     blog.Post
		Expected bool
	}{
		"author sees public":      {alice, public, true},
		"author sees private":     {alice, private, true},
		"anybody sees public":     {carol, public, true},
		"anonymous sees public":   {users.User{}, public, true},
		"subscriber sees private": {bob, private, true},
		"stranger does not":       {carol, private, false},
		"admin is not special":    {admin, private, false},
		"anonymous does not":      {users.User{}, private, false},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			ok, err := CanView(tt.Viewer, tt.Post, membership)
			require.NoError(t, err)
			assert.Equal(t, tt.Expected, ok)
		})
	}
}

func TestCanView_MembershipOnlyForPrivatePosts(t *testing.T) {
	calls := 0
	membership := func(ownerID, viewerID string) (bool, error) {
		calls++
		return false, nil
	}

	_, err := CanView(carol, blog.Post{AuthorID: alice.ID}, membership)
	require.NoError(t, err)
	_, err = CanView(alice, blog.Post{AuthorID: alice.ID, IsPrivate: true}, membership)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)

	_, err = CanView(carol, blog.Post{AuthorID: alice.ID, IsPrivate: true}, membership)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCanView_MembershipError(t *testing.T) {
	membership := func(ownerID, viewerID string) (bool, error) {
		return false, errors.New("store down")
	}

	_, err := CanView(carol, blog.Post{AuthorID: alice.ID, IsPrivate: true}, membership)
	assert.Error(t, err)
}

func TestRedact(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	post := blog.Post{
		ID:              "p1",
		AuthorID:        alice.ID,
		AuthorFirstName: alice.FirstName,
		AuthorLastName:  alice.LastName,
		Title:           "secret title",
		Content:         "secret content",
		IsPrivate:       true,
		Tags:            []string{"secret"},
		PublishedAt:     at,
		UpdatedAt:       at,
		Comments:        []blog.Comment{{ID: "c1", Content: "secret comment"}},
	}

	redacted := Redact(post)
	assert.Equal(t, post.ID, redacted.ID)
	assert.Equal(t, post.AuthorID, redacted.AuthorID)
	assert.Equal(t, post.AuthorFirstName, redacted.AuthorFirstName)
	assert.Equal(t, post.AuthorLastName, redacted.AuthorLastName)
	assert.True(t, redacted.IsPrivate)
	assert.Equal(t, at, redacted.PublishedAt)

	assert.Equal(t, blog.RestrictedMarker, redacted.Title)
	assert.Equal(t, blog.RestrictedMarker, redacted.Content)
	assert.NotNil(t, redacted.Tags)
	assert.Empty(t, redacted.Tags)
	assert.NotNil(t, redacted.Comments)
	assert.Empty(t, redacted.Comments, "a redacted post carries no comments")
	assert.True(t, redacted.Restricted)

	assert.Equal(t, "secret title", post.Title, "the original should not be touched")
	assert.Len(t, post.Comments, 1)
}

func TestResolver_Apply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	private := f.insert(t, alice, "private", true, time.Now())

	r := resolver{subscriptions: f.subscriptions}

	resolved, ok, err := r.apply(ctx, bob, private)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, resolved.Restricted)

	f.subscribe(t, alice, bob)

	resolved, ok, err = r.apply(ctx, bob, private)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, resolved.Restricted)
	assert.Equal(t, "private", resolved.Title)
}
