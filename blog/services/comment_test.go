package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/users"
)

func TestCommentService_Append(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.insert(t, alice, "public", false, time.Now())

	written, err := f.comments.Append(ctx, bob, post.ID, "  first!  ")
	require.NoError(t, err)
	require.Len(t, written.Comments, 1)
	c := written.Comments[0]
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, bob.ID, c.UserID)
	assert.Equal(t, "Bob", c.AuthorFirstName)
	assert.Equal(t, "", c.AuthorLastName)
	assert.Equal(t, "first!", c.Content)
	assert.False(t, c.CreatedAt.IsZero())

	written, err = f.comments.Append(ctx, carol, post.ID, "second")
	require.NoError(t, err)
	require.Len(t, written.Comments, 2)
	assert.Equal(t, "first!", written.Comments[0].Content)
	assert.Equal(t, "second", written.Comments[1].Content)
	assert.Equal(t, "Danvers", written.Comments[1].AuthorLastName)
	assert.NotEqual(t, written.Comments[0].ID, written.Comments[1].ID)
}

func TestCommentService_AnonymousName(t *testing.T) {
	f := newFixture(t)
	post := f.insert(t, alice, "public", false, time.Now())

	written, err := f.comments.Append(context.Background(), users.User{ID: "nameless"}, post.ID, "hi")
	require.NoError(t, err)
	require.Len(t, written.Comments, 1)
	assert.Equal(t, "Anonymous", written.Comments[0].AuthorFirstName)
	assert.Equal(t, "", written.Comments[0].AuthorLastName)
}

func TestCommentService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	public := f.insert(t, alice, "public", false, time.Now())
	private := f.insert(t, alice, "private", true, time.Now())

	_, err := f.comments.Append(ctx, bob, public.ID, "   ")
	errors.AssertCode(t, err, http.StatusBadRequest)

	_, err = f.comments.Append(ctx, bob, "does-not-exist", "hello")
	errors.AssertCode(t, err, http.StatusNotFound)

	_, err = f.comments.Append(ctx, bob, private.ID, "hello")
	errors.AssertCode(t, err, http.StatusForbidden)

	retrieved, err := f.posts.Get(ctx, private.ID)
	require.NoError(t, err)
	assert.Empty(t, retrieved.Comments, "nothing should be written on failure")

	// Subscribers and the author can comment
	f.subscribe(t, alice, bob)
	_, err = f.comments.Append(ctx, bob, private.ID, "hello")
	require.NoError(t, err)
	written, err := f.comments.Append(ctx, alice, private.ID, "thanks")
	require.NoError(t, err)
	assert.Len(t, written.Comments, 2)
}

func TestCommentService_ConcurrentAppends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.insert(t, alice, "popular", false, time.Now())

	// The clock of the fixture is not safe for concurrent use.
	f.comments.now = utcNow

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			viewer := users.User{ID: fmt.Sprintf("u-%d", i), FirstName: "Fan"}
			_, err := f.comments.Append(ctx, viewer, post.ID, fmt.Sprintf("comment %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	retrieved, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, retrieved.Comments, n, "no comment should be lost")

	contents := make(map[string]struct{}, n)
	for _, c := range retrieved.Comments {
		contents[c.Content] = struct{}{}
	}
	assert.Len(t, contents, n)
}
