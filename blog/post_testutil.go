package blog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostRepository runs the behaviour every PostRepository implementation
// shares.
func TestPostRepository(t *testing.T, repo PostRepository) {
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	posts := []*Post{
		{AuthorID: "u1", AuthorFirstName: "Ann", Title: "First", Content: "one", Tags: []string{"go"}, PublishedAt: t0, UpdatedAt: t0},
		{AuthorID: "u2", AuthorFirstName: "Bob", Title: "Second", Content: "two", IsPrivate: true, Tags: []string{"tech", "go"}, PublishedAt: t1, UpdatedAt: t1},
		{AuthorID: "u1", AuthorFirstName: "Ann", Title: "Third", Content: "three", PublishedAt: t1, UpdatedAt: t1},
	}
	testInsertPosts(t, repo, posts)

	for _, p := range posts {
		retrieved, err := repo.Get(ctx, p.ID)
		require.NoError(t, err, "get %s", p.Title)
		assertPost(t, *p, retrieved, "get "+p.Title)
	}

	missing, err := repo.Get(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, "", missing.ID, "missing post should be the zero value")

	// Most recent first, same instant keeps insertion order
	testListPosts(t, repo, PostFilter{Limit: 10}, []*Post{posts[1], posts[2], posts[0]}, "list all")
	testListPosts(t, repo, PostFilter{Limit: 2}, []*Post{posts[1], posts[2]}, "list with limit")
	testListPosts(t, repo, PostFilter{AuthorIDs: []string{"u1"}, Limit: 10}, []*Post{posts[2], posts[0]}, "list by author")
	testListPosts(t, repo, PostFilter{AuthorIDs: []string{"u1", "u2"}, Limit: 10}, []*Post{posts[1], posts[2], posts[0]}, "list by authors")
	testListPosts(t, repo, PostFilter{AuthorIDs: []string{}, Limit: 10}, []*Post{}, "list with no author")
	testListPosts(t, repo, PostFilter{AuthorIDs: []string{"u9"}, Limit: 10}, []*Post{}, "list unknown author")

	// Update
	t2 := t1.Add(time.Hour)
	private := true
	updated, err := repo.Update(ctx, posts[0].ID, PostPatch{Title: "First (edited)", Content: "one!", IsPrivate: &private, Tags: []string{"edited"}}, t2)
	require.NoError(t, err)
	expected := *posts[0]
	expected.Title = "First (edited)"
	expected.Content = "one!"
	expected.IsPrivate = true
	expected.Tags = []string{"edited"}
	expected.UpdatedAt = t2
	assertPost(t, expected, updated, "update returns the written post")

	retrieved, err := repo.Get(ctx, posts[0].ID)
	require.NoError(t, err)
	assertPost(t, expected, retrieved, "get after update")
	*posts[0] = expected

	// Privacy and tags are kept when the patch leaves them out
	t3 := t2.Add(time.Hour)
	updated, err = repo.Update(ctx, posts[0].ID, PostPatch{Title: "First (typo)", Content: "one!!"}, t3)
	require.NoError(t, err)
	expected.Title = "First (typo)"
	expected.Content = "one!!"
	expected.UpdatedAt = t3
	assertPost(t, expected, updated, "partial update keeps privacy and tags")
	*posts[0] = expected

	public := false
	updated, err = repo.Update(ctx, posts[0].ID, PostPatch{Title: "First (typo)", Content: "one!!", IsPrivate: &public, Tags: []string{}}, t3)
	require.NoError(t, err)
	expected.IsPrivate = false
	expected.Tags = []string{}
	assertPost(t, expected, updated, "update can clear privacy and tags")
	*posts[0] = expected

	updated, err = repo.Update(ctx, "does-not-exist", PostPatch{Title: "x", Content: "y"}, t2)
	require.NoError(t, err)
	assert.Equal(t, "", updated.ID, "updating a missing post should return the zero value")

	// Comments
	testAppendComments(t, repo, posts[1])
	testConcurrentAppends(t, repo, posts[2])

	appended, err := repo.AppendComment(ctx, "does-not-exist", Comment{ID: "c", Content: "lost"})
	require.NoError(t, err)
	assert.Equal(t, "", appended.ID, "appending to a missing post should return the zero value")

	// Delete
	require.NoError(t, repo.Delete(ctx, posts[1].ID))
	retrieved, err = repo.Get(ctx, posts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "", retrieved.ID, "deleted post should be gone")
	testListPosts(t, repo, PostFilter{Limit: 10}, []*Post{posts[2], posts[0]}, "list after delete")
}

func testInsertPosts(t *testing.T, repo PostRepository, posts []*Post) {
	ids := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		err := repo.Insert(context.Background(), p)
		require.NoError(t, err, "insert %s should not fail", p.Title)
		require.NotEqual(t, "", p.ID, "id should be set by insert")
		ids[p.ID] = struct{}{}
	}
	require.Len(t, ids, len(posts), "all ids should be different")
}

func testListPosts(t *testing.T, repo PostRepository, filter PostFilter, expected []*Post, name string) {
	retrieved, err := repo.List(context.Background(), filter)
	if !assert.NoError(t, err, "%s - list should not fail", name) {
		return
	}

	if assert.Equal(t, len(expected), len(retrieved), "%s - incorrect number of posts", name) {
		for i, p := range expected {
			assertPost(t, *p, retrieved[i], fmt.Sprintf("%s #%d", name, i))
		}
	}
}

func testAppendComments(t *testing.T, repo PostRepository, post *Post) {
	ctx := context.Background()
	at := post.PublishedAt.Add(time.Minute)

	hello := Comment{ID: "c-hello", UserID: "u3", AuthorFirstName: "Cid", Content: "hello", CreatedAt: at}
	world := Comment{ID: "c-world", UserID: "u4", AuthorFirstName: "Dee", Content: "world", CreatedAt: at.Add(time.Second)}

	written, err := repo.AppendComment(ctx, post.ID, hello)
	require.NoError(t, err)
	require.Len(t, written.Comments, 1)

	written, err = repo.AppendComment(ctx, post.ID, world)
	require.NoError(t, err)
	if assert.Len(t, written.Comments, 2) {
		assertComment(t, hello, written.Comments[0], "first comment")
		assertComment(t, world, written.Comments[1], "second comment")
	}
	assert.Equal(t, post.Title, written.Title, "appending should not touch the post")

	retrieved, err := repo.Get(ctx, post.ID)
	require.NoError(t, err)
	if assert.Len(t, retrieved.Comments, 2) {
		assert.Equal(t, "hello", retrieved.Comments[0].Content)
		assert.Equal(t, "world", retrieved.Comments[1].Content)
	}
	post.Comments = retrieved.Comments
}

func testConcurrentAppends(t *testing.T, repo PostRepository, post *Post) {
	const n = 20
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AppendComment(ctx, post.ID, Comment{
				ID:        fmt.Sprintf("c-%d", i),
				UserID:    fmt.Sprintf("u-%d", i),
				Content:   fmt.Sprintf("comment %d", i),
				CreatedAt: post.PublishedAt,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	retrieved, err := repo.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, retrieved.Comments, len(post.Comments)+n, "no comment should be lost")

	ids := make(map[string]struct{}, n)
	for _, c := range retrieved.Comments {
		ids[c.ID] = struct{}{}
	}
	for i := 0; i < n; i++ {
		assert.Contains(t, ids, fmt.Sprintf("c-%d", i))
	}
	post.Comments = retrieved.Comments
}

func assertPost(t *testing.T, expected, actual Post, name string) {
	assert.Equal(t, expected.ID, actual.ID, "%s - ids should be equal", name)
	assert.Equal(t, expected.AuthorID, actual.AuthorID, "%s - authors should be equal", name)
	assert.Equal(t, expected.AuthorFirstName, actual.AuthorFirstName, "%s - author names should be equal", name)
	assert.Equal(t, expected.Title, actual.Title, "%s - titles should be equal", name)
	assert.Equal(t, expected.Content, actual.Content, "%s - contents should be equal", name)
	assert.Equal(t, expected.IsPrivate, actual.IsPrivate, "%s - privacy should be equal", name)
	assert.ElementsMatch(t, expected.Tags, actual.Tags, "%s - tags should be equal", name)
	assert.True(t, expected.PublishedAt.Equal(actual.PublishedAt), "%s - publication dates should be equal: %v != %v", name, expected.PublishedAt, actual.PublishedAt)
	assert.True(t, expected.UpdatedAt.Equal(actual.UpdatedAt), "%s - update dates should be equal: %v != %v", name, expected.UpdatedAt, actual.UpdatedAt)

	if assert.Equal(t, len(expected.Comments), len(actual.Comments), "%s - number of comments should be equal", name) {
		for i, c := range expected.Comments {
			assertComment(t, c, actual.Comments[i], fmt.Sprintf("%s - comment %d", name, i))
		}
	}
}

func assertComment(t *testing.T, expected, actual Comment, name string) {
	assert.Equal(t, expected.ID, actual.ID, "%s - ids should be equal", name)
	assert.Equal(t, expected.UserID, actual.UserID, "%s - users should be equal", name)
	assert.Equal(t, expected.AuthorFirstName, actual.AuthorFirstName, "%s - first names should be equal", name)
	assert.Equal(t, expected.AuthorLastName, actual.AuthorLastName, "%s - last names should be equal", name)
	assert.Equal(t, expected.Content, actual.Content, "%s - contents should be equal", name)
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt), "%s - dates should be equal", name)
}
