package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

func TestSearchService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	public, err := f.postService.Create(ctx, alice, blog.Post{Title: "pizza night", Content: "margherita", Tags: []string{"food"}})
	require.NoError(t, err)
	private, err := f.postService.Create(ctx, alice, blog.Post{Title: "secret pizza", Content: "recipe", IsPrivate: true, Tags: []string{"food"}})
	require.NoError(t, err)
	_, err = f.postService.Create(ctx, carol, blog.Post{Title: "travel", Content: "rome", Tags: []string{"trip"}})
	require.NoError(t, err)

	posts, err := f.search.Search(ctx, bob, "pizza", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{public.ID}, ids(posts), "hidden posts are not returned")

	posts, err = f.search.Search(ctx, alice, "pizza", nil, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{public.ID, private.ID}, ids(posts))

	f.subscribe(t, alice, bob)
	posts, err = f.search.Search(ctx, bob, "", []string{"food"}, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{public.ID, private.ID}, ids(posts))

	posts, err = f.search.Search(ctx, bob, "pizza", nil, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestSearchService_StaleEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := f.insert(t, alice, "ghost", false, time.Now())
	require.NoError(t, f.postIndex.Index(post))
	require.NoError(t, f.posts.Delete(ctx, post.ID))

	posts, err := f.search.Search(ctx, bob, "ghost", nil, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSearchService_Reindex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.insert(t, alice, "pasta", false, time.Now(), "food")
	p2 := f.insert(t, carol, "pasta again", false, time.Now(), "food", "italy")
	f.insert(t, carol, "pasta secrets", true, time.Now(), "secret-sauce")

	posts, err := f.search.Search(ctx, bob, "pasta", nil, 0)
	require.NoError(t, err)
	assert.Empty(t, posts, "inserted without indexing")

	n, err := f.search.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	posts, err = f.search.Search(ctx, bob, "pasta", nil, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{p1.ID, p2.ID}, ids(posts))

	tags, err := f.tags.Search("")
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "italy"}, tags)
}

func TestTagService_Search(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tagIndex.Index("go", "golang", "rust"))

	tags, err := f.tags.Search(" go ")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "golang"}, tags)
}
