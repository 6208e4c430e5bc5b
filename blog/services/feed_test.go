package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/errors"
)

func TestFeedService_Global(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	p1 := f.insert(t, alice, "public alice", false, t0)
	p2 := f.insert(t, alice, "private alice", true, t0.Add(time.Hour))
	p3 := f.insert(t, carol, "public carol", false, t0.Add(time.Hour))
	p4 := f.insert(t, carol, "private carol", true, t0.Add(2*time.Hour))

	posts, err := f.feed.Assemble(ctx, bob, FeedGlobal, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p2.ID, p3.ID, p1.ID}, ids(posts), "most recent first, insertion order on ties")

	byID := make(map[string]blog.Post)
	for _, p := range posts {
		byID[p.ID] = p
	}
	assert.Equal(t, "public alice", byID[p1.ID].Title)
	assert.Equal(t, "public carol", byID[p3.ID].Title)
	assert.True(t, byID[p2.ID].Restricted, "private posts of a non followed author are redacted")
	assert.Equal(t, blog.RestrictedMarker, byID[p2.ID].Content)
	assert.True(t, byID[p4.ID].Restricted)

	// Once bob follows alice
	f.subscribe(t, alice, bob)
	posts, err = f.feed.Assemble(ctx, bob, FeedGlobal, 0)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	assert.Equal(t, "private alice", posts[1].Title)
	assert.False(t, posts[1].Restricted)
	assert.True(t, posts[0].Restricted, "carol's private post stays redacted")

	// The author always sees her posts
	posts, err = f.feed.Assemble(ctx, carol, "", 0)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	assert.Equal(t, "private carol", posts[0].Title)
	assert.True(t, posts[1].Restricted)
}

func TestFeedService_Subscribed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	p1 := f.insert(t, alice, "public alice", false, t0)
	p2 := f.insert(t, alice, "private alice", true, t0.Add(time.Hour))
	f.insert(t, carol, "public carol", false, t0.Add(2*time.Hour))

	posts, err := f.feed.Assemble(ctx, bob, FeedSubscribed, 0)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts, "following nobody gives an empty feed")

	f.subscribe(t, alice, bob)
	posts, err = f.feed.Assemble(ctx, bob, FeedSubscribed, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID, p1.ID}, ids(posts), "only followed authors")
	assert.Equal(t, "private alice", posts[0].Title)

	_, err = f.subscriptions.Unsubscribe(ctx, bob, alice.ID, bob.ID)
	require.NoError(t, err)
	posts, err = f.feed.Assemble(ctx, bob, FeedSubscribed, 0)
	require.NoError(t, err)
	assert.Empty(t, posts, "an emptied record is the same as no record")
}

func TestFeedService_Limit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 120; i++ {
		f.insert(t, alice, fmt.Sprintf("post %d", i), false, t0.Add(time.Duration(i)*time.Minute))
	}

	var tts = map[string]struct {
		Limit    int
		Expected int
	}{
		"default":  {0, DefaultFeedLimit},
		"negative": {-3, DefaultFeedLimit},
		"explicit": {5, 5},
		"maximum":  {100, 100},
		"clamped":  {1000, MaxFeedLimit},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			posts, err := f.feed.Assemble(ctx, bob, FeedGlobal, tt.Limit)
			require.NoError(t, err)
			assert.Len(t, posts, tt.Expected)
		})
	}

	posts, err := f.feed.Assemble(ctx, bob, FeedGlobal, 1)
	require.NoError(t, err)
	assert.Equal(t, "post 119", posts[0].Title)
}

func TestFeedService_UnknownMode(t *testing.T) {
	f := newFixture(t)

	_, err := f.feed.Assemble(context.Background(), bob, FeedMode("everything"), 0)
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestFeedService_Feed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	p1 := f.insert(t, alice, "go", false, t0, "go")
	p2 := f.insert(t, alice, "go and tech", false, t0.Add(time.Minute), "go", "tech")
	p3 := f.insert(t, alice, "travel", false, t0.Add(2*time.Minute), "travel")
	p4 := f.insert(t, alice, "secret tech", true, t0.Add(3*time.Minute), "go", "tech")

	posts, err := f.feed.Feed(ctx, bob, FeedRequest{Mode: FeedGlobal})
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p3.ID, p2.ID, p1.ID}, ids(posts))

	posts, err = f.feed.Feed(ctx, bob, FeedRequest{Mode: FeedGlobal, Tags: []string{"go", "tech"}})
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID, p1.ID, p4.ID, p3.ID}, ids(posts), "redacted posts have no tags to match")

	posts, err = f.feed.Feed(ctx, alice, FeedRequest{Mode: FeedGlobal, Tags: []string{"go", "tech"}})
	require.NoError(t, err)
	assert.Equal(t, []string{p4.ID, p2.ID, p1.ID, p3.ID}, ids(posts))
}
