package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/blog/bleve"
	"github.com/wtorkanorka/BlogSynergy/blog/inmem"
	"github.com/wtorkanorka/BlogSynergy/users"
)

var (
	alice = users.User{ID: "alice", FirstName: "Alice", LastName: "Liddell", Role: users.RoleAuthor}
	bob   = users.User{ID: "bob", FirstName: "Bob", Role: users.RoleAuthor}
	carol = users.User{ID: "carol", FirstName: "Carol", LastName: "Danvers", Role: users.RoleAuthor}
	admin = users.User{ID: "root", FirstName: "Root", Role: users.RoleAdmin}
)

func member(u users.User) blog.Member {
	return blog.Member{UserID: u.ID, Name: u.Name()}
}

// fixedClock returns a clock starting at start and moving one minute forward
// on each call.
func fixedClock(start time.Time) clock {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(time.Minute)
		return t
	}
}

type fixture struct {
	posts     *inmem.PostRepository
	postIndex *bleve.PostIndex
	tagIndex  *inmem.TagIndex

	subscriptions *SubscriptionService
	feed          *FeedService
	comments      *CommentService
	postService   *PostService
	search        *SearchService
	tags          *TagService
}

func newFixture(t *testing.T) *fixture {
	index := &bleve.PostIndex{}
	require.NoError(t, index.OpenMemOnly())
	t.Cleanup(func() { index.Close() })

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	f := &fixture{
		posts:     inmem.NewPostRepository(),
		postIndex: index,
		tagIndex:  inmem.NewTagIndex(),
	}
	f.subscriptions = NewSubscriptionService(inmem.NewSubscriptionRepository())
	f.subscriptions.now = fixedClock(start)
	f.feed = NewFeedService(f.posts, f.subscriptions)
	f.comments = NewCommentService(f.posts, f.subscriptions)
	f.comments.now = fixedClock(start)
	f.postService = NewPostService(f.posts, f.postIndex, f.tagIndex, f.subscriptions)
	f.postService.now = fixedClock(start)
	f.search = NewSearchService(f.posts, f.postIndex, f.tagIndex, f.subscriptions)
	f.tags = NewTagService(f.tagIndex)
	return f
}

// insert stores a post directly, bypassing the indexes.
func (f *fixture) insert(t *testing.T, author users.User, title string, private bool, at time.Time, tags ...string) blog.Post {
	post := blog.Post{
		AuthorID:        author.ID,
		AuthorFirstName: author.FirstName,
		AuthorLastName:  author.LastName,
		Title:           title,
		Content:         title + " content",
		IsPrivate:       private,
		Tags:            tags,
		PublishedAt:     at,
		UpdatedAt:       at,
	}
	require.NoError(t, f.posts.Insert(context.Background(), &post))
	return post
}

func (f *fixture) subscribe(t *testing.T, owner, subscriber users.User) {
	_, err := f.subscriptions.Subscribe(context.Background(), subscriber, member(owner), member(subscriber))
	require.NoError(t, err)
}

func ids(posts []blog.Post) []string {
	res := make([]string, len(posts))
	for i, p := range posts {
		res[i] = p.ID
	}
	return res
}
