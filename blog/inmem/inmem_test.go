package inmem

import (
	"testing"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

func TestPostRepository(t *testing.T) {
	blog.TestPostRepository(t, NewPostRepository())
}

func TestSubscriptionRepository(t *testing.T) {
	blog.TestSubscriptionRepository(t, NewSubscriptionRepository())
}

func TestTagIndex(t *testing.T) {
	blog.TestTagIndex(t, NewTagIndex())
}
