package inmem

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

type postRecord struct {
	seq  uint64
	post blog.Post
}

// PostRepository keeps posts in memory. Every mutation of a post runs under
// that post's lock.
type PostRepository struct {
	posts *xsync.MapOf[string, postRecord]
	locks keyedMutex
	seq   atomic.Uint64
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: xsync.NewMapOf[string, postRecord](),
		locks: newKeyedMutex(),
	}
}

func (r *PostRepository) Get(_ context.Context, id string) (blog.Post, error) {
	rec, ok := r.posts.Load(id)
	if !ok {
		return blog.Post{}, nil
	}
	return clonePost(rec.post), nil
}

func (r *PostRepository) List(_ context.Context, filter blog.PostFilter) ([]blog.Post, error) {
	var authors map[string]struct{}
	if filter.AuthorIDs != nil {
		authors = make(map[string]struct{}, len(filter.AuthorIDs))
		for _, id := range filter.AuthorIDs {
			authors[id] = struct{}{}
		}
	}

	records := make([]postRecord, 0)
	r.posts.Range(func(_ string, rec postRecord) bool {
		if authors != nil {
			if _, ok := authors[rec.post.AuthorID]; !ok {
				return true
			}
		}
		records = append(records, rec)
		return true
	})

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.post.PublishedAt.Equal(b.post.PublishedAt) {
			return a.post.PublishedAt.After(b.post.PublishedAt)
		}
		return a.seq < b.seq
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}

	posts := make([]blog.Post, len(records))
	for i, rec := range records {
		posts[i] = clonePost(rec.post)
	}
	return posts, nil
}

func (r *PostRepository) Insert(_ context.Context, post *blog.Post) error {
	if post.ID == "" {
		post.ID = blog.NewPostID()
	}
	post.Normalize()

	unlock := r.locks.lock(post.ID)
	defer unlock()

	r.posts.Store(post.ID, postRecord{seq: r.seq.Add(1), post: clonePost(*post)})
	return nil
}

func (r *PostRepository) Update(_ context.Context, id string, patch blog.PostPatch, at time.Time) (blog.Post, error) {
	unlock := r.locks.lock(id)
	defer unlock()

	rec, ok := r.posts.Load(id)
	if !ok {
		return blog.Post{}, nil
	}

	patch.Apply(&rec.post)
	rec.post.UpdatedAt = at
	r.posts.Store(id, rec)

	return clonePost(rec.post), nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	unlock := r.locks.lock(id)
	defer unlock()

	r.posts.Delete(id)
	return nil
}

func (r *PostRepository) AppendComment(_ context.Context, postID string, comment blog.Comment) (blog.Post, error) {
	unlock := r.locks.lock(postID)
	defer unlock()

	rec, ok := r.posts.Load(postID)
	if !ok {
		return blog.Post{}, nil
	}

	// Never append in place: readers may hold the previous slice.
	comments := make([]blog.Comment, 0, len(rec.post.Comments)+1)
	comments = append(comments, rec.post.Comments...)
	rec.post.Comments = append(comments, comment)
	r.posts.Store(postID, rec)

	return clonePost(rec.post), nil
}

func clonePost(p blog.Post) blog.Post {
	p.Tags = append([]string{}, p.Tags...)
	p.Comments = append([]blog.Comment{}, p.Comments...)
	return p
}
