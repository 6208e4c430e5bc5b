package bolt

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

var postBucket = []byte("posts")

// PostRepository stores posts as JSON documents keyed by id. Ids are ULIDs
// generated inside the write transaction, so the key order is the insertion
// order.
type PostRepository struct {
	Driver *Driver
}

func (r *PostRepository) Get(_ context.Context, id string) (blog.Post, error) {
	var post blog.Post
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		var err error
		post, err = getPost(tx.Bucket(postBucket), id)
		return err
	})
	if err != nil {
		return blog.Post{}, err
	}

	return post, nil
}

func (r *PostRepository) List(_ context.Context, filter blog.PostFilter) ([]blog.Post, error) {
	var authors map[string]struct{}
	if filter.AuthorIDs != nil {
		if len(filter.AuthorIDs) == 0 {
			return []blog.Post{}, nil
		}
		authors = make(map[string]struct{}, len(filter.AuthorIDs))
		for _, id := range filter.AuthorIDs {
			authors[id] = struct{}{}
		}
	}

	posts := make([]blog.Post, 0)
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(postBucket).Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var post blog.Post
			if err := json.Unmarshal(data, &post); err != nil {
				return err
			}

			if authors != nil {
				if _, ok := authors[post.AuthorID]; !ok {
					continue
				}
			}

			post.Normalize()
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The cursor walks in insertion order, the stable sort keeps it for
	// posts published at the same instant.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})

	if filter.Limit > 0 && len(posts) > filter.Limit {
		posts = posts[:filter.Limit]
	}
	return posts, nil
}

func (r *PostRepository) Insert(_ context.Context, post *blog.Post) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		if post.ID == "" {
			post.ID = blog.NewPostID()
		}
		post.Normalize()
		return putPost(tx.Bucket(postBucket), *post)
	})
}

func (r *PostRepository) Update(_ context.Context, id string, patch blog.PostPatch, at time.Time) (blog.Post, error) {
	return r.modify(id, func(post *blog.Post) {
		patch.Apply(post)
		post.UpdatedAt = at
	})
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(postBucket).Delete([]byte(id))
	})
}

func (r *PostRepository) AppendComment(_ context.Context, postID string, comment blog.Comment) (blog.Post, error) {
	return r.modify(postID, func(post *blog.Post) {
		post.Comments = append(post.Comments, comment)
	})
}

// modify runs the read-modify-write of one post inside a single writable
// transaction. bolt allows one writer at a time, so concurrent modifications
// are applied one after the other and none is lost.
func (r *PostRepository) modify(id string, f func(*blog.Post)) (blog.Post, error) {
	var post blog.Post
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(postBucket)

		var err error
		post, err = getPost(bucket, id)
		if err != nil || post.ID == "" {
			return err
		}

		f(&post)
		return putPost(bucket, post)
	})
	if err != nil {
		return blog.Post{}, err
	}

	return post, nil
}

func getPost(bucket *bolt.Bucket, id string) (blog.Post, error) {
	data := bucket.Get([]byte(id))
	if data == nil {
		return blog.Post{}, nil
	}

	var post blog.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return blog.Post{}, err
	}
	post.Normalize()
	return post, nil
}

func putPost(bucket *bolt.Bucket, post blog.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}

	return bucket.Put([]byte(post.ID), data)
}
