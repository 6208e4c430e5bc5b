package services

import (
	"sort"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

// Rank orders posts by the number of selected tags they carry, most first.
// Posts with as many selected tags keep their relative order. posts is not
// modified.
func Rank(posts []blog.Post, selected []string) []blog.Post {
	selected = blog.NormalizeTags(selected)
	if len(selected) == 0 {
		return append([]blog.Post{}, posts...)
	}

	wanted := make(map[string]struct{}, len(selected))
	for _, tag := range selected {
		wanted[tag] = struct{}{}
	}

	type scoredPost struct {
		post  blog.Post
		score int
	}
	scored := make([]scoredPost, len(posts))
	for i, post := range posts {
		scored[i].post = post
		for _, tag := range blog.NormalizeTags(post.Tags) {
			if _, ok := wanted[tag]; ok {
				scored[i].score++
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]blog.Post, len(scored))
	for i, s := range scored {
		ranked[i] = s.post
	}
	return ranked
}
