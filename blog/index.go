package blog

// PostIndex is the full-text index over posts.
type PostIndex interface {
	Index(post Post) error
	IndexAll(posts []Post) error
	Delete(id string) error

	// Search returns the ids of the matching posts, best matches first.
	Search(q string, tags []string, limit int) ([]string, error)
}

// TagIndex remembers every tag ever used on a post.
type TagIndex interface {
	Index(tags ...string) error

	// Search returns the known tags starting with prefix, in lexical order.
	Search(prefix string) ([]string, error)
}
