package blog

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// RestrictedMarker replaces the title and content of a post the viewer is
// not allowed to read.
const RestrictedMarker = "restricted"

type Post struct {
	ID              string `json:"id"`
	AuthorID        string `json:"authorId"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`

	Title     string   `json:"title"`
	Content   string   `json:"content"`
	IsPrivate bool     `json:"isPrivate"`
	Tags      []string `json:"tags"`

	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Comments []Comment `json:"comments"`

	// Restricted is only set on responses, when the post was redacted.
	Restricted bool `json:"restricted,omitempty"`
}

type Comment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	AuthorFirstName string    `json:"authorFirstName"`
	AuthorLastName  string    `json:"authorLastName"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PostPatch holds the fields an author can change on a post. A nil
// IsPrivate or Tags keeps the stored value.
type PostPatch struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	IsPrivate *bool    `json:"isPrivate"`
	Tags      []string `json:"tags"`
}

// Apply writes the patch on post.
func (p PostPatch) Apply(post *Post) {
	post.Title = p.Title
	post.Content = p.Content
	if p.IsPrivate != nil {
		post.IsPrivate = *p.IsPrivate
	}
	if p.Tags != nil {
		post.Tags = append([]string{}, p.Tags...)
	}
}

// PostFilter selects posts for a feed. A nil AuthorIDs matches every author,
// an empty non-nil one matches none.
type PostFilter struct {
	AuthorIDs []string
	Limit     int
}

type PostRepository interface {
	// Get returns the zero Post if there is no post for id.
	Get(ctx context.Context, id string) (Post, error)

	// List returns at most filter.Limit posts, most recently published
	// first. Posts published at the same instant keep insertion order.
	List(ctx context.Context, filter PostFilter) ([]Post, error)

	// Insert stores a new post. post.ID is set by the repository when empty.
	Insert(ctx context.Context, post *Post) error

	// Update applies patch atomically and returns the written post, or the
	// zero Post if there is no post for id.
	Update(ctx context.Context, id string, patch PostPatch, at time.Time) (Post, error)

	Delete(ctx context.Context, id string) error

	// AppendComment adds comment at the end of the post's comments as one
	// atomic operation and returns the written post, or the zero Post if
	// there is no post for postID.
	AppendComment(ctx context.Context, postID string, comment Comment) (Post, error)
}

// NewPostID returns a lexicographically sortable id. Ids generated by one
// process are strictly increasing.
func NewPostID() string {
	return ulid.Make().String()
}

// NormalizeTags trims tags, drops the empty ones and the duplicates. The
// order of first appearance is kept. It never returns nil.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

// Normalize makes nil collections empty so they serialize as [].
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
