package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

const postColumns = `id, author_id, author_first_name, author_last_name, title, content,
	is_private, tags, published_at, updated_at, comments`

// PostRepository stores one row per post. Comments are kept in a JSONB array
// that is only ever extended by a single UPDATE, so appends never overwrite
// each other.
type PostRepository struct {
	Driver *Driver
}

func (r *PostRepository) Get(ctx context.Context, id string) (blog.Post, error) {
	row := r.Driver.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPostRow(row)
}

func (r *PostRepository) List(ctx context.Context, filter blog.PostFilter) ([]blog.Post, error) {
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return []blog.Post{}, nil
	}

	// A NULL limit means no limit.
	var limit any
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	const q = `
	SELECT ` + postColumns + `
	FROM posts
	WHERE $1::text[] IS NULL OR author_id = ANY($1)
	ORDER BY published_at DESC, seq ASC
	LIMIT $2;
	`
	rows, err := r.Driver.pool.Query(ctx, q, filter.AuthorIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]blog.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Insert(ctx context.Context, post *blog.Post) error {
	if post.ID == "" {
		post.ID = blog.NewPostID()
	}
	post.Normalize()

	comments, err := json.Marshal(post.Comments)
	if err != nil {
		return err
	}

	const q = `
	INSERT INTO posts (id, author_id, author_first_name, author_last_name, title, content,
		is_private, tags, published_at, updated_at, comments)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb);
	`
	_, err = r.Driver.pool.Exec(ctx, q,
		post.ID, post.AuthorID, post.AuthorFirstName, post.AuthorLastName, post.Title, post.Content,
		post.IsPrivate, post.Tags, post.PublishedAt, post.UpdatedAt, string(comments),
	)
	return err
}

func (r *PostRepository) Update(ctx context.Context, id string, patch blog.PostPatch, at time.Time) (blog.Post, error) {
	// NULL keeps the stored value
	const q = `
	UPDATE posts
	SET title = $2, content = $3,
		is_private = COALESCE($4::boolean, is_private),
		tags = COALESCE($5::text[], tags),
		updated_at = $6
	WHERE id = $1
	RETURNING ` + postColumns + `;
	`
	row := r.Driver.pool.QueryRow(ctx, q, id, patch.Title, patch.Content, patch.IsPrivate, patch.Tags, at)
	return scanPostRow(row)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Driver.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *PostRepository) AppendComment(ctx context.Context, postID string, comment blog.Comment) (blog.Post, error) {
	data, err := json.Marshal(comment)
	if err != nil {
		return blog.Post{}, err
	}

	// The row lock taken by UPDATE serialises concurrent appends, and each
	// one extends the array as committed by the previous.
	const q = `
	UPDATE posts
	SET comments = comments || jsonb_build_array($2::jsonb)
	WHERE id = $1
	RETURNING ` + postColumns + `;
	`
	row := r.Driver.pool.QueryRow(ctx, q, postID, string(data))
	return scanPostRow(row)
}

func scanPostRow(row pgx.Row) (blog.Post, error) {
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return blog.Post{}, nil
	} else if err != nil {
		return blog.Post{}, err
	}
	return post, nil
}

func scanPost(row pgx.Row) (blog.Post, error) {
	var (
		post     blog.Post
		comments []byte
	)
	err := row.Scan(
		&post.ID, &post.AuthorID, &post.AuthorFirstName, &post.AuthorLastName, &post.Title, &post.Content,
		&post.IsPrivate, &post.Tags, &post.PublishedAt, &post.UpdatedAt, &comments,
	)
	if err != nil {
		return blog.Post{}, err
	}

	if err := json.Unmarshal(comments, &post.Comments); err != nil {
		return blog.Post{}, err
	}
	post.Normalize()
	return post, nil
}
