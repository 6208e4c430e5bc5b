package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TagIndex keeps the known tags in their own table. The blog.TagIndex
// interface carries no context, queries run on the background one.
type TagIndex struct {
	Driver *Driver
}

func (s *TagIndex) Index(tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	const q = `INSERT INTO tags (tag) SELECT unnest($1::text[]) ON CONFLICT (tag) DO NOTHING`
	_, err := s.Driver.pool.Exec(context.Background(), q, tags)
	return err
}

func (s *TagIndex) Search(prefix string) ([]string, error) {
	const q = `SELECT tag FROM tags WHERE left(tag, length($1)) = $1 ORDER BY tag COLLATE "C"`
	rows, err := s.Driver.pool.Query(context.Background(), q, prefix)
	if err != nil {
		return nil, err
	}

	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = make([]string, 0)
	}
	return tags, nil
}
