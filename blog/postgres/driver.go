package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id                TEXT PRIMARY KEY,
	seq               BIGSERIAL NOT NULL,
	author_id         TEXT NOT NULL,
	author_first_name TEXT NOT NULL DEFAULT '',
	author_last_name  TEXT NOT NULL DEFAULT '',
	title             TEXT NOT NULL,
	content           TEXT NOT NULL,
	is_private        BOOLEAN NOT NULL DEFAULT FALSE,
	tags              TEXT[] NOT NULL DEFAULT '{}',
	published_at      TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL,
	comments          JSONB NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS posts_feed_idx ON posts (published_at DESC, seq);
CREATE INDEX IF NOT EXISTS posts_author_idx ON posts (author_id, published_at DESC);

CREATE TABLE IF NOT EXISTS subscription_owners (
	owner_id   TEXT PRIMARY KEY,
	owner_name TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS subscribers (
	owner_id      TEXT NOT NULL REFERENCES subscription_owners (owner_id),
	subscriber_id TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	position      BIGSERIAL NOT NULL,
	PRIMARY KEY (owner_id, subscriber_id)
);
CREATE INDEX IF NOT EXISTS subscribers_subscriber_idx ON subscribers (subscriber_id);

CREATE TABLE IF NOT EXISTS tags (
	tag TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL
);
`

type Driver struct {
	pool *pgxpool.Pool
}

// Open connects to the database behind dsn. maxConns <= 0 keeps the pgxpool
// default.
func (d *Driver) Open(ctx context.Context, dsn string, maxConns int32) error {
	if d.pool != nil {
		return fmt.Errorf("pool already open")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}

	d.pool = pool
	return nil
}

// Migrate creates the tables when they do not exist yet.
func (d *Driver) Migrate(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, schema)
	return err
}

func (d *Driver) Close() {
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}
