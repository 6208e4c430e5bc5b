package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/blog/bleve"
	"github.com/wtorkanorka/BlogSynergy/blog/bolt"
	"github.com/wtorkanorka/BlogSynergy/blog/inmem"
	"github.com/wtorkanorka/BlogSynergy/blog/postgres"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type stores struct {
	posts         blog.PostRepository
	subscriptions blog.SubscriptionRepository
	tags          blog.TagIndex
	users         users.Repository
}

// createStores opens the storage selected in the configuration. The returned
// function releases it and is never nil.
func createStores(ctx context.Context, cfg Configuration) (stores, func(), error) {
	switch cfg.Storage.Driver {
	case "bolt":
		if err := os.MkdirAll(filepath.Dir(cfg.Bolt.Store), 0o755); err != nil {
			return stores{}, func() {}, errors.New("could not create bolt directory", errors.WithCause(err))
		}
		driver := bolt.Driver{}
		if err := driver.Open(cfg.Bolt.Store); err != nil {
			return stores{}, func() {}, errors.New("could not open bolt", errors.WithCause(err))
		}
		return stores{
			posts:         &bolt.PostRepository{Driver: &driver},
			subscriptions: &bolt.SubscriptionRepository{Driver: &driver},
			tags:          &bolt.TagIndex{Driver: &driver},
			users:         &bolt.UserRepository{Driver: &driver},
		}, func() { driver.Close() }, nil

	case "postgres":
		driver := postgres.Driver{}
		if err := driver.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns); err != nil {
			return stores{}, func() {}, errors.New("could not connect to postgres", errors.WithCause(err))
		}
		if err := driver.Migrate(ctx); err != nil {
			driver.Close()
			return stores{}, func() {}, errors.New("could not migrate postgres", errors.WithCause(err))
		}
		return stores{
			posts:         &postgres.PostRepository{Driver: &driver},
			subscriptions: &postgres.SubscriptionRepository{Driver: &driver},
			tags:          &postgres.TagIndex{Driver: &driver},
			users:         &postgres.UserRepository{Driver: &driver},
		}, driver.Close, nil

	case "memory":
		return stores{
			posts:         inmem.NewPostRepository(),
			subscriptions: inmem.NewSubscriptionRepository(),
			tags:          inmem.NewTagIndex(),
			users:         users.NewInMemRepository(),
		}, func() {}, nil
	}

	return stores{}, func() {}, errors.New(fmt.Sprintf("unknown storage driver %q", cfg.Storage.Driver))
}

// createIndex opens the bleve index at path, or an in-memory one when path
// is empty.
func createIndex(path string) (*bleve.PostIndex, func(), error) {
	index := bleve.PostIndex{}

	var err error
	if path == "" {
		err = index.OpenMemOnly()
	} else {
		err = index.Open(path)
	}
	if err != nil {
		return nil, func() {}, errors.New("could not open bleve", errors.WithCause(err))
	}

	return &index, func() { index.Close() }, nil
}
