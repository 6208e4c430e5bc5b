package bolt

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/wtorkanorka/BlogSynergy/users"
)

var userBucket = []byte("users")

type UserRepository struct {
	Driver *Driver
}

func (r *UserRepository) Get(_ context.Context, id string) (users.User, error) {
	var user users.User
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(userBucket).Get([]byte(id))
		if data == nil {
			return nil
		}

		return json.Unmarshal(data, &user)
	})
	if err != nil {
		return users.User{}, err
	}

	return user, nil
}

func (r *UserRepository) Upsert(_ context.Context, user *users.User) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}

		return tx.Bucket(userBucket).Put([]byte(user.ID), data)
	})
}

func (r *UserRepository) List(_ context.Context) ([]users.User, error) {
	all := make([]users.User, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(userBucket).Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user users.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			all = append(all, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return all, nil
}
