package users

import (
	"context"
	"sync"
)

type InMemRepository struct {
	mu    sync.Locker
	users []User
}

func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		mu:    &sync.Mutex{},
		users: make([]User, 0),
	}
}

func (r *InMemRepository) Get(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, nil
}

func (r *InMemRepository) Upsert(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *InMemRepository) List(_ context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]User, len(r.users))
	copy(users, r.users)
	return users, nil
}
