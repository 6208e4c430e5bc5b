package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/wtorkanorka/BlogSynergy/users"
)

type UserRepository struct {
	Driver *Driver
}

func (r *UserRepository) Get(ctx context.Context, id string) (users.User, error) {
	var user users.User
	err := r.Driver.pool.QueryRow(ctx, `SELECT id, first_name, last_name, role FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return users.User{}, nil
	} else if err != nil {
		return users.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *users.User) error {
	const q = `
	INSERT INTO users (id, first_name, last_name, role)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, role = EXCLUDED.role;
	`
	_, err := r.Driver.pool.Exec(ctx, q, user.ID, user.FirstName, user.LastName, user.Role)
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.Driver.pool.Query(ctx, `SELECT id, first_name, last_name, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	all, err := pgx.CollectRows(rows, pgx.RowToStructByPos[users.User])
	if err != nil {
		return nil, err
	}
	return all, nil
}
