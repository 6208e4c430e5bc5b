package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

// querier is what a pool and a transaction have in common.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SubscriptionRepository keeps one row per owner and one row per
// (owner, subscriber) pair. The primary key of the pair makes a subscriber
// appear at most once, whatever the interleaving of concurrent calls.
type SubscriptionRepository struct {
	Driver *Driver
}

func (r *SubscriptionRepository) Get(ctx context.Context, ownerID string) (blog.Subscription, error) {
	return getSubscription(ctx, r.Driver.pool, ownerID)
}

func (r *SubscriptionRepository) ListForSubscriber(ctx context.Context, subscriberID string) ([]blog.Subscription, error) {
	rows, err := r.Driver.pool.Query(ctx, `SELECT owner_id FROM subscribers WHERE subscriber_id = $1 ORDER BY owner_id`, subscriberID)
	if err != nil {
		return nil, err
	}
	ownerIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	subs := make([]blog.Subscription, 0, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		sub, err := getSubscription(ctx, r.Driver.pool, ownerID)
		if err != nil {
			return nil, err
		}
		if sub.Has(subscriberID) {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (r *SubscriptionRepository) AddSubscriber(ctx context.Context, owner, member blog.Member, at time.Time) (blog.Subscription, bool, error) {
	var (
		sub   blog.Subscription
		added bool
	)
	err := pgx.BeginFunc(ctx, r.Driver.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
		INSERT INTO subscription_owners (owner_id, owner_name, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO NOTHING;
		`, owner.UserID, owner.Name, at)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
		INSERT INTO subscribers (owner_id, subscriber_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, subscriber_id) DO NOTHING;
		`, owner.UserID, member.UserID, member.Name)
		if err != nil {
			return err
		}

		added = tag.RowsAffected() == 1
		if added {
			_, err = tx.Exec(ctx, `UPDATE subscription_owners SET updated_at = $2 WHERE owner_id = $1`, owner.UserID, at)
			if err != nil {
				return err
			}
		}

		sub, err = getSubscription(ctx, tx, owner.UserID)
		return err
	})
	if err != nil {
		return blog.Subscription{}, false, err
	}

	return sub, added, nil
}

func (r *SubscriptionRepository) RemoveSubscriber(ctx context.Context, ownerID, subscriberID string, at time.Time) (blog.Subscription, bool, error) {
	var (
		sub     blog.Subscription
		removed bool
	)
	err := pgx.BeginFunc(ctx, r.Driver.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM subscribers WHERE owner_id = $1 AND subscriber_id = $2`, ownerID, subscriberID)
		if err != nil {
			return err
		}

		removed = tag.RowsAffected() == 1
		if removed {
			_, err = tx.Exec(ctx, `UPDATE subscription_owners SET updated_at = $2 WHERE owner_id = $1`, ownerID, at)
			if err != nil {
				return err
			}
		}

		sub, err = getSubscription(ctx, tx, ownerID)
		return err
	})
	if err != nil {
		return blog.Subscription{}, false, err
	}

	return sub, removed, nil
}

func getSubscription(ctx context.Context, q querier, ownerID string) (blog.Subscription, error) {
	var sub blog.Subscription
	err := q.QueryRow(ctx, `SELECT owner_id, owner_name, updated_at FROM subscription_owners WHERE owner_id = $1`, ownerID).
		Scan(&sub.Owner.UserID, &sub.Owner.Name, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return blog.Subscription{}, nil
	} else if err != nil {
		return blog.Subscription{}, err
	}

	rows, err := q.Query(ctx, `SELECT subscriber_id, name FROM subscribers WHERE owner_id = $1 ORDER BY position`, ownerID)
	if err != nil {
		return blog.Subscription{}, err
	}
	sub.Subscribers, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (blog.Member, error) {
		var m blog.Member
		err := row.Scan(&m.UserID, &m.Name)
		return m, err
	})
	if err != nil {
		return blog.Subscription{}, err
	}

	sub.Normalize()
	return sub, nil
}
