package bolt

import (
	"context"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

var subscriptionBucket = []byte("subscriptions")

// SubscriptionRepository stores one JSON document per owner, keyed by the
// owner's user id.
type SubscriptionRepository struct {
	Driver *Driver
}

func (r *SubscriptionRepository) Get(_ context.Context, ownerID string) (blog.Subscription, error) {
	var sub blog.Subscription
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		var err error
		sub, err = getSubscription(tx.Bucket(subscriptionBucket), ownerID)
		return err
	})
	if err != nil {
		return blog.Subscription{}, err
	}

	return sub, nil
}

func (r *SubscriptionRepository) ListForSubscriber(_ context.Context, subscriberID string) ([]blog.Subscription, error) {
	subs := make([]blog.Subscription, 0)
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(subscriptionBucket).Cursor()
		for owner, data := c.First(); owner != nil; owner, data = c.Next() {
			var sub blog.Subscription
			if err := json.Unmarshal(data, &sub); err != nil {
				return err
			}

			if sub.Has(subscriberID) {
				sub.Normalize()
				subs = append(subs, sub)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *SubscriptionRepository) AddSubscriber(_ context.Context, owner, member blog.Member, at time.Time) (blog.Subscription, bool, error) {
	var (
		sub   blog.Subscription
		added bool
	)
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(subscriptionBucket)

		var err error
		sub, err = getSubscription(bucket, owner.UserID)
		if err != nil {
			return err
		}
		if sub.Owner.UserID == "" {
			sub = blog.Subscription{Owner: owner}
		}

		added = sub.Add(member)
		if !added {
			return nil
		}

		sub.UpdatedAt = at
		return putSubscription(bucket, sub)
	})
	if err != nil {
		return blog.Subscription{}, false, err
	}

	return sub, added, nil
}

func (r *SubscriptionRepository) RemoveSubscriber(_ context.Context, ownerID, subscriberID string, at time.Time) (blog.Subscription, bool, error) {
	var (
		sub     blog.Subscription
		removed bool
	)
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(subscriptionBucket)

		var err error
		sub, err = getSubscription(bucket, ownerID)
		if err != nil || sub.Owner.UserID == "" {
			return err
		}

		removed = sub.Remove(subscriberID)
		if !removed {
			return nil
		}

		sub.UpdatedAt = at
		return putSubscription(bucket, sub)
	})
	if err != nil {
		return blog.Subscription{}, false, err
	}

	return sub, removed, nil
}

func getSubscription(bucket *bolt.Bucket, ownerID string) (blog.Subscription, error) {
	data := bucket.Get([]byte(ownerID))
	if data == nil {
		return blog.Subscription{}, nil
	}

	var sub blog.Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return blog.Subscription{}, err
	}
	sub.Normalize()
	return sub, nil
}

func putSubscription(bucket *bolt.Bucket, sub blog.Subscription) error {
	sub.Normalize()
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	return bucket.Put([]byte(sub.Owner.UserID), data)
}
