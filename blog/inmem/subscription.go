package inmem

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wtorkanorka/BlogSynergy/blog"
)

// SubscriptionRepository keeps subscription records in memory, one lock per
// owner.
type SubscriptionRepository struct {
	records *xsync.MapOf[string, blog.Subscription]
	locks   keyedMutex
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		records: xsync.NewMapOf[string, blog.Subscription](),
		locks:   newKeyedMutex(),
	}
}

func (r *SubscriptionRepository) Get(_ context.Context, ownerID string) (blog.Subscription, error) {
	sub, ok := r.records.Load(ownerID)
	if !ok {
		return blog.Subscription{}, nil
	}
	return cloneSubscription(sub), nil
}

func (r *SubscriptionRepository) ListForSubscriber(_ context.Context, subscriberID string) ([]blog.Subscription, error) {
	subs := make([]blog.Subscription, 0)
	r.records.Range(func(_ string, sub blog.Subscription) bool {
		if sub.Has(subscriberID) {
			subs = append(subs, cloneSubscription(sub))
		}
		return true
	})
	return subs, nil
}

func (r *SubscriptionRepository) AddSubscriber(_ context.Context, owner, member blog.Member, at time.Time) (blog.Subscription, bool, error) {
	unlock := r.locks.lock(owner.UserID)
	defer unlock()

	sub, ok := r.records.Load(owner.UserID)
	if !ok {
		sub = blog.Subscription{Owner: owner}
	}
	sub = cloneSubscription(sub)

	if !sub.Add(member) {
		return sub, false, nil
	}
	sub.UpdatedAt = at
	r.records.Store(owner.UserID, sub)

	return cloneSubscription(sub), true, nil
}

func (r *SubscriptionRepository) RemoveSubscriber(_ context.Context, ownerID, subscriberID string, at time.Time) (blog.Subscription, bool, error) {
	unlock := r.locks.lock(ownerID)
	defer unlock()

	sub, ok := r.records.Load(ownerID)
	if !ok {
		return blog.Subscription{}, false, nil
	}
	sub = cloneSubscription(sub)

	if !sub.Remove(subscriberID) {
		return sub, false, nil
	}
	sub.UpdatedAt = at
	r.records.Store(ownerID, sub)

	return cloneSubscription(sub), true, nil
}

func cloneSubscription(s blog.Subscription) blog.Subscription {
	s.Subscribers = append([]blog.Member{}, s.Subscribers...)
	return s
}
