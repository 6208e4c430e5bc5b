package blog

import (
	"context"
	"time"
)

// Member describes a user taking part in a subscription, as owner or as
// subscriber.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// Subscription is the set of subscribers of one owner. Subscribers is never
// nil: an empty set and a missing record mean the same thing.
type Subscription struct {
	Owner       Member    `json:"owner"`
	Subscribers []Member  `json:"subscribers"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s Subscription) Has(userID string) bool {
	return s.index(userID) != -1
}

func (s Subscription) index(userID string) int {
	for i, sub := range s.Subscribers {
		if sub.UserID == userID {
			return i
		}
	}
	return -1
}

// Normalize replaces a nil subscriber set by an empty one.
func (s *Subscription) Normalize() {
	if s.Subscribers == nil {
		s.Subscribers = []Member{}
	}
}

// Add appends sub unless it already is a subscriber. It reports whether the
// set changed.
func (s *Subscription) Add(sub Member) bool {
	s.Normalize()
	if s.Has(sub.UserID) {
		return false
	}
	s.Subscribers = append(s.Subscribers, sub)
	return true
}

// Remove drops the subscriber with userID. It reports whether the set
// changed.
func (s *Subscription) Remove(userID string) bool {
	s.Normalize()
	i := s.index(userID)
	if i == -1 {
		return false
	}

	subscribers := make([]Member, 0, len(s.Subscribers)-1)
	subscribers = append(subscribers, s.Subscribers[:i]...)
	subscribers = append(subscribers, s.Subscribers[i+1:]...)
	s.Subscribers = subscribers
	return true
}

type SubscriptionRepository interface {
	// Get returns the record of ownerID, or the zero Subscription if the
	// owner never had a subscriber.
	Get(ctx context.Context, ownerID string) (Subscription, error)

	// ListForSubscriber returns the records subscriberID belongs to.
	ListForSubscriber(ctx context.Context, subscriberID string) ([]Subscription, error)

	// AddSubscriber atomically creates the owner's record if needed and adds
	// sub to it. The boolean is false when sub was already a subscriber.
	AddSubscriber(ctx context.Context, owner, sub Member, at time.Time) (Subscription, bool, error)

	// RemoveSubscriber atomically removes subscriberID from the owner's
	// record. The boolean is false when there was nothing to remove.
	RemoveSubscriber(ctx context.Context, ownerID, subscriberID string, at time.Time) (Subscription, bool, error)
}
