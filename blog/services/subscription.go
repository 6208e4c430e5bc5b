package services

import (
	"context"
	"fmt"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/users"
)

const (
	reasonAlreadySubscribed = "already_subscribed"
	reasonNotSubscribed     = "not_subscribed"
)

type SubscriptionService struct {
	repository blog.SubscriptionRepository
	now        clock
}

func NewSubscriptionService(repo blog.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{
		repository: repo,
		now:        utcNow,
	}
}

// Subscribe adds subscriber to the subscribers of owner. Viewers can only
// subscribe themselves.
func (s *SubscriptionService) Subscribe(ctx context.Context, viewer users.User, owner, subscriber blog.Member) (blog.Subscription, error) {
	if owner.UserID == "" || subscriber.UserID == "" {
		return blog.Subscription{}, errors.New("owner and subscriber are required", errors.BadRequest())
	}

	if subscriber.UserID != viewer.ID {
		return blog.Subscription{}, errors.New("You can only subscribe yourself", errors.Forbidden())
	}
	if subscriber.Name == "" {
		subscriber.Name = viewer.Name()
	}

	sub, added, err := s.repository.AddSubscriber(ctx, owner, subscriber, s.now())
	if err != nil {
		return blog.Subscription{}, errStore("could not subscribe", err)
	}

	if !added {
		return blog.Subscription{}, errors.New(
			fmt.Sprintf("%s already subscribed to %s", subscriber.UserID, owner.UserID),
			errors.Conflict(),
			errors.WithReason(reasonAlreadySubscribed),
		)
	}

	return sub, nil
}

// Unsubscribe removes subscriberID from the subscribers of ownerID. The
// subscriber, the owner and the admins can do it. The remaining record is
// returned, its subscriber set may be empty.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, viewer users.User, ownerID, subscriberID string) (blog.Subscription, error) {
	if ownerID == "" || subscriberID == "" {
		return blog.Subscription{}, errors.New("owner and subscriber are required", errors.BadRequest())
	}

	if viewer.ID != subscriberID && viewer.ID != ownerID && !viewer.IsAdmin() {
		return blog.Subscription{}, errors.New("You cannot remove this subscription", errors.Forbidden())
	}

	sub, removed, err := s.repository.RemoveSubscriber(ctx, ownerID, subscriberID, s.now())
	if err != nil {
		return blog.Subscription{}, errStore("could not unsubscribe", err)
	}

	if sub.Owner.UserID == "" {
		return blog.Subscription{}, errors.New(fmt.Sprintf("No subscription for owner %s", ownerID), errors.NotFound())
	} else if !removed {
		return blog.Subscription{}, errors.New(
			fmt.Sprintf("%s is not subscribed to %s", subscriberID, ownerID),
			errors.NotFound(),
			errors.WithReason(reasonNotSubscribed),
		)
	}

	return sub, nil
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, ownerID, viewerID string) (bool, error) {
	sub, err := s.repository.Get(ctx, ownerID)
	if err != nil {
		return false, errStore("could not get subscription", err)
	}

	return sub.Has(viewerID), nil
}

// Get returns the record of ownerID. An owner nobody ever subscribed to has
// a record with no subscribers.
func (s *SubscriptionService) Get(ctx context.Context, ownerID string) (blog.Subscription, error) {
	sub, err := s.repository.Get(ctx, ownerID)
	if err != nil {
		return blog.Subscription{}, errStore("could not get subscription", err)
	}

	if sub.Owner.UserID == "" {
		sub.Owner.UserID = ownerID
	}
	sub.Normalize()
	return sub, nil
}

// Following returns the ids of the owners subscriberID is subscribed to.
func (s *SubscriptionService) Following(ctx context.Context, subscriberID string) ([]string, error) {
	subs, err := s.repository.ListForSubscriber(ctx, subscriberID)
	if err != nil {
		return nil, errStore("could not list subscriptions", err)
	}

	owners := make([]string, len(subs))
	for i, sub := range subs {
		owners[i] = sub.Owner.UserID
	}
	return owners, nil
}
