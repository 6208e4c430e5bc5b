package endpoints

import (
	"context"

	"github.com/wtorkanorka/BlogSynergy/blog"
	"github.com/wtorkanorka/BlogSynergy/blog/services"
	"github.com/wtorkanorka/BlogSynergy/users"
)

type SubscriptionEndpoint struct {
	service *services.SubscriptionService
}

func NewSubscriptionEndpoint(service *services.SubscriptionService) *SubscriptionEndpoint {
	return &SubscriptionEndpoint{
		service: service,
	}
}

type SubscribeRequest struct {
	Owner      blog.Member `json:"owner"`
	Subscriber blog.Member `json:"subscriber"`
}

func (ep *SubscriptionEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	if _, err := users.FromContext(ctx); err != nil {
		return nil, err
	}

	ownerID, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	sub, err := ep.service.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return data(sub), nil
}

func (ep *SubscriptionEndpoint) Following(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	owners, err := ep.service.Following(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return data(owners), nil
}

func (ep *SubscriptionEndpoint) Subscribe(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(SubscribeRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	sub, err := ep.service.Subscribe(ctx, user, req.Owner, req.Subscriber)
	if err != nil {
		return nil, err
	}

	return data(sub), nil
}

func (ep *SubscriptionEndpoint) Unsubscribe(ctx context.Context, r interface{}) (interface{}, error) {
	user, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(SubscribeRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	sub, err := ep.service.Unsubscribe(ctx, user, req.Owner.UserID, req.Subscriber.UserID)
	if err != nil {
		return nil, err
	}

	return data(sub), nil
}
