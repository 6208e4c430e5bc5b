package http

import (
	"context"
	"net/http"

	"github.com/wtorkanorka/BlogSynergy/blog/endpoints"
	"github.com/wtorkanorka/BlogSynergy/blog/services"
)

func RegisterSubscriptionEndpoints(srv Server, service *services.SubscriptionService, cfg Config) {
	ep := endpoints.NewSubscriptionEndpoint(service)

	srv.RegisterHandler("/blog/v1/subscriptions", "GET", cfg.handler("following", ep.Following, decodeNothing))
	srv.RegisterHandler("/blog/v1/subscriptions/:ownerId", "GET", cfg.handler("get_subscription", ep.Get, decodeIDParam("ownerId")))
	srv.RegisterHandler("/blog/v1/subscriptions", "POST", cfg.handler("subscribe", ep.Subscribe, decodeSubscribeRequest))
	srv.RegisterHandler("/blog/v1/subscriptions", "DELETE", cfg.handler("unsubscribe", ep.Unsubscribe, decodeSubscribeRequest))
}

func decodeNothing(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}

func decodeSubscribeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req endpoints.SubscribeRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		return nil, err
	}

	return req, nil
}
