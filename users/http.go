package users

import (
	"context"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/wtorkanorka/BlogSynergy/jwt"
	"github.com/wtorkanorka/BlogSynergy/log"
	"github.com/wtorkanorka/BlogSynergy/server"
)

type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

// RegisterHTTPRoutes registers the identity routes:
// GET /auth/v1/me returns the user behind the bearer token.
func RegisterHTTPRoutes(srv Server, authenticator *Authenticator, jwtKey []byte, logger log.Logger, debug bool) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(server.ErrorEncoder(logger, debug)),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	meHandler := kithttp.NewServer(
		jwt.Middleware(jwtKey)(authenticator.Authenticated(makeMeEndpoint())),
		decodeMeRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/v1/me", "GET", meHandler)
}

func makeMeEndpoint() func(ctx context.Context, r interface{}) (interface{}, error) {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		user, err := FromContext(ctx)
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"data": user,
		}, nil
	}
}

func decodeMeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}
