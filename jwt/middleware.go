package jwt

import (
	"context"

	"github.com/golang-jwt/jwt/v4"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"

	"github.com/wtorkanorka/BlogSynergy/errors"
)

// endpointError marks errors returned by the wrapped endpoint, so they can be
// told apart from the ones the parser returns before calling it.
type endpointError struct {
	err error
}

func (e endpointError) Error() string {
	return e.err.Error()
}

// Middleware parses the token put in the context by kitjwt.HTTPToContext and
// stores the *Claims under kitjwt.JWTClaimsContextKey. Any failure before the
// wrapped endpoint runs is Unauthorized, errors of the endpoint go through
// untouched.
func Middleware(key []byte) endpoint.Middleware {
	parser := kitjwt.NewParser(func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.SigningMethodHS256, func() jwt.Claims {
		return &Claims{}
	})

	return func(next endpoint.Endpoint) endpoint.Endpoint {
		parsed := parser(func(ctx context.Context, request interface{}) (interface{}, error) {
			res, err := next(ctx, request)
			if err != nil {
				return res, endpointError{err: err}
			}
			return res, nil
		})

		return func(ctx context.Context, request interface{}) (interface{}, error) {
			res, err := parsed(ctx, request)
			if err == nil {
				return res, nil
			}

			if e, ok := err.(endpointError); ok {
				return res, e.err
			}
			return nil, errors.New("invalid or missing token", errors.Unauthorized(), errors.WithCause(err))
		}
	}
}
