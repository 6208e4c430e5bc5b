package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/wtorkanorka/BlogSynergy/blog/endpoints"
	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/jwt"
	"github.com/wtorkanorka/BlogSynergy/log"
	"github.com/wtorkanorka/BlogSynergy/server"
	"github.com/wtorkanorka/BlogSynergy/users"
)

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

// Config holds what every blog handler needs besides its service.
type Config struct {
	Key           []byte
	Authenticator *users.Authenticator
	Logger        log.Logger
	Debug         bool

	// Metrics is optional.
	Metrics *endpoints.Metrics
}

func (c Config) options() []kithttp.ServerOption {
	return []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(server.ErrorEncoder(c.Logger, c.Debug)),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}
}

// authenticated wraps ep so that it runs for a known user only, with logging
// and metrics around it.
func (c Config) authenticated(method string, ep endpoint.Endpoint) endpoint.Endpoint {
	ep = jwt.Middleware(c.Key)(c.Authenticator.Authenticated(ep))
	ep = endpoints.LoggingMiddleware(c.Logger, method)(ep)
	if c.Metrics != nil {
		ep = endpoints.InstrumentingMiddleware(*c.Metrics, method)(ep)
	}
	return ep
}

func (c Config) handler(method string, ep endpoint.Endpoint, dec kithttp.DecodeRequestFunc) http.Handler {
	return kithttp.NewServer(
		c.authenticated(method, ep),
		dec,
		kithttp.EncodeJSONResponse,
		c.options()...,
	)
}

func decodeJSON(r io.Reader, v interface{}) error {
	err := json.NewDecoder(r).Decode(v)
	if err != nil {
		return errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}
	return nil
}

func decodeIDParam(name string) kithttp.DecodeRequestFunc {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		defer r.Body.Close()

		id := server.Params(ctx)[name]
		if id == "" {
			return nil, errors.New("missing parameter: "+name, errors.BadRequest())
		}
		return id, nil
	}
}

func queryInt(r *http.Request, key string) (int, bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, true, errors.New("invalid parameter: "+key, errors.BadRequest(), errors.WithCause(err))
	}
	return i, true, nil
}

func queryBool(r *http.Request, key string) (bool, bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, true, errors.New("invalid parameter: "+key, errors.BadRequest(), errors.WithCause(err))
	}
	return b, true, nil
}
