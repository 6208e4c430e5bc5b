package jwt

import (
	"context"
	"net/http"
	"testing"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtorkanorka/BlogSynergy/errors"
)

func TestEncodeDecode(t *testing.T) {
	ed := NewEncodeDecoder([]byte("secret"))

	token, err := ed.Encode("user-1")
	require.NoError(t, err)

	userID, err := ed.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other := NewEncodeDecoder([]byte("other secret"))
	_, err = other.Decode(token)
	errors.AssertCode(t, err, http.StatusUnauthorized)
}

func TestMiddleware(t *testing.T) {
	key := []byte("secret")
	token, err := NewEncodeDecoder(key).Encode("user-1")
	require.NoError(t, err)

	var claims *Claims
	ep := Middleware(key)(func(ctx context.Context, request interface{}) (interface{}, error) {
		claims, _ = ctx.Value(kitjwt.JWTClaimsContextKey).(*Claims)
		return "ok", nil
	})

	res, err := ep(context.WithValue(context.Background(), kitjwt.JWTContextKey, token), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	if assert.NotNil(t, claims) {
		assert.Equal(t, "user-1", claims.UserID)
	}

	_, err = ep(context.Background(), nil)
	errors.AssertCode(t, err, http.StatusUnauthorized)

	_, err = ep(context.WithValue(context.Background(), kitjwt.JWTContextKey, "not.a.token"), nil)
	errors.AssertCode(t, err, http.StatusUnauthorized)

	forged, err := NewEncodeDecoder([]byte("other")).Encode("user-1")
	require.NoError(t, err)
	_, err = ep(context.WithValue(context.Background(), kitjwt.JWTContextKey, forged), nil)
	errors.AssertCode(t, err, http.StatusUnauthorized)
}

func TestMiddleware_EndpointErrors(t *testing.T) {
	key := []byte("secret")
	token, err := NewEncodeDecoder(key).Encode("user-1")
	require.NoError(t, err)

	notFound := errors.New("no post", errors.NotFound())
	ep := Middleware(key)(func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, notFound
	})

	_, err = ep(context.WithValue(context.Background(), kitjwt.JWTContextKey, token), nil)
	assert.Equal(t, notFound, err, "errors of the endpoint should not be rewritten")

	forged, err := NewEncodeDecoder([]byte("other")).Encode("user-1")
	require.NoError(t, err)
	_, err = ep(context.WithValue(context.Background(), kitjwt.JWTContextKey, forged), nil)
	errors.AssertCode(t, err, http.StatusUnauthorized)
	assert.Equal(t, "unauthenticated", errors.Kind(err))
}
