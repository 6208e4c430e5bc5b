package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wtorkanorka/BlogSynergy/errors"
	"github.com/wtorkanorka/BlogSynergy/jwt"
)

const (
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

type contextKey struct{}

// User is the identity making a request, resolved once per request by the
// Authenticator and handed explicitly to the services.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Name is the display name of the user.
func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Repository interface {
	// Get returns the zero User if there is no user for id.
	Get(ctx context.Context, id string) (User, error)
	Upsert(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
}

func NewContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func FromContext(ctx context.Context) (User, error) {
	v := ctx.Value(contextKey{})
	if v == nil {
		return User{}, errors.New("no user", errors.Unauthorized())
	}

	user, ok := v.(User)
	if !ok {
		return User{}, errors.New("invalid user", errors.Unauthorized())
	}

	return user, nil
}

func extractUserID(ctx context.Context) (string, error) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return "", errors.New("no user", errors.Unauthorized())
	}

	bsClaims, ok := claims.(*jwt.Claims)
	if !ok || bsClaims.UserID == "" {
		return "", errors.New("invalid claims", errors.Unauthorized())
	}

	return bsClaims.UserID, nil
}

type Authenticator struct {
	repository Repository
	cache      *expirable.LRU[string, User]
}

// NewAuthenticator builds an authenticator keeping up to size users for ttl.
// A size <= 0 disables the cache.
func NewAuthenticator(repo Repository, size int, ttl time.Duration) *Authenticator {
	a := &Authenticator{
		repository: repo,
	}
	if size > 0 {
		a.cache = expirable.NewLRU[string, User](size, nil, ttl)
	}
	return a
}

func (a *Authenticator) get(ctx context.Context, id string) (User, error) {
	if a.cache != nil {
		if user, ok := a.cache.Get(id); ok {
			return user, nil
		}
	}

	user, err := a.repository.Get(ctx, id)
	if err != nil {
		return User{}, errors.New("could not get user", errors.WithCause(err))
	} else if user.ID == "" {
		return User{}, errors.New(fmt.Sprintf("unknown user %s", id), errors.Unauthorized())
	}

	if a.cache != nil {
		a.cache.Add(id, user)
	}
	return user, nil
}

// Forget drops the cached copy of a user, e.g. after a role change.
func (a *Authenticator) Forget(id string) {
	if a.cache != nil {
		a.cache.Remove(id)
	}
}

func (a *Authenticator) Authenticated(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		userID, err := extractUserID(ctx)
		if err != nil {
			return nil, err
		}

		user, err := a.get(ctx, userID)
		if err != nil {
			return nil, err
		}

		return next(NewContext(ctx, user), req)
	}
}

// Admin only lets admins through.
func (a *Authenticator) Admin(next endpoint.Endpoint) endpoint.Endpoint {
	return a.Authenticated(func(ctx context.Context, req interface{}) (interface{}, error) {
		user, err := FromContext(ctx)
		if err != nil {
			return nil, err
		}

		if !user.IsAdmin() {
			return nil, errors.New("admin only", errors.Forbidden())
		}

		return next(ctx, req)
	})
}
