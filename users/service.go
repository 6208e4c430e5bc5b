package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wtorkanorka/BlogSynergy/errors"
)

type Encoder interface {
	Encode(userID string) (string, error)
}

type Service struct {
	repository Repository
	encoder    Encoder
}

func NewService(repo Repository, encoder Encoder) *Service {
	return &Service{
		repository: repo,
		encoder:    encoder,
	}
}

func errUserNotFound(id string) error {
	return errors.New(fmt.Sprintf("no user for id %s", id), errors.NotFound())
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	user, err := s.repository.Get(ctx, id)
	if err != nil {
		return User{}, errors.New("could not get user", errors.WithCause(err))
	}

	if user.ID == "" {
		return User{}, errUserNotFound(id)
	}
	return user, nil
}

// Create stores a new user. The role defaults to author.
func (s *Service) Create(ctx context.Context, firstName, lastName, role string) (User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return User{}, errors.New("first name is required", errors.BadRequest())
	}

	switch role {
	case "":
		role = RoleAuthor
	case RoleAuthor, RoleAdmin:
	default:
		return User{}, errors.New(fmt.Sprintf("unknown role %q", role), errors.BadRequest())
	}

	user := User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}
	if err := s.repository.Upsert(ctx, &user); err != nil {
		return User{}, errors.New("could not save user", errors.WithCause(err))
	}

	return user, nil
}

// Register creates a user and issues its first token. If the user is saved
// but the token cannot be issued the error says so: the user exists and a
// token can be asked for again.
func (s *Service) Register(ctx context.Context, firstName, lastName, role string) (User, string, error) {
	user, err := s.Create(ctx, firstName, lastName, role)
	if err != nil {
		return User{}, "", err
	}

	token, err := s.encoder.Encode(user.ID)
	if err != nil {
		return user, "", errors.New(
			fmt.Sprintf("user %s was created but no token could be issued", user.ID),
			errors.WithCause(err),
			errors.WithReason("inconsistent"),
		)
	}

	return user, token, nil
}

func (s *Service) Token(ctx context.Context, userID string) (string, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return "", err
	}
	return s.encoder.Encode(userID)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repository.List(ctx)
}
