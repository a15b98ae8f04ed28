package service

import (
	"context"
	"errors"
	"fmt"

	"courseapi/internal/hash"
	"courseapi/internal/model"
	"courseapi/internal/repository"
)

// ErrBadCredentials is returned when the password does not match the stored hash.
var ErrBadCredentials = errors.New("bad credentials")

// AuthService resolves Basic-auth credentials to a user.
type AuthService interface {
	// Authenticate returns ErrUserNotFound or ErrBadCredentials on rejection;
	// any other error is a lookup or hashing failure.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher hash.Hasher
}

func NewAuthService(users repository.UserRepository, hasher hash.Hasher) AuthService {
	return &authService{users: users, hasher: hasher}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	ok, err := s.hasher.Check(password, u.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrBadCredentials
	}
	return u, nil
}
