package service

import (
	"context"
	"errors"
	"fmt"

	"courseapi/internal/hash"
	"courseapi/internal/model"
	"courseapi/internal/repository"
	"courseapi/internal/validation"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	// Register hashes u.Password in place and stores the user.
	Register(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   hash.Hasher
}

func NewUserService(userRepo repository.UserRepository, hasher hash.Hasher) UserService {
	return &userService{userRepo: userRepo, hasher: hasher}
}

func (s *userService) Register(ctx context.Context, u *model.User) (*model.User, error) {
	hashed, err := s.hasher.Hash(u.Password)
	if errors.Is(err, hash.ErrPasswordTooLong) {
		return nil, &repository.ValidationError{
			Messages: []string{fmt.Sprintf("Password must be at most %d bytes", validation.MaxPasswordBytes)},
		}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.Password = hashed
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
