package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courseapi/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	// Create validates and inserts u, filling in its ID and timestamps.
	Create(ctx context.Context, u *model.User) error
	// GetByID returns nil, nil when no user has the given id.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail returns nil, nil when no user has the given email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepo struct {
	db       bun.IDB
	validate *validator.Validate
}

func NewUserRepo(db bun.IDB, validate *validator.Validate) UserRepository {
	return &userRepo{db: db, validate: validate}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	if err := r.validate.Struct(u); err != nil {
		return validationError(err)
	}
	_, err := r.db.NewInsert().
		Model(u).
		Returning("id, created_at, updated_at").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return &UniqueViolationError{Field: "emailAddress", Err: err}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u := new(model.User)
	err := r.db.NewSelect().
		Model(u).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by ID: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := new(model.User)
	err := r.db.NewSelect().
		Model(u).
		Where("u.email_address = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
