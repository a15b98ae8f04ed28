package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"courseapi/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	// List returns every course with its owner loaded, ordered by id.
	List(ctx context.Context) ([]model.Course, error)
	// GetByID retrieves a course and its owner. It returns nil, nil when the
	// course does not exist.
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	// Update writes the editable columns of c.
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id int64) error
}

type courseRepo struct {
	db       bun.IDB
	validate *validator.Validate
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db bun.IDB, validate *validator.Validate) CourseRepository {
	return &courseRepo{db: db, validate: validate}
}

// ownerColumns limits the embedded owner to its public attributes.
func ownerColumns(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Column("id", "first_name", "last_name", "email_address")
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	courses := []model.Course{}
	err := r.db.NewSelect().
		Model(&courses).
		Relation("User", ownerColumns).
		Order("course.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := new(model.Course)
	err := r.db.NewSelect().
		Model(c).
		Relation("User", ownerColumns).
		Where("course.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by ID: %w", err)
	}
	return c, nil
}

func (r *courseRepo) Create(ctx context.Context, c *model.Course) error {
	if err := r.validate.Struct(c); err != nil {
		return validationError(err)
	}
	_, err := r.db.NewInsert().
		Model(c).
		Returning("id, created_at, updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *courseRepo) Update(ctx context.Context, c *model.Course) error {
	if err := r.validate.Struct(c); err != nil {
		return validationError(err)
	}
	c.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(c).
		Column("title", "description", "estimated_time", "materials_needed", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update course %d: %w", c.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*model.Course)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
