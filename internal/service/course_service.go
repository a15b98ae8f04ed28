package service

import (
	"context"
	"errors"

	"courseapi/internal/model"
	"courseapi/internal/repository"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseUpdate carries the editable fields of a course.
type CourseUpdate struct {
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// CourseService defines the interface for course operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	// GetCourse returns ErrCourseNotFound when no course has the id.
	GetCourse(ctx context.Context, id int64) (*model.Course, error)
	// CreateCourse stores c as owned by actor, whatever c.UserID held.
	CreateCourse(ctx context.Context, actor *model.User, c *model.Course) (*model.Course, error)
	// UpdateCourse and DeleteCourse check existence, then ownership, then
	// mutate.
	UpdateCourse(ctx context.Context, actor *model.User, id int64, in CourseUpdate) (*model.Course, error)
	DeleteCourse(ctx context.Context, actor *model.User, id int64) error
}

// courseService is the implementation of CourseService
type courseService struct {
	repo   repository.CourseRepository
	events *EventNotifier
}

// NewCourseService creates a new CourseService. events may be nil.
func NewCourseService(repo repository.CourseRepository, events *EventNotifier) CourseService {
	return &courseService{repo: repo, events: events}
}

func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.repo.List(ctx)
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *courseService) CreateCourse(ctx context.Context, actor *model.User, c *model.Course) (*model.Course, error) {
	c.UserID = actor.ID
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.events.Notify(ctx, CourseCreated, c)
	return c, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, actor *model.User, id int64, in CourseUpdate) (*model.Course, error) {
	c, err := s.ownedCourse(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	c.Title = in.Title
	c.Description = in.Description
	c.EstimatedTime = in.EstimatedTime
	c.MaterialsNeeded = in.MaterialsNeeded
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.events.Notify(ctx, CourseUpdated, c)
	return c, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, actor *model.User, id int64) error {
	c, err := s.ownedCourse(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.events.Notify(ctx, CourseDeleted, c)
	return nil
}

// ownedCourse loads the course and applies the ownership check.
func (s *courseService) ownedCourse(ctx context.Context, actor *model.User, id int64) (*model.Course, error) {
	c, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(c.UserID, actor.ID); err != nil {
		return nil, err
	}
	return c, nil
}
