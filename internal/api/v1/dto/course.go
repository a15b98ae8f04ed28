package dto

import "courseapi/internal/model"

// CourseCreateDTO is used for incoming course creation requests
type CourseCreateDTO struct {
	Title           string  `json:"title" validate:"required,notblank" label:"Title"`
	Description     string  `json:"description" validate:"required,notblank" label:"Description"`
	EstimatedTime   *string `json:"estimatedTime,omitempty"`
	MaterialsNeeded *string `json:"materialsNeeded,omitempty"`
}

// CourseUpdateDTO replaces the editable fields of a course.
type CourseUpdateDTO struct {
	Title           string  `json:"title" validate:"required,notblank" label:"Title"`
	Description     string  `json:"description" validate:"required,notblank" label:"Description"`
	EstimatedTime   *string `json:"estimatedTime,omitempty"`
	MaterialsNeeded *string `json:"materialsNeeded,omitempty"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	EstimatedTime   *string          `json:"estimatedTime"`
	MaterialsNeeded *string          `json:"materialsNeeded"`
	UserID          int64            `json:"userId"`
	User            *UserResponseDTO `json:"user,omitempty"`
}

func NewCourseResponse(c *model.Course) CourseResponseDTO {
	resp := CourseResponseDTO{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
	}
	if c.User != nil {
		owner := NewUserResponse(c.User)
		resp.User = &owner
	}
	return resp
}
