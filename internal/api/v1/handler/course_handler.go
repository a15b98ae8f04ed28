package handler

import (
	"net/http"
	"strconv"

	"courseapi/internal/api/v1/dto"
	"courseapi/internal/middleware"
	"courseapi/internal/model"
	"courseapi/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate, logger: logger}
}

// RegisterRoutes mounts course routes. Reads are public, mutations need auth.
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.listCourses)
		r.Get("/{courseId}", h.getCourse)

		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Post("/", h.createCourse)
			r.Put("/{courseId}", h.updateCourse)
			r.Delete("/{courseId}", h.deleteCourse)
		})
	})
}

// courseID parses the path id. Ids that cannot exist are reported as false.
func courseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	return id, err == nil && id > 0
}

// listCourses godoc
// @Summary List courses
// @Description Returns every course with its owner.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to list courses")
		return
	}
	resp := make([]dto.CourseResponseDTO, 0, len(courses))
	for i := range courses {
		resp = append(resp, dto.NewCourseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getCourse godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO "Course not found"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Course not found")
		return
	}
	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Failed to retrieve course")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCourseResponse(course))
}

// createCourse godoc
// @Summary Create a course
// @Description Creates a course owned by the authenticated user.
// @Tags courses
// @Accept json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 "Location: /courses/{courseId}"
// @Failure 400 {object} dto.ErrorResponseDTO "Validation error"
// @Failure 401 {object} dto.ErrorResponseDTO "Access Denied"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access Denied")
		return
	}
	var req dto.CourseCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	created, err := h.courseService.CreateCourse(r.Context(), user, &model.Course{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	if err != nil {
		writeError(w, h.logger, err, "Failed to create course")
		return
	}

	w.Header().Set("Location", "/courses/"+strconv.FormatInt(created.ID, 10))
	w.WriteHeader(http.StatusCreated)
}

// updateCourse godoc
// @Summary Update a course
// @Description Replaces the editable fields of a course owned by the authenticated user.
// @Tags courses
// @Accept json
// @Param courseId path int true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 204
// @Failure 400 {object} dto.ErrorResponseDTO "Validation error"
// @Failure 401 {object} dto.ErrorResponseDTO "Access Denied"
// @Failure 403 {object} dto.ErrorResponseDTO "Access denied"
// @Failure 404 {object} dto.ErrorResponseDTO "Course not found"
// @Router /courses/{courseId} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access Denied")
		return
	}
	var req dto.CourseUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	id, ok := courseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Course not found")
		return
	}

	_, err := h.courseService.UpdateCourse(r.Context(), user, id, service.CourseUpdate{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	if err != nil {
		writeError(w, h.logger, err, "Failed to update course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Param courseId path int true "Course ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponseDTO "Access Denied"
// @Failure 403 {object} dto.ErrorResponseDTO "Access denied"
// @Failure 404 {object} dto.ErrorResponseDTO "Course not found"
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access Denied")
		return
	}
	id, ok := courseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Course not found")
		return
	}
	if err := h.courseService.DeleteCourse(r.Context(), user, id); err != nil {
		writeError(w, h.logger, err, "Failed to delete course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
