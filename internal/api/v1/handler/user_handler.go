package handler

import (
	"net/http"

	"courseapi/internal/api/v1/dto"
	"courseapi/internal/middleware"
	"courseapi/internal/model"
	"courseapi/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewUserHandler(userService service.UserService, v *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userService: userService, validate: v, logger: logger}
}

// RegisterRoutes mounts user routes. Registration is public.
func (h *UserHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Get("/users", h.getUser)
	r.Post("/users", h.createUser)
}

// getUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponseDTO
// @Failure 401 {object} dto.ErrorResponseDTO "Access Denied"
// @Router /users [get]
func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access Denied")
		return
	}

	user, err := h.userService.Get(r.Context(), current.ID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to retrieve user")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// createUser godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Param user body dto.UserCreateDTO true "User registration request"
// @Success 201 "Location: /"
// @Failure 400 {object} dto.ErrorResponseDTO "Validation error"
// @Router /users [post]
func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	_, err := h.userService.Register(r.Context(), &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		writeError(w, h.logger, err, "Failed to create user")
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
