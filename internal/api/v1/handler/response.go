package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"courseapi/internal/api/v1/dto"
	"courseapi/internal/repository"
	"courseapi/internal/service"
	"courseapi/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// uniqueMessages maps API field names to the message shown when a unique
// constraint rejects them.
var uniqueMessages = map[string]string{
	"emailAddress": "Email address already exists",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponseDTO{Message: msg})
}

func writeValidation(w http.ResponseWriter, msgs []string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponseDTO{Message: "Validation error", Errors: msgs})
}

// decodeAndValidate reads a JSON body into dst and runs the required-field
// checks. An empty body counts as `{}`. It writes the 400 response itself and
// reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	if err := v.Struct(dst); err != nil {
		if msgs := validation.Messages(err); msgs != nil {
			writeValidation(w, msgs)
			return false
		}
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}

// writeError translates service and repository errors into responses. Only
// validation messages and category messages reach the client.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error, msg string) {
	var verr *repository.ValidationError
	var uerr *repository.UniqueViolationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr.Messages)
	case errors.As(err, &uerr):
		text, ok := uniqueMessages[uerr.Field]
		if !ok {
			text = uerr.Field + " already exists"
		}
		writeValidation(w, []string{text})
	case errors.Is(err, service.ErrCourseNotFound):
		writeMessage(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrAccessDenied):
		writeMessage(w, http.StatusForbidden, "Access denied")
	default:
		logger.Error().Err(err).Msg(msg)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
