package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"courseapi/internal/service"

	"github.com/rs/zerolog"
)

// Failure reasons, logged server-side only.
const (
	reasonHeaderMissing  = "header missing"
	reasonUserNotFound   = "user not found"
	reasonBadCredentials = "bad credentials"
	reasonError          = "authentication error"
)

// AuthMiddleware authenticates requests with Basic credentials and stores the
// user in the request context. Every rejection gets the same 401 body; the
// specific reason is only logged.
func AuthMiddleware(auth service.AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			creds, err := ExtractCredentials(r)
			if err != nil {
				reason := reasonUserNotFound
				if errors.Is(err, ErrHeaderMissing) {
					reason = reasonHeaderMissing
				}
				deny(w, logger.Warn().Str("reason", reason).Err(err))
				return
			}

			user, err := auth.Authenticate(r.Context(), creds.Email, creds.Password)
			if err != nil {
				var event *zerolog.Event
				switch {
				case errors.Is(err, service.ErrUserNotFound):
					event = logger.Warn().Str("reason", reasonUserNotFound)
				case errors.Is(err, service.ErrBadCredentials):
					event = logger.Warn().Str("reason", reasonBadCredentials)
				default:
					event = logger.Error().Str("reason", reasonError).Err(err)
				}
				deny(w, event.Str("email", creds.Email))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func deny(w http.ResponseWriter, event *zerolog.Event) {
	event.Msg("Authentication failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Access Denied"})
}
