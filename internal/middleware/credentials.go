package middleware

import (
	"errors"
	"net/http"
)

var (
	ErrHeaderMissing        = errors.New("authorization header missing")
	ErrMalformedCredentials = errors.New("malformed basic credentials")
)

// Credentials is an email/password pair taken from a Basic auth header.
type Credentials struct {
	Email    string
	Password string
}

// ExtractCredentials reads `Authorization: Basic base64(email:password)`.
// The decoded value is split on the first colon, so passwords may contain
// colons.
func ExtractCredentials(r *http.Request) (Credentials, error) {
	if r.Header.Get("Authorization") == "" {
		return Credentials{}, ErrHeaderMissing
	}
	email, password, ok := r.BasicAuth()
	if !ok {
		return Credentials{}, ErrMalformedCredentials
	}
	return Credentials{Email: email, Password: password}, nil
}
