package repository

import (
	"errors"
	"strings"

	"courseapi/internal/validation"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ValidationError reports model constraint failures detected before a write.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// UniqueViolationError reports a write rejected by a unique constraint.
// Field is the API name of the offending attribute.
type UniqueViolationError struct {
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	return "unique constraint violated on " + e.Field
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// validationError turns a validator error into a *ValidationError, passing
// other errors through untouched.
func validationError(err error) error {
	if msgs := validation.Messages(err); msgs != nil {
		return &ValidationError{Messages: msgs}
	}
	return err
}

// isUniqueViolation recognises unique constraint errors from both supported
// drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
