package middleware

import (
	"context"

	"courseapi/internal/model"
)

// Injected key type to avoid context collisions
type contextKey string

const userContextKey = contextKey("user")

// WithUser binds the authenticated user to ctx.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the user bound by the auth middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userContextKey).(*model.User)
	return u, ok && u != nil
}
