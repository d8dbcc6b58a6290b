package auth

import (
	"context"

	"github.com/google/uuid"
)

var userIDCtxKey = &contextKey{"user_id"}

type contextKey struct {
	name string
}

// WithUserID sets the authenticated user id in the given context
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDCtxKey, id)
}

// UserIDFromContext finds the authenticated user id from the context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	raw, ok := ctx.Value(userIDCtxKey).(uuid.UUID)
	return raw, ok
}
