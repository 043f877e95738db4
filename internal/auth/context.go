package auth

import (
	"context"

	"github.com/textshare/textshare/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityContextKey contextKey = "identity"

// ContextWithIdentity adds the resolved caller to the context.
func ContextWithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the caller, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *model.Identity {
	id, ok := ctx.Value(identityContextKey).(*model.Identity)
	if !ok {
		return nil
	}
	return id
}

// UserIDFromContext returns the caller's user id. ok is false for anonymous requests.
func UserIDFromContext(ctx context.Context) (userID int64, ok bool) {
	id := IdentityFromContext(ctx)
	if id == nil {
		return 0, false
	}
	return id.UserID, true
}
