package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

type ctxUserIDKey struct{}

// ContextWithUserID binds the authenticated user ID to the context
func ContextWithUserID(ctx context.Context, id types.UserID) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, id)
}

// UserIDFromContext returns the authenticated user ID bound to the context
func UserIDFromContext(ctx context.Context) (types.UserID, error) {
	id, ok := ctx.Value(ctxUserIDKey{}).(types.UserID)
	if !ok || id == "" {
		return "", goerr.New("no authenticated user in context")
	}
	return id, nil
}
