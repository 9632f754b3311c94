package common

import (
	"context"

	"github.com/mapleleafu/spritedex/models"
)

type contextKey string

// AuthInfoKey is the request context key holding the authenticated user.
const AuthInfoKey contextKey = "authInfo"

func WithAuthInfo(ctx context.Context, info models.AuthInfo) context.Context {
	return context.WithValue(ctx, AuthInfoKey, info)
}

// AuthInfoFrom returns the principal stored by the JWT middleware.
func AuthInfoFrom(ctx context.Context) (models.AuthInfo, bool) {
	info, ok := ctx.Value(AuthInfoKey).(models.AuthInfo)
	return info, ok
}
