package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/common"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
)

// UserFinder confirms a token subject still exists.
type UserFinder interface {
	FindOne(ctx context.Context, id string) (*models.User, error)
}

// JWTValidationMiddleware rejects requests without a valid session token for
// an existing user, and stores the principal in the request context.
func JWTValidationMiddleware(tokens auth.Verifier, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.TokenFromRequest(r)
			if tokenStr == "" {
				utils.HandleError(w, r, responses.UnauthorizedError{Msg: "Unauthorized"})
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				slog.Default().Debug("token rejected", "component", "jwt", "path", r.URL.Path, "error", err)
				utils.HandleError(w, r, responses.UnauthorizedError{Msg: "Unauthorized"})
				return
			}

			user, err := users.FindOne(r.Context(), claims.Subject)
			if err != nil {
				utils.HandleError(w, r, err)
				return
			}
			if user == nil {
				utils.HandleError(w, r, responses.UnauthorizedError{Msg: "Unauthorized"})
				return
			}

			ctx := common.WithAuthInfo(r.Context(), claims.AuthInfo())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
