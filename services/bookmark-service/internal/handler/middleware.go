package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/thanaritk/markvault/shared/auth"
)

type contextKey struct{}

var userIDKey contextKey

// UserIDFromContext returns the authenticated user id placed in the request
// context by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// AuthMiddleware validates bearer tokens and scopes the request to the
// authenticated user.
type AuthMiddleware struct {
	jwtAuth auth.JWTAuthenticator
	secret  string
}

// NewAuthMiddleware creates the middleware with the access token secret.
func NewAuthMiddleware(jwtAuth auth.JWTAuthenticator, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtAuth: jwtAuth,
		secret:  secret,
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := m.jwtAuth.ValidateUserToken(parts[1], m.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
