package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
)

type contextKey string

const claimsKey contextKey = "session_claims"

func tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		const prefix = "Bearer "
		if !strings.HasPrefix(h, prefix) {
			return "", ErrMissingToken
		}
		return strings.TrimSpace(strings.TrimPrefix(h, prefix)), nil
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrMissingToken
}

// SessionMiddleware binds the request to the session named by its token.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr, err := tokenFromRequest(r)
		if err != nil {
			log.Warn("Request without session token")
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Invalid session token")
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = config.WithSessionID(ctx, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetSessionClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, errors.New("session claims not found in context")
	}
	return claims, nil
}
