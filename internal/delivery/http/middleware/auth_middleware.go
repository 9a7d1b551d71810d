package middleware

import (
	"context"
	"net/http"
	"strings"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/utils"
)

// OptionalAuth attaches user identity to the context when a valid access
// token is present, and lets the request through either way. The cart works
// logged-out; the checkout orchestrator is what insists on authentication,
// so this middleware never answers 401 itself.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := r.Cookie("accessToken"); err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := utils.ExtractClaims(r)
		if err != nil {
			// Invalid or expired token: treat as anonymous rather than
			// blocking cart browsing.
			next.ServeHTTP(w, r)
			return
		}

		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		ctx = context.WithValue(ctx, domain.TokenContextKey, tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
