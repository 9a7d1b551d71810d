package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"upasana-backend/internal/domain"
)

const sessionCookie = "cart_session"

// Session attaches a cart session ID to every request. Anonymous visitors
// get a cookie on first contact; the ledger registry keys off this ID, so
// carts survive both page reloads and sign-in.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), domain.SessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
