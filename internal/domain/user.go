package domain

import "context"

type ContextKey string

// UserContextKey carries the authenticated user, when one is present.
const UserContextKey ContextKey = "user"

// SessionContextKey carries the cart session ID issued by the session cookie
// middleware. Every request that reaches the cart handlers has one.
const SessionContextKey ContextKey = "cartSession"

// TokenContextKey carries the raw access token for forwarding to the remote
// commerce API. Only the outbound client adapters read it; the usecases never
// see token material.
const TokenContextKey ContextKey = "accessToken"

// User is the slice of the remote identity we get out of a validated access
// token. No token material leaks past the middleware boundary.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthChecker reports whether the current request context belongs to an
// authenticated user. The checkout orchestrator consults it before touching
// the order API.
type AuthChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// UserFromContext returns the authenticated user attached by the auth
// middleware, or nil for anonymous traffic.
func UserFromContext(ctx context.Context) *User {
	if u, ok := ctx.Value(UserContextKey).(*User); ok {
		return u
	}
	return nil
}

// SessionFromContext returns the cart session ID for the request, or "".
func SessionFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(SessionContextKey).(string); ok {
		return s
	}
	return ""
}

// TokenFromContext returns the raw access token for the request, or "".
func TokenFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(TokenContextKey).(string); ok {
		return t
	}
	return ""
}
