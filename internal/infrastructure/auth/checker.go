package auth

import (
	"context"

	"upasana-backend/internal/domain"
)

// ContextChecker answers the orchestrator's auth question from the request
// context populated by the optional-auth middleware. Anonymous requests have
// no user attached and are not authenticated.
type ContextChecker struct{}

func (ContextChecker) IsAuthenticated(ctx context.Context) bool {
	return domain.UserFromContext(ctx) != nil
}
