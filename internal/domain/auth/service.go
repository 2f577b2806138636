package auth

import (
	"context"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
)

type LogoutRequest struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	// ResolveRole returns the active role for userID, served from the role cache when fresh
	ResolveRole(ctx context.Context, userID string) (user.Role, error)
	// Logout revokes the access token and drops the user's cached role
	Logout(ctx context.Context, req LogoutRequest) error
}
