package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	// GetActiveRole returns ErrUserNotFound for unknown or deactivated users.
	GetActiveRole(ctx context.Context, id string) (Role, error)
}
