package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/greenpasture/payroll-backend-go/internal/domain/auth"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/jwt"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/rolecache"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
	roleCache  rolecache.Cache
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, roleCache rolecache.Cache) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		roleCache:  roleCache,
	}
}

// ResolveRole treats cache failures as misses so a cache outage degrades to database lookups.
func (s *AuthServiceImpl) ResolveRole(ctx context.Context, userID string) (user.Role, error) {
	role, ok, err := s.roleCache.Get(ctx, userID)
	if err != nil {
		slog.Warn("Role cache read failed", "user_id", userID, "error", err)
	}
	if ok && role.IsValid() {
		return role, nil
	}

	role, err = s.userRepo.GetActiveRole(ctx, userID)
	if err != nil {
		return "", err
	}
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", user.ErrInvalidRole, role)
	}

	if err := s.roleCache.Set(ctx, userID, role); err != nil {
		slog.Warn("Role cache write failed", "user_id", userID, "error", err)
	}
	return role, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.UserID == "" || req.Token == "" {
		return auth.ErrInvalidToken
	}

	s.jwtService.RevokeToken(req.Token, req.ExpiresAt)
	if err := s.roleCache.Invalidate(ctx, req.UserID); err != nil {
		return fmt.Errorf("failed to invalidate cached role: %w", err)
	}

	slog.Info("User logged out", "user_id", req.UserID)
	return nil
}
