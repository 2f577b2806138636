package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/auth"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/jwt"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/rolecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type memUsers struct {
	roles map[string]user.Role
	calls int
}

func (m *memUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	role, ok := m.roles[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id, Role: role, IsActive: true}, nil
}

func (m *memUsers) GetActiveRole(ctx context.Context, id string) (user.Role, error) {
	m.calls++
	role, ok := m.roles[id]
	if !ok {
		return "", user.ErrUserNotFound
	}
	return role, nil
}

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, userID string) (user.Role, bool, error) {
	return "", false, errors.New("cache down")
}
func (brokenCache) Set(ctx context.Context, userID string, role user.Role) error {
	return errors.New("cache down")
}
func (brokenCache) Invalidate(ctx context.Context, userID string) error {
	return errors.New("cache down")
}

func TestAuthService_ResolveRole(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		users := &memUsers{roles: map[string]user.Role{"u-1": user.RoleHR}}
		svc := NewAuthService(users, jwt.NewJWTService(testSecret), rolecache.NewMemoryCache(time.Minute, nil))

		for i := 0; i < 3; i++ {
			role, err := svc.ResolveRole(ctx, "u-1")
			require.NoError(t, err)
			assert.Equal(t, user.RoleHR, role)
		}
		assert.Equal(t, 1, users.calls)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc := NewAuthService(&memUsers{}, jwt.NewJWTService(testSecret), rolecache.NewMemoryCache(time.Minute, nil))

		_, err := svc.ResolveRole(ctx, "gone")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("unknown role", func(t *testing.T) {
		users := &memUsers{roles: map[string]user.Role{"u-1": "janitor"}}
		svc := NewAuthService(users, jwt.NewJWTService(testSecret), rolecache.NewMemoryCache(time.Minute, nil))

		_, err := svc.ResolveRole(ctx, "u-1")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("cache outage falls back to the database", func(t *testing.T) {
		users := &memUsers{roles: map[string]user.Role{"u-1": user.RoleAdmin}}
		svc := NewAuthService(users, jwt.NewJWTService(testSecret), brokenCache{})

		role, err := svc.ResolveRole(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, role)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	users := &memUsers{roles: map[string]user.Role{"u-1": user.RoleHR}}
	jwtService := jwt.NewJWTService(testSecret)
	cache := rolecache.NewMemoryCache(time.Minute, nil)
	svc := NewAuthService(users, jwtService, cache)

	_, err := svc.ResolveRole(ctx, "u-1")
	require.NoError(t, err)

	err = svc.Logout(ctx, auth.LogoutRequest{UserID: "u-1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	assert.True(t, jwtService.IsTokenRevoked("tok"))
	_, ok, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, ok, "logout drops the cached role")

	t.Run("missing token", func(t *testing.T) {
		assert.ErrorIs(t, svc.Logout(ctx, auth.LogoutRequest{UserID: "u-1"}), auth.ErrInvalidToken)
	})

	t.Run("cache failure is reported", func(t *testing.T) {
		svc := NewAuthService(users, jwtService, brokenCache{})
		err := svc.Logout(ctx, auth.LogoutRequest{UserID: "u-1", Token: "tok2", ExpiresAt: time.Now().Add(time.Hour)})
		assert.ErrorContains(t, err, "cache down")
		assert.True(t, jwtService.IsTokenRevoked("tok2"))
	})
}
