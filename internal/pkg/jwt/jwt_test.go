package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, exp, err := svc.GenerateAccessToken("u-1", user.RoleHR, time.Hour)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestJWTService_Revocation(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	svc := &JWTService{revokedTokens: make(map[string]int64), now: func() time.Time { return now }}

	svc.RevokeToken("old", now.Add(time.Minute))
	svc.RevokeToken("current", now.Add(time.Hour))
	assert.True(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("current"))
	assert.False(t, svc.IsTokenRevoked("other"))

	now = now.Add(2 * time.Minute)
	svc.RevokeToken("another", now.Add(time.Hour))
	assert.False(t, svc.IsTokenRevoked("old"), "expired revocations are pruned")
	assert.True(t, svc.IsTokenRevoked("current"))
}
