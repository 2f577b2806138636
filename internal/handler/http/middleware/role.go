package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greenpasture/payroll-backend-go/internal/domain/auth"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/greenpasture/payroll-backend-go/internal/handler/http/response"
)

type ctxKey string

const roleCtxKey ctxKey = "role"

func WithRole(ctx context.Context, role user.Role) context.Context {
	return context.WithValue(ctx, roleCtxKey, role)
}

func RoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(roleCtxKey).(user.Role)
	return role, ok
}

// RoleResolver puts the caller's active role in the request context. The
// token's own role claim is ignored.
func RoleResolver(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, err := authService.ResolveRole(r.Context(), userID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// DenySalaryAccess keeps account managers out of payslip and pay-rate routes.
func DenySalaryAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := RoleFromContext(r.Context())
		if !ok || role == user.RoleAccountManager {
			response.HandleError(w, user.ErrSalaryAccessDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
