package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greenpasture/payroll-backend-go/internal/domain/auth"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/greenpasture/payroll-backend-go/internal/handler/http/middleware"
	"github.com/greenpasture/payroll-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	userID, _ := claims["user_id"].(string)

	err = a.authService.Logout(r.Context(), auth.LogoutRequest{
		UserID:    userID,
		Token:     jwtauth.TokenFromHeader(r),
		ExpiresAt: token.Expiration(),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	userID, _ := claims["user_id"].(string)

	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		response.HandleError(w, user.ErrInvalidRole)
		return
	}

	response.Success(w, user.NewCurrentUserResponse(userID, role))
}
