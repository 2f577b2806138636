package user

type CurrentUserResponse struct {
	UserID           string `json:"user_id"`
	Role             Role   `json:"role"`
	IsAdmin          bool   `json:"is_admin"`
	IsHR             bool   `json:"is_hr"`
	IsAccountManager bool   `json:"is_account_manager"`
}

func NewCurrentUserResponse(userID string, role Role) CurrentUserResponse {
	return CurrentUserResponse{
		UserID:           userID,
		Role:             role,
		IsAdmin:          role == RoleAdmin,
		IsHR:             role == RoleHR,
		IsAccountManager: role == RoleAccountManager,
	}
}
