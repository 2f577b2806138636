package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidRole             = errors.New("user has an unrecognized role")
	ErrSalaryAccessDenied      = errors.New("salary information is not available to this role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
