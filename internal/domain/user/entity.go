package user

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"           // Full access
	RoleHR             Role = "hr"              // Runs payroll and timesheets
	RoleAccountManager Role = "account_manager" // Client-facing; never sees salary data
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleAccountManager:
		return true
	}
	return false
}

// User is a row of the HR system's users table. Only active users resolve to a role.
type User struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanViewSalaries is false for account managers
func (u *User) CanViewSalaries() bool {
	return HasPermission(u.Role, PermissionPayslipView)
}
