package user

type Permission string

const (
	// Timesheets
	PermissionTimesheetView     Permission = "timesheet.view"
	PermissionTimesheetGenerate Permission = "timesheet.generate"

	// Salary data
	PermissionPayslipView Permission = "payslip.view"
	PermissionPayrollRun  Permission = "payroll.run"

	// Statutory tables
	PermissionDeductionView Permission = "deduction.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionTimesheetView,
		PermissionTimesheetGenerate,
		PermissionPayslipView,
		PermissionPayrollRun,
		PermissionDeductionView,
	},
	RoleHR: {
		PermissionTimesheetView,
		PermissionTimesheetGenerate,
		PermissionPayslipView,
		PermissionPayrollRun,
		PermissionDeductionView,
	},
	RoleAccountManager: {
		// Attendance only, no pay figures
		PermissionTimesheetView,
		PermissionDeductionView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
