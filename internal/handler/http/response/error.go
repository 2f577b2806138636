package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/greenpasture/payroll-backend-go/internal/domain/auth"
	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		Unauthorized(w, "User not found or inactive")
	case errors.Is(err, user.ErrInvalidRole):
		Forbidden(w, "User role is not recognized")
	case errors.Is(err, user.ErrSalaryAccessDenied):
		Forbidden(w, "Salary information is not available to your role")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeHasNoRate):
		BadRequest(w, "Employee has no pay rate configured", nil)
	case errors.Is(err, employee.ErrRestDayScheduleInvalid):
		BadRequest(w, "Employee rest day schedule is invalid", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrInvalidPeriod):
		BadRequest(w, "Period end must not be before period start", nil)
	case errors.Is(err, timesheet.ErrPeriodTooLong):
		BadRequest(w, "Period must not exceed 62 days", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRegisterExportFailed):
		InternalServerError(w, "Failed to build payroll register")
	case errors.Is(err, payroll.ErrPayslipDocumentFailed):
		InternalServerError(w, "Failed to build payslip document")
	case errors.Is(err, payroll.ErrUnsupportedPayPeriod):
		BadRequest(w, "Pay period must run from the 1st to the 15th or from the 16th to the end of the month", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
