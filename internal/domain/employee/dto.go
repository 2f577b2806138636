package employee

import (
	"github.com/greenpasture/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PayProfileRequest carries the employee fields the payslip engine needs when the
// caller supplies them inline instead of referencing a stored employee.
type PayProfileRequest struct {
	EmployeeID           string           `json:"employee_id,omitempty"`
	FullName             string           `json:"full_name"`
	Position             *string          `json:"position,omitempty"`
	RatePerDay           *decimal.Decimal `json:"rate_per_day,omitempty"`
	RatePerHour          *decimal.Decimal `json:"rate_per_hour,omitempty"`
	OvertimeEligible     *bool            `json:"overtime_eligible,omitempty"`
	NightDiffEligible    *bool            `json:"night_diff_eligible,omitempty"`
	SpecialRestDayPolicy bool             `json:"special_rest_day_policy"`
}

func (r *PayProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "employee.full_name", Message: "is required"})
	}
	if r.RatePerDay == nil && r.RatePerHour == nil {
		errs = append(errs, validator.ValidationError{Field: "employee.rate_per_hour", Message: "rate_per_hour or rate_per_day is required"})
	}
	if r.RatePerDay != nil && r.RatePerDay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employee.rate_per_day", Message: "must be non-negative"})
	}
	if r.RatePerHour != nil && r.RatePerHour.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employee.rate_per_hour", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee builds an active employee; eligibility flags default to true.
func (r *PayProfileRequest) ToEmployee() Employee {
	return Employee{
		ID:                   r.EmployeeID,
		FullName:             r.FullName,
		Position:             r.Position,
		RatePerDay:           r.RatePerDay,
		RatePerHour:          r.RatePerHour,
		OvertimeEligible:     r.OvertimeEligible == nil || *r.OvertimeEligible,
		NightDiffEligible:    r.NightDiffEligible == nil || *r.NightDiffEligible,
		SpecialRestDayPolicy: r.SpecialRestDayPolicy,
		EmploymentStatus:     EmploymentStatusActive,
	}
}

type EmployeeSummary struct {
	ID           string `json:"id,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	FullName     string `json:"full_name"`
	Position     string `json:"position,omitempty"`
}

func NewEmployeeSummary(e Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Position:     e.PositionName(),
	}
}
