package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HoursPerDay is the standard paid day used to derive a missing daily or hourly rate.
const HoursPerDay = 8

type Employee struct {
	ID                   string
	UserID               *string
	EmployeeCode         string
	FullName             string
	Position             *string
	AssignedSite         *string
	RatePerDay           *decimal.Decimal
	RatePerHour          *decimal.Decimal
	OvertimeEligible     bool
	NightDiffEligible    bool
	SpecialRestDayPolicy bool
	RestDayRule          *string // RRULE or phrase, e.g. "every sunday"
	EmploymentStatus     EmploymentStatus
	HireDate             time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// HourlyRate returns the hourly rate, falling back to the daily rate over 8 hours.
func (e Employee) HourlyRate() decimal.Decimal {
	if e.RatePerHour != nil && e.RatePerHour.IsPositive() {
		return *e.RatePerHour
	}
	if e.RatePerDay != nil && e.RatePerDay.IsPositive() {
		return e.RatePerDay.Div(decimal.NewFromInt(HoursPerDay))
	}
	return decimal.Zero
}

// DailyRate returns the daily rate, falling back to the hourly rate times 8.
func (e Employee) DailyRate() decimal.Decimal {
	if e.RatePerDay != nil && e.RatePerDay.IsPositive() {
		return *e.RatePerDay
	}
	if e.RatePerHour != nil && e.RatePerHour.IsPositive() {
		return e.RatePerHour.Mul(decimal.NewFromInt(HoursPerDay))
	}
	return decimal.Zero
}

func (e Employee) PositionName() string {
	if e.Position == nil {
		return ""
	}
	return strings.TrimSpace(*e.Position)
}

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}
