package timesheet

import (
	"context"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
)

type TimesheetService interface {
	// ClassifyDay classifies a single date against the supplied holidays
	ClassifyDay(ctx context.Context, req ClassifyDayRequest) (ClassifyDayResponse, error)

	// Generate builds a timesheet from entries supplied in the request
	Generate(ctx context.Context, req GenerateTimesheetRequest) (TimesheetResponse, error)

	// Validate reports missing and incomplete expected working days for supplied entries
	Validate(ctx context.Context, req ValidateTimesheetRequest) (ValidationResponse, error)

	// BuildForEmployee loads stored inputs and generates the employee's timesheet without saving it
	BuildForEmployee(ctx context.Context, employeeID string, period Period) (Timesheet, error)

	// BuildForProfile is BuildForEmployee for an employee the caller already loaded
	BuildForProfile(ctx context.Context, emp employee.Employee, period Period) (Timesheet, error)

	// GenerateForEmployee builds the employee's timesheet and persists its rows
	GenerateForEmployee(ctx context.Context, employeeID string, period Period) (TimesheetResponse, error)

	// StoredForEmployee returns the rows last persisted for the employee in the period
	StoredForEmployee(ctx context.Context, employeeID string, period Period) (TimesheetResponse, error)

	// GenerateForAllActive regenerates and persists timesheets for every active employee
	GenerateForAllActive(ctx context.Context, period Period) (int, error)

	// ValidateForEmployee checks stored clock entries against expected working weekdays
	ValidateForEmployee(ctx context.Context, employeeID string, period Period, weekdays []time.Weekday) (ValidationResponse, error)
}
