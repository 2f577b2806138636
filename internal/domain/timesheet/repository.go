package timesheet

import (
	"context"
	"time"
)

type ClockEntryRepository interface {
	// ListByEmployeeBetween returns entries whose clock-in falls in [from, to).
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]ClockEntry, error)
}

type DailyAttendanceRepository interface {
	// UpsertMany replaces the generated rows for the employee on each row's date.
	UpsertMany(ctx context.Context, employeeID string, rows []DailyAttendance) error
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]DailyAttendance, error)
}

// RestDayOverride pins a single date to rest day (true) or working day (false).
type RestDayOverride struct {
	Date      time.Time
	IsRestDay bool
}

type RestDayOverrideRepository interface {
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]RestDayOverride, error)
}
