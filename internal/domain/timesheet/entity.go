package timesheet

import (
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/holiday"
)

// DateLayout is the calendar-date key used for rows, holidays and rest-day maps.
const DateLayout = "2006-01-02"

// DayType enum
type DayType string

const (
	DayTypeRegular                  DayType = "regular"
	DayTypeRestDay                  DayType = "rest_day"
	DayTypeRegularHoliday           DayType = "regular_holiday"
	DayTypeNonWorkingHoliday        DayType = "non_working_holiday"
	DayTypeRestDayRegularHoliday    DayType = "rest_day_regular_holiday"
	DayTypeRestDayNonWorkingHoliday DayType = "rest_day_non_working_holiday"
)

// AllDayTypes lists every day type in classification precedence order.
var AllDayTypes = []DayType{
	DayTypeRestDayRegularHoliday,
	DayTypeRestDayNonWorkingHoliday,
	DayTypeRegularHoliday,
	DayTypeNonWorkingHoliday,
	DayTypeRestDay,
	DayTypeRegular,
}

func (d DayType) IsValid() bool {
	for _, t := range AllDayTypes {
		if d == t {
			return true
		}
	}
	return false
}

// IsRestDay reports whether the day falls on the employee's rest day, holiday or not.
func (d DayType) IsRestDay() bool {
	return d == DayTypeRestDay || d == DayTypeRestDayRegularHoliday || d == DayTypeRestDayNonWorkingHoliday
}

// ClockEntryStatus enum
type ClockEntryStatus string

const (
	ClockEntryStatusPending      ClockEntryStatus = "pending"
	ClockEntryStatusApproved     ClockEntryStatus = "approved"
	ClockEntryStatusAutoApproved ClockEntryStatus = "auto_approved"
	ClockEntryStatusClockedOut   ClockEntryStatus = "clocked_out"
	ClockEntryStatusRejected     ClockEntryStatus = "rejected"
)

// Counts reports whether entries in this status contribute hours.
func (s ClockEntryStatus) Counts() bool {
	return s == ClockEntryStatusApproved || s == ClockEntryStatusAutoApproved || s == ClockEntryStatusClockedOut
}

// ClockEntry - One clock-in/clock-out session from the time clock
type ClockEntry struct {
	ID             string
	EmployeeID     string
	ClockIn        time.Time
	ClockOut       *time.Time
	RegularHours   float64
	OvertimeHours  float64
	NightDiffHours float64
	Status         ClockEntryStatus
}

// IsCompleteAndApproved reports whether the entry has a clock-out and a counting status.
func (e ClockEntry) IsCompleteAndApproved() bool {
	return e.ClockOut != nil && e.Status.Counts()
}

// SeedReason enum
type SeedReason string

const (
	SeedNone               SeedReason = ""
	SeedSaturdayBenefit    SeedReason = "saturday_benefit"
	SeedFirstRestDay       SeedReason = "first_rest_day"
	SeedHolidayEligibility SeedReason = "holiday_eligibility"
)

// DailyAttendance - One generated timesheet row. Hours are whole numbers after flooring.
type DailyAttendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	DayType        DayType
	RegularHours   float64
	OvertimeHours  float64
	NightDiffHours float64
	SeedReason     SeedReason
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSeeded reports whether regular hours were credited by policy rather than worked.
func (d DailyAttendance) IsSeeded() bool {
	return d.SeedReason != SeedNone
}

func (d DailyAttendance) DateKey() string {
	return d.Date.Format(DateLayout)
}

type Totals struct {
	RegularHours   float64
	OvertimeHours  float64
	NightDiffHours float64
}

// Timesheet - Generated rows for every day of a period, in date order
type Timesheet struct {
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Days        []DailyAttendance
	Totals      Totals
}

// GenerateInput - Everything the generator needs for one employee and period
type GenerateInput struct {
	EmployeeID           string
	ClockEntries         []ClockEntry
	PeriodStart          time.Time
	PeriodEnd            time.Time
	Holidays             []holiday.Holiday
	RestDays             map[string]bool // keyed by DateLayout; nil means Sundays
	OvertimeEligible     bool
	NightDiffEligible    bool
	SpecialRestDayPolicy bool
}

// NewGenerateInput returns an input with overtime and night differential enabled.
func NewGenerateInput(entries []ClockEntry, start, end time.Time, holidays []holiday.Holiday) GenerateInput {
	return GenerateInput{
		ClockEntries:      entries,
		PeriodStart:       start,
		PeriodEnd:         end,
		Holidays:          holidays,
		OvertimeEligible:  true,
		NightDiffEligible: true,
	}
}

// ValidationResult - Completeness report over expected working weekdays
type ValidationResult struct {
	IsValid           bool
	MissingDays       []time.Time
	IncompleteEntries []time.Time
}
