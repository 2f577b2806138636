package timesheet

import (
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/holiday"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/validator"
)

// MaxPeriodDays bounds a single generation request.
const MaxPeriodDays = 62

// ========== REQUEST DTOs ==========

type ClockEntryRequest struct {
	ID             string  `json:"id,omitempty"`
	ClockIn        string  `json:"clock_in"`            // RFC3339
	ClockOut       *string `json:"clock_out,omitempty"` // RFC3339, omitted while still clocked in
	RegularHours   float64 `json:"regular_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	NightDiffHours float64 `json:"night_diff_hours"`
	Status         string  `json:"status"`
}

func parseClockEntries(reqs []ClockEntryRequest) ([]ClockEntry, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	entries := make([]ClockEntry, 0, len(reqs))

	for i, r := range reqs {
		clockIn, ok := validator.IsValidDateTime(r.ClockIn)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("entries", i, "clock_in"), Message: "must be an RFC3339 timestamp"})
			continue
		}

		var clockOut *time.Time
		if r.ClockOut != nil && *r.ClockOut != "" {
			t, ok := validator.IsValidDateTime(*r.ClockOut)
			if !ok {
				errs = append(errs, validator.ValidationError{Field: validator.IndexedField("entries", i, "clock_out"), Message: "must be an RFC3339 timestamp"})
				continue
			}
			clockOut = &t
		}

		for _, h := range []struct {
			field string
			value float64
		}{
			{"regular_hours", r.RegularHours},
			{"overtime_hours", r.OvertimeHours},
			{"night_diff_hours", r.NightDiffHours},
		} {
			if h.value < 0 {
				errs = append(errs, validator.ValidationError{Field: validator.IndexedField("entries", i, h.field), Message: "must be non-negative"})
			}
		}

		entries = append(entries, ClockEntry{
			ID:             r.ID,
			ClockIn:        clockIn,
			ClockOut:       clockOut,
			RegularHours:   r.RegularHours,
			OvertimeHours:  r.OvertimeHours,
			NightDiffHours: r.NightDiffHours,
			Status:         ClockEntryStatus(r.Status),
		})
	}
	return entries, errs
}

type GenerateTimesheetRequest struct {
	PeriodStart          string                   `json:"period_start"`
	PeriodEnd            string                   `json:"period_end"`
	Entries              []ClockEntryRequest      `json:"entries"`
	Holidays             []holiday.HolidayRequest `json:"holidays"`
	RestDays             map[string]bool          `json:"rest_days,omitempty"`
	OvertimeEligible     *bool                    `json:"overtime_eligible,omitempty"`
	NightDiffEligible    *bool                    `json:"night_diff_eligible,omitempty"`
	SpecialRestDayPolicy bool                     `json:"special_rest_day_policy"`
}

// ToInput validates the request and converts it to generator input.
// Period dates are interpreted in loc.
func (r *GenerateTimesheetRequest) ToInput(loc *time.Location) (GenerateInput, error) {
	var errs validator.ValidationErrors

	start, end, rangeErrs := validator.ValidateDateRange(r.PeriodStart, r.PeriodEnd)
	errs = append(errs, validator.PrefixFields("period_", rangeErrs)...)
	if len(rangeErrs) == 0 && end.Sub(start) >= MaxPeriodDays*24*time.Hour {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period must not exceed 62 days"})
	}

	entries, entryErrs := parseClockEntries(r.Entries)
	errs = append(errs, entryErrs...)

	holidays, err := holiday.ToHolidays(r.Holidays)
	if err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	for key := range r.RestDays {
		if _, ok := validator.IsValidDate(key); !ok {
			errs = append(errs, validator.ValidationError{Field: "rest_days", Message: "keys must be in YYYY-MM-DD format"})
			break
		}
	}

	if len(errs) > 0 {
		return GenerateInput{}, errs
	}

	in := NewGenerateInput(entries, CalendarDate(start, loc), CalendarDate(end, loc), holidays)
	in.RestDays = r.RestDays
	in.SpecialRestDayPolicy = r.SpecialRestDayPolicy
	if r.OvertimeEligible != nil {
		in.OvertimeEligible = *r.OvertimeEligible
	}
	if r.NightDiffEligible != nil {
		in.NightDiffEligible = *r.NightDiffEligible
	}
	return in, nil
}

type ValidateTimesheetRequest struct {
	PeriodStart      string              `json:"period_start"`
	PeriodEnd        string              `json:"period_end"`
	Entries          []ClockEntryRequest `json:"entries"`
	ExpectedWeekdays []int               `json:"expected_weekdays"` // 1=Monday .. 7=Sunday
}

// ToArgs validates the request and returns parsed entries, the period and expected weekdays.
func (r *ValidateTimesheetRequest) ToArgs(loc *time.Location) ([]ClockEntry, Period, []time.Weekday, error) {
	var errs validator.ValidationErrors

	start, end, rangeErrs := validator.ValidateDateRange(r.PeriodStart, r.PeriodEnd)
	errs = append(errs, validator.PrefixFields("period_", rangeErrs)...)

	entries, entryErrs := parseClockEntries(r.Entries)
	errs = append(errs, entryErrs...)

	weekdays := make([]time.Weekday, 0, len(r.ExpectedWeekdays))
	for _, n := range r.ExpectedWeekdays {
		if n < 1 || n > 7 {
			errs = append(errs, validator.ValidationError{Field: "expected_weekdays", Message: "must contain values from 1 (Monday) to 7 (Sunday)"})
			break
		}
		weekdays = append(weekdays, time.Weekday(n%7))
	}

	if len(errs) > 0 {
		return nil, Period{}, nil, errs
	}
	return entries, Period{Start: CalendarDate(start, loc), End: CalendarDate(end, loc)}, weekdays, nil
}

// PeriodQuery reads start and end query parameters. Both empty selects the
// pay week containing now.
type PeriodQuery struct {
	Start string
	End   string
}

func (q PeriodQuery) ToPeriod(now time.Time, loc *time.Location) (Period, error) {
	if q.Start == "" && q.End == "" {
		return WeekOf(now, loc), nil
	}

	start, end, errs := validator.ValidateDateRange(q.Start, q.End)
	if len(errs) == 0 && end.Sub(start) >= MaxPeriodDays*24*time.Hour {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "period must not exceed 62 days"})
	}
	if len(errs) > 0 {
		return Period{}, errs
	}
	return Period{Start: CalendarDate(start, loc), End: CalendarDate(end, loc)}, nil
}

// ToPayPeriod is ToPeriod for payslips. Both empty selects the half month
// containing now, and any other range must be exactly one half month.
func (q PeriodQuery) ToPayPeriod(now time.Time, loc *time.Location) (Period, error) {
	if q.Start == "" && q.End == "" {
		return HalfMonthOf(now, loc), nil
	}

	p, err := q.ToPeriod(now, loc)
	if err != nil {
		return Period{}, err
	}
	if !p.IsHalfMonth() {
		return Period{}, validator.ValidationErrors{{Field: "end", Message: "pay period must run from the 1st to the 15th or from the 16th to the end of the month"}}
	}
	return p, nil
}

type ClassifyDayRequest struct {
	Date      string                   `json:"date"`
	Holidays  []holiday.HolidayRequest `json:"holidays"`
	IsRestDay *bool                    `json:"is_rest_day,omitempty"`
}

func (r *ClassifyDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if _, err := holiday.ToHolidays(r.Holidays); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type DailyAttendanceResponse struct {
	Date           string     `json:"date"`
	Weekday        string     `json:"weekday"`
	DayType        DayType    `json:"day_type"`
	RegularHours   float64    `json:"regular_hours"`
	OvertimeHours  float64    `json:"overtime_hours"`
	NightDiffHours float64    `json:"night_diff_hours"`
	SeedReason     SeedReason `json:"seed_reason,omitempty"`
}

type TotalsResponse struct {
	RegularHours   float64 `json:"regular_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	NightDiffHours float64 `json:"night_diff_hours"`
}

type TimesheetResponse struct {
	EmployeeID  string                    `json:"employee_id,omitempty"`
	PeriodStart string                    `json:"period_start"`
	PeriodEnd   string                    `json:"period_end"`
	Days        []DailyAttendanceResponse `json:"days"`
	Totals      TotalsResponse            `json:"totals"`
}

func NewTimesheetResponse(ts Timesheet) TimesheetResponse {
	days := make([]DailyAttendanceResponse, 0, len(ts.Days))
	for _, d := range ts.Days {
		days = append(days, DailyAttendanceResponse{
			Date:           d.DateKey(),
			Weekday:        d.Date.Weekday().String(),
			DayType:        d.DayType,
			RegularHours:   d.RegularHours,
			OvertimeHours:  d.OvertimeHours,
			NightDiffHours: d.NightDiffHours,
			SeedReason:     d.SeedReason,
		})
	}
	return TimesheetResponse{
		EmployeeID:  ts.EmployeeID,
		PeriodStart: ts.PeriodStart.Format(DateLayout),
		PeriodEnd:   ts.PeriodEnd.Format(DateLayout),
		Days:        days,
		Totals: TotalsResponse{
			RegularHours:   ts.Totals.RegularHours,
			OvertimeHours:  ts.Totals.OvertimeHours,
			NightDiffHours: ts.Totals.NightDiffHours,
		},
	}
}

type ValidationResponse struct {
	IsValid           bool     `json:"is_valid"`
	MissingDays       []string `json:"missing_days"`
	IncompleteEntries []string `json:"incomplete_entries"`
}

func NewValidationResponse(v ValidationResult) ValidationResponse {
	resp := ValidationResponse{
		IsValid:           v.IsValid,
		MissingDays:       make([]string, 0, len(v.MissingDays)),
		IncompleteEntries: make([]string, 0, len(v.IncompleteEntries)),
	}
	for _, d := range v.MissingDays {
		resp.MissingDays = append(resp.MissingDays, d.Format(DateLayout))
	}
	for _, d := range v.IncompleteEntries {
		resp.IncompleteEntries = append(resp.IncompleteEntries, d.Format(DateLayout))
	}
	return resp
}

type ClassifyDayResponse struct {
	Date    string  `json:"date"`
	DayType DayType `json:"day_type"`
}
