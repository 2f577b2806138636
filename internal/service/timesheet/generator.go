package timesheet

import (
	"math"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
)

const (
	// seededHours is the paid day credited by the seeding rules.
	seededHours = 8
	// holidayLookbackDays bounds the search for the last worked regular day before a holiday.
	holidayLookbackDays = 7
)

// Generator turns raw clock entries into one row per calendar day. Dates are
// evaluated in the business timezone.
type Generator struct {
	loc *time.Location
}

func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc}
}

func (g *Generator) Location() *time.Location {
	return g.loc
}

type hourSums struct {
	regular   float64
	overtime  float64
	nightDiff float64
}

// Generate builds the timesheet for in. It is deterministic: identical input
// always yields identical rows.
func (g *Generator) Generate(in timesheet.GenerateInput) timesheet.Timesheet {
	start := timesheet.CalendarDate(in.PeriodStart, g.loc)
	end := timesheet.CalendarDate(in.PeriodEnd, g.loc)
	byDate := g.groupByClockInDate(in.ClockEntries)

	ts := timesheet.Timesheet{
		EmployeeID:  in.EmployeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		Days:        make([]timesheet.DailyAttendance, 0),
	}

	firstRestDaySeen := false
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(timesheet.DateLayout)
		sums := sumQualifying(byDate[key], in.OvertimeEligible, in.NightDiffEligible)

		restFlag := restDayFlag(in.RestDays, key)
		dayType := ClassifyDay(d, in.Holidays, restFlag)
		scheduledRest := d.Weekday() == time.Sunday
		if restFlag != nil {
			scheduledRest = *restFlag
		}

		seed := timesheet.SeedNone
		switch {
		case dayType == timesheet.DayTypeRegular && sums.regular == 0 && d.Weekday() == time.Saturday:
			seed = timesheet.SeedSaturdayBenefit
		case in.SpecialRestDayPolicy && scheduledRest && !firstRestDaySeen &&
			dayType == timesheet.DayTypeRestDay && sums.regular == 0 && sums.overtime == 0:
			seed = timesheet.SeedFirstRestDay
		case (dayType == timesheet.DayTypeRegularHoliday || dayType == timesheet.DayTypeNonWorkingHoliday) &&
			sums.regular == 0 && g.workedBeforeHoliday(d, in, byDate):
			seed = timesheet.SeedHolidayEligibility
		}
		if seed != timesheet.SeedNone {
			sums.regular = seededHours
		}
		if scheduledRest {
			firstRestDaySeen = true
		}

		row := timesheet.DailyAttendance{
			EmployeeID:     in.EmployeeID,
			Date:           d,
			DayType:        dayType,
			RegularHours:   floorHours(sums.regular),
			OvertimeHours:  floorHours(sums.overtime),
			NightDiffHours: floorHours(sums.nightDiff),
			SeedReason:     seed,
		}
		ts.Days = append(ts.Days, row)

		ts.Totals.RegularHours += row.RegularHours
		ts.Totals.OvertimeHours += row.OvertimeHours
		ts.Totals.NightDiffHours += row.NightDiffHours
	}

	return ts
}

// Validate reports, for each date in period whose weekday is expected, whether
// it has no entries at all or only entries that are open or unapproved.
func (g *Generator) Validate(entries []timesheet.ClockEntry, period timesheet.Period, expected []time.Weekday) timesheet.ValidationResult {
	byDate := g.groupByClockInDate(entries)
	want := make(map[time.Weekday]bool, len(expected))
	for _, wd := range expected {
		want[wd] = true
	}

	result := timesheet.ValidationResult{
		MissingDays:       make([]time.Time, 0),
		IncompleteEntries: make([]time.Time, 0),
	}

	start := timesheet.CalendarDate(period.Start, g.loc)
	end := timesheet.CalendarDate(period.End, g.loc)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !want[d.Weekday()] {
			continue
		}

		dayEntries := byDate[d.Format(timesheet.DateLayout)]
		if len(dayEntries) == 0 {
			result.MissingDays = append(result.MissingDays, d)
			continue
		}

		complete := false
		for _, e := range dayEntries {
			if e.IsCompleteAndApproved() {
				complete = true
				break
			}
		}
		if !complete {
			result.IncompleteEntries = append(result.IncompleteEntries, d)
		}
	}

	result.IsValid = len(result.MissingDays) == 0 && len(result.IncompleteEntries) == 0
	return result
}

// workedBeforeHoliday scans back up to a week for the nearest regular day with
// at least a full day of approved regular hours.
func (g *Generator) workedBeforeHoliday(holidayDate time.Time, in timesheet.GenerateInput, byDate map[string][]timesheet.ClockEntry) bool {
	for i := 1; i <= holidayLookbackDays; i++ {
		d := holidayDate.AddDate(0, 0, -i)
		key := d.Format(timesheet.DateLayout)
		if ClassifyDay(d, in.Holidays, restDayFlag(in.RestDays, key)) != timesheet.DayTypeRegular {
			continue
		}
		sums := sumQualifying(byDate[key], false, false)
		if floorHours(sums.regular) >= seededHours {
			return true
		}
	}
	return false
}

func (g *Generator) groupByClockInDate(entries []timesheet.ClockEntry) map[string][]timesheet.ClockEntry {
	byDate := make(map[string][]timesheet.ClockEntry)
	for _, e := range entries {
		key := e.ClockIn.In(g.loc).Format(timesheet.DateLayout)
		byDate[key] = append(byDate[key], e)
	}
	return byDate
}

func sumQualifying(entries []timesheet.ClockEntry, overtimeEligible, nightDiffEligible bool) hourSums {
	var s hourSums
	for _, e := range entries {
		if !e.IsCompleteAndApproved() {
			continue
		}
		s.regular += entryHours(e.RegularHours)
		if overtimeEligible {
			s.overtime += entryHours(e.OvertimeHours)
		}
		if nightDiffEligible {
			s.nightDiff += entryHours(e.NightDiffHours)
		}
	}
	return s
}

func restDayFlag(restDays map[string]bool, key string) *bool {
	if restDays == nil {
		return nil
	}
	v, ok := restDays[key]
	if !ok {
		return nil
	}
	return &v
}

// entryHours drops a negative, NaN or infinite entry value so it cannot
// cancel the other entries of the day.
func entryHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}

// floorHours truncates to whole hours. Negative or NaN sums become zero.
func floorHours(h float64) float64 {
	if math.IsNaN(h) || h <= 0 {
		return 0
	}
	return math.Floor(h)
}
