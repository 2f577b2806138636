package timesheet

import (
	"math"
	"testing"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/holiday"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry builds a nine-hour session starting at 08:00 Manila time on date.
func entry(date string, regular, overtime, nightDiff float64, status timesheet.ClockEntryStatus) timesheet.ClockEntry {
	in := day(date).Add(8 * time.Hour)
	out := in.Add(9 * time.Hour)
	return timesheet.ClockEntry{
		ID:             "e-" + date,
		EmployeeID:     "emp-1",
		ClockIn:        in,
		ClockOut:       &out,
		RegularHours:   regular,
		OvertimeHours:  overtime,
		NightDiffHours: nightDiff,
		Status:         status,
	}
}

func approved(date string, regular, overtime, nightDiff float64) timesheet.ClockEntry {
	return entry(date, regular, overtime, nightDiff, timesheet.ClockEntryStatusApproved)
}

func rowFor(t *testing.T, ts timesheet.Timesheet, date string) timesheet.DailyAttendance {
	t.Helper()
	for _, d := range ts.Days {
		if d.DateKey() == date {
			return d
		}
	}
	t.Fatalf("no row for %s", date)
	return timesheet.DailyAttendance{}
}

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator(manila)

	t.Run("approved weekday hours", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-03", 8, 2, 1)},
			day("2024-06-03"), day("2024-06-03"), nil,
		)
		ts := gen.Generate(in)

		require.Len(t, ts.Days, 1)
		row := ts.Days[0]
		assert.Equal(t, timesheet.DayTypeRegular, row.DayType)
		assert.Equal(t, 8.0, row.RegularHours)
		assert.Equal(t, 2.0, row.OvertimeHours)
		assert.Equal(t, 1.0, row.NightDiffHours)
		assert.False(t, row.IsSeeded())
		assert.Equal(t, timesheet.Totals{RegularHours: 8, OvertimeHours: 2, NightDiffHours: 1}, ts.Totals)
	})

	t.Run("one row per day, zero filled", func(t *testing.T) {
		in := timesheet.NewGenerateInput(nil, day("2024-06-03"), day("2024-06-07"), nil)
		ts := gen.Generate(in)

		require.Len(t, ts.Days, 5)
		for i, row := range ts.Days {
			assert.Equal(t, day("2024-06-03").AddDate(0, 0, i), row.Date)
			assert.Zero(t, row.RegularHours)
			assert.Zero(t, row.OvertimeHours)
			assert.Zero(t, row.NightDiffHours)
		}
	})

	t.Run("end before start yields no rows", func(t *testing.T) {
		ts := gen.Generate(timesheet.NewGenerateInput(nil, day("2024-06-07"), day("2024-06-03"), nil))
		assert.Empty(t, ts.Days)
		assert.Equal(t, timesheet.Totals{}, ts.Totals)
	})

	t.Run("only complete approved entries count", func(t *testing.T) {
		open := approved("2024-06-04", 8, 0, 0)
		open.ClockOut = nil
		entries := []timesheet.ClockEntry{
			entry("2024-06-03", 8, 0, 0, timesheet.ClockEntryStatusPending),
			open,
			entry("2024-06-05", 8, 0, 0, timesheet.ClockEntryStatusRejected),
			entry("2024-06-06", 8, 0, 0, timesheet.ClockEntryStatusAutoApproved),
			entry("2024-06-07", 8, 0, 0, timesheet.ClockEntryStatusClockedOut),
		}
		ts := gen.Generate(timesheet.NewGenerateInput(entries, day("2024-06-03"), day("2024-06-07"), nil))

		assert.Zero(t, rowFor(t, ts, "2024-06-03").RegularHours)
		assert.Zero(t, rowFor(t, ts, "2024-06-04").RegularHours)
		assert.Zero(t, rowFor(t, ts, "2024-06-05").RegularHours)
		assert.Equal(t, 8.0, rowFor(t, ts, "2024-06-06").RegularHours)
		assert.Equal(t, 8.0, rowFor(t, ts, "2024-06-07").RegularHours)
	})

	t.Run("eligibility gates overtime and night differential", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-03", 8, 3, 2)},
			day("2024-06-03"), day("2024-06-03"), nil,
		)
		in.OvertimeEligible = false
		in.NightDiffEligible = false
		row := gen.Generate(in).Days[0]

		assert.Equal(t, 8.0, row.RegularHours)
		assert.Zero(t, row.OvertimeHours)
		assert.Zero(t, row.NightDiffHours)
	})

	t.Run("hours are floored after summing", func(t *testing.T) {
		first := approved("2024-06-03", 0.5, 0.4, 0.9)
		second := approved("2024-06-03", 0.6, 0.7, 0)
		second.ClockIn = second.ClockIn.Add(10 * time.Hour)
		third := approved("2024-06-04", 7.9, 1.99, 0.5)
		ts := gen.Generate(timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{first, second, third},
			day("2024-06-03"), day("2024-06-04"), nil,
		))

		mon := rowFor(t, ts, "2024-06-03")
		assert.Equal(t, 1.0, mon.RegularHours)
		assert.Equal(t, 1.0, mon.OvertimeHours)
		assert.Equal(t, 0.0, mon.NightDiffHours)

		tue := rowFor(t, ts, "2024-06-04")
		assert.Equal(t, 7.0, tue.RegularHours)
		assert.Equal(t, 1.0, tue.OvertimeHours)
		assert.Equal(t, 0.0, tue.NightDiffHours)

		assert.Equal(t, timesheet.Totals{RegularHours: 8, OvertimeHours: 2, NightDiffHours: 0}, ts.Totals)
	})

	t.Run("invalid entry hours do not cancel other entries", func(t *testing.T) {
		negative := approved("2024-06-03", -8, -2, -1)
		negative.ClockIn = negative.ClockIn.Add(10 * time.Hour)
		notANumber := approved("2024-06-04", math.NaN(), math.Inf(1), math.NaN())
		notANumber.ClockIn = notANumber.ClockIn.Add(10 * time.Hour)
		ts := gen.Generate(timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{
				approved("2024-06-03", 8, 2, 1), negative,
				approved("2024-06-04", 8, 1, 0), notANumber,
			},
			day("2024-06-03"), day("2024-06-04"), nil,
		))

		mon := rowFor(t, ts, "2024-06-03")
		assert.Equal(t, 8.0, mon.RegularHours)
		assert.Equal(t, 2.0, mon.OvertimeHours)
		assert.Equal(t, 1.0, mon.NightDiffHours)

		tue := rowFor(t, ts, "2024-06-04")
		assert.Equal(t, 8.0, tue.RegularHours)
		assert.Equal(t, 1.0, tue.OvertimeHours)
		assert.Equal(t, 0.0, tue.NightDiffHours)
	})

	t.Run("clock-in date is taken in business timezone", func(t *testing.T) {
		// 17:30 UTC on Sunday is 01:30 Monday in Manila.
		in := time.Date(2024, 6, 2, 17, 30, 0, 0, time.UTC)
		out := in.Add(9 * time.Hour)
		e := timesheet.ClockEntry{ClockIn: in, ClockOut: &out, RegularHours: 8, Status: timesheet.ClockEntryStatusApproved}
		ts := gen.Generate(timesheet.NewGenerateInput([]timesheet.ClockEntry{e}, day("2024-06-02"), day("2024-06-03"), nil))

		assert.Zero(t, rowFor(t, ts, "2024-06-02").RegularHours)
		assert.Equal(t, 8.0, rowFor(t, ts, "2024-06-03").RegularHours)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-11", 8, 1, 1), approved("2024-06-13", 9.5, 0, 3)},
			day("2024-06-10"), day("2024-06-16"),
			[]holiday.Holiday{regularHoliday("2024-06-12")},
		)
		assert.Equal(t, gen.Generate(in), gen.Generate(in))
	})
}

func TestGenerator_SaturdayBenefit(t *testing.T) {
	gen := NewGenerator(manila)

	// 2024-06-08 is a Saturday.
	ts := gen.Generate(timesheet.NewGenerateInput(nil, day("2024-06-08"), day("2024-06-09"), nil))

	sat := rowFor(t, ts, "2024-06-08")
	assert.Equal(t, timesheet.DayTypeRegular, sat.DayType)
	assert.Equal(t, 8.0, sat.RegularHours)
	assert.Equal(t, timesheet.SeedSaturdayBenefit, sat.SeedReason)

	sun := rowFor(t, ts, "2024-06-09")
	assert.Equal(t, timesheet.DayTypeRestDay, sun.DayType)
	assert.Zero(t, sun.RegularHours, "plain rest day is never seeded under the default policy")

	t.Run("worked saturday keeps actual hours", func(t *testing.T) {
		ts := gen.Generate(timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-08", 4, 0, 0)},
			day("2024-06-08"), day("2024-06-08"), nil,
		))
		assert.Equal(t, 4.0, ts.Days[0].RegularHours)
		assert.False(t, ts.Days[0].IsSeeded())
	})

	t.Run("saturday holiday is not a saturday benefit", func(t *testing.T) {
		ts := gen.Generate(timesheet.NewGenerateInput(nil, day("2024-06-08"), day("2024-06-08"),
			[]holiday.Holiday{nonWorkingHoliday("2024-06-08")}))
		assert.Equal(t, timesheet.DayTypeNonWorkingHoliday, ts.Days[0].DayType)
		assert.Zero(t, ts.Days[0].RegularHours)
	})
}

func TestGenerator_HolidayEligibility(t *testing.T) {
	gen := NewGenerator(manila)

	t.Run("worked the day before", func(t *testing.T) {
		// Tuesday worked, Wednesday 2024-06-12 is a regular holiday.
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-11", 8, 0, 0)},
			day("2024-06-11"), day("2024-06-12"),
			[]holiday.Holiday{regularHoliday("2024-06-12")},
		)
		row := rowFor(t, gen.Generate(in), "2024-06-12")
		assert.Equal(t, timesheet.DayTypeRegularHoliday, row.DayType)
		assert.Equal(t, 8.0, row.RegularHours)
		assert.Equal(t, timesheet.SeedHolidayEligibility, row.SeedReason)
	})

	t.Run("lookback reaches before the period", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-11", 8, 0, 0)},
			day("2024-06-12"), day("2024-06-12"),
			[]holiday.Holiday{nonWorkingHoliday("2024-06-12")},
		)
		row := gen.Generate(in).Days[0]
		assert.Equal(t, timesheet.DayTypeNonWorkingHoliday, row.DayType)
		assert.Equal(t, 8.0, row.RegularHours)
	})

	t.Run("short day before holiday", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-11", 7.5, 0, 0)},
			day("2024-06-12"), day("2024-06-12"),
			[]holiday.Holiday{regularHoliday("2024-06-12")},
		)
		assert.Zero(t, gen.Generate(in).Days[0].RegularHours)
	})

	t.Run("skips over preceding holidays within a week", func(t *testing.T) {
		// Monday 06-10 worked; 06-11..06-13 are holidays; 06-14 is the fourth holiday in a row.
		holidays := []holiday.Holiday{
			regularHoliday("2024-06-11"),
			regularHoliday("2024-06-12"),
			nonWorkingHoliday("2024-06-13"),
			regularHoliday("2024-06-14"),
		}
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-10", 8, 0, 0)},
			day("2024-06-10"), day("2024-06-14"), holidays,
		)
		ts := gen.Generate(in)
		for _, d := range []string{"2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14"} {
			assert.Equal(t, 8.0, rowFor(t, ts, d).RegularHours, d)
		}
	})

	t.Run("no regular day within seven days", func(t *testing.T) {
		// Monday 06-03 worked; every day from 06-04 to 06-11 is a holiday.
		var holidays []holiday.Holiday
		for d := day("2024-06-04"); !d.After(day("2024-06-11")); d = d.AddDate(0, 0, 1) {
			holidays = append(holidays, regularHoliday(d.Format(timesheet.DateLayout)))
		}
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-03", 8, 0, 0)},
			day("2024-06-10"), day("2024-06-11"), holidays,
		)
		ts := gen.Generate(in)

		assert.Equal(t, 8.0, rowFor(t, ts, "2024-06-10").RegularHours, "06-03 is exactly seven days back")
		assert.Zero(t, rowFor(t, ts, "2024-06-11").RegularHours, "06-03 is eight days back")
	})

	t.Run("worked holiday keeps actual hours", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-11", 8, 0, 0), approved("2024-06-12", 5, 0, 0)},
			day("2024-06-12"), day("2024-06-12"),
			[]holiday.Holiday{regularHoliday("2024-06-12")},
		)
		row := gen.Generate(in).Days[0]
		assert.Equal(t, 5.0, row.RegularHours)
		assert.False(t, row.IsSeeded())
	})

	t.Run("holiday on rest day is not seeded", func(t *testing.T) {
		in := timesheet.NewGenerateInput(
			[]timesheet.ClockEntry{approved("2024-06-14", 8, 0, 0)},
			day("2024-06-16"), day("2024-06-16"),
			[]holiday.Holiday{regularHoliday("2024-06-16")},
		)
		row := gen.Generate(in).Days[0]
		assert.Equal(t, timesheet.DayTypeRestDayRegularHoliday, row.DayType)
		assert.Zero(t, row.RegularHours)
	})
}

func TestGenerator_SpecialRestDayPolicy(t *testing.T) {
	gen := NewGenerator(manila)

	// Wednesday and Thursday are the scheduled rest days for the week of 2024-06-03.
	restDays := map[string]bool{
		"2024-06-03": false, "2024-06-04": false, "2024-06-05": true, "2024-06-06": true,
		"2024-06-07": false, "2024-06-08": false, "2024-06-09": false,
	}

	build := func(entries []timesheet.ClockEntry, policy bool) timesheet.Timesheet {
		in := timesheet.NewGenerateInput(entries, day("2024-06-03"), day("2024-06-09"), nil)
		in.RestDays = restDays
		in.SpecialRestDayPolicy = policy
		return gen.Generate(in)
	}

	t.Run("first rest day is paid, second only if worked", func(t *testing.T) {
		ts := build(nil, true)

		wed := rowFor(t, ts, "2024-06-05")
		assert.Equal(t, timesheet.DayTypeRestDay, wed.DayType)
		assert.Equal(t, 8.0, wed.RegularHours)
		assert.Equal(t, timesheet.SeedFirstRestDay, wed.SeedReason)

		thu := rowFor(t, ts, "2024-06-06")
		assert.Equal(t, timesheet.DayTypeRestDay, thu.DayType)
		assert.Zero(t, thu.RegularHours)

		sun := rowFor(t, ts, "2024-06-09")
		assert.Equal(t, timesheet.DayTypeRegular, sun.DayType)
		assert.Zero(t, sun.RegularHours)
	})

	t.Run("worked first rest day is not topped up", func(t *testing.T) {
		ts := build([]timesheet.ClockEntry{approved("2024-06-05", 4, 0, 0)}, true)

		assert.Equal(t, 4.0, rowFor(t, ts, "2024-06-05").RegularHours)
		assert.Zero(t, rowFor(t, ts, "2024-06-06").RegularHours)
	})

	t.Run("default policy never seeds rest days", func(t *testing.T) {
		ts := build(nil, false)

		assert.Zero(t, rowFor(t, ts, "2024-06-05").RegularHours)
		assert.Zero(t, rowFor(t, ts, "2024-06-06").RegularHours)
		assert.Equal(t, 8.0, rowFor(t, ts, "2024-06-08").RegularHours)
	})
}

func TestGenerator_Validate(t *testing.T) {
	gen := NewGenerator(manila)
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	period := timesheet.Period{Start: day("2024-06-03"), End: day("2024-06-09")}

	t.Run("reports missing and incomplete days", func(t *testing.T) {
		open := approved("2024-06-05", 8, 0, 0)
		open.ClockOut = nil
		entries := []timesheet.ClockEntry{
			approved("2024-06-03", 8, 0, 0),
			entry("2024-06-04", 8, 0, 0, timesheet.ClockEntryStatusPending),
			open,
			approved("2024-06-07", 8, 0, 0),
		}
		result := gen.Validate(entries, period, weekdays)

		assert.False(t, result.IsValid)
		assert.Equal(t, []time.Time{day("2024-06-06")}, result.MissingDays)
		assert.Equal(t, []time.Time{day("2024-06-04"), day("2024-06-05")}, result.IncompleteEntries)
	})

	t.Run("complete week", func(t *testing.T) {
		var entries []timesheet.ClockEntry
		for d := day("2024-06-03"); !d.After(day("2024-06-07")); d = d.AddDate(0, 0, 1) {
			entries = append(entries, approved(d.Format(timesheet.DateLayout), 8, 0, 0))
		}
		result := gen.Validate(entries, period, weekdays)

		assert.True(t, result.IsValid)
		assert.Empty(t, result.MissingDays)
		assert.Empty(t, result.IncompleteEntries)
	})

	t.Run("weekends are not expected", func(t *testing.T) {
		result := gen.Validate(nil, timesheet.Period{Start: day("2024-06-08"), End: day("2024-06-09")}, weekdays)
		assert.True(t, result.IsValid)
	})
}
