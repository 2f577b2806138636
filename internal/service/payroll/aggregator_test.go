package payroll

import (
	"testing"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var manila = time.FixedZone("PHT", 8*60*60)

func day(s string) time.Time {
	t, err := time.ParseInLocation(timesheet.DateLayout, s, manila)
	if err != nil {
		panic(err)
	}
	return t
}

func worker(position string, ratePerDay string) employee.Employee {
	rate := decimal.RequireFromString(ratePerDay)
	return employee.Employee{
		ID:                "emp-1",
		FullName:          "Juan Dela Cruz",
		Position:          &position,
		RatePerDay:        &rate,
		OvertimeEligible:  true,
		NightDiffEligible: true,
		EmploymentStatus:  employee.EmploymentStatusActive,
	}
}

func row(date string, dayType timesheet.DayType, regular, overtime, nightDiff float64) timesheet.DailyAttendance {
	return timesheet.DailyAttendance{
		EmployeeID:     "emp-1",
		Date:           day(date),
		DayType:        dayType,
		RegularHours:   regular,
		OvertimeHours:  overtime,
		NightDiffHours: nightDiff,
	}
}

func TestAggregate_RegularDayWithOvertimeAndNightDiff(t *testing.T) {
	earnings := Aggregate(worker("Security Guard", "800"), []timesheet.DailyAttendance{
		row("2024-06-03", timesheet.DayTypeRegular, 8, 2, 1),
	})

	assertPeso(t, "800.00", earnings.Line(payroll.ComponentBasic).Amount)
	assertPeso(t, "250.00", earnings.Line(payroll.ComponentRegularOvertime).Amount)
	assertPeso(t, "10.00", earnings.Line(payroll.ComponentNightDifferential).Amount)
	assertPeso(t, "10.00", earnings.Line(payroll.ComponentRegularNightDiffOvertime).Amount)
	assert.Equal(t, 1.0, earnings.Line(payroll.ComponentRegularNightDiffOvertime).Hours)
	assertPeso(t, "800.00", earnings.BasicSalary)
	assertPeso(t, "1070.00", earnings.TotalGrossPay)
	assert.Equal(t, 1, earnings.DaysWorked)
	assert.Equal(t, 10.0, earnings.HoursWorked)
}

func TestAggregate_AccountSupervisorHasNoNightDiff(t *testing.T) {
	earnings := Aggregate(worker("Account Supervisor", "800"), []timesheet.DailyAttendance{
		row("2024-06-03", timesheet.DayTypeRegular, 8, 2, 1),
		row("2024-06-09", timesheet.DayTypeRestDay, 8, 0, 3),
	})

	for _, line := range earnings.OrderedLines() {
		if line.Component.IsNightDiff() {
			assert.True(t, line.Amount.IsZero(), "%s should be empty", line.Component)
			assert.Zero(t, line.Hours)
		}
	}
	assertPeso(t, "1290.00", earnings.TotalGrossPay)
}

func TestAggregate_RestDays(t *testing.T) {
	rows := []timesheet.DailyAttendance{
		row("2024-06-02", timesheet.DayTypeRestDay, 8, 0, 0),
	}

	t.Run("standard policy pays the rest day premium", func(t *testing.T) {
		earnings := Aggregate(worker("Security Guard", "800"), rows)
		assertPeso(t, "240.00", earnings.Line(payroll.ComponentRestDay).Amount)
		assert.True(t, earnings.Line(payroll.ComponentWorkingDayOff).Amount.IsZero())
		assert.Equal(t, 1, earnings.DaysWorked)
	})

	t.Run("special policy pays worked rest days as working day off", func(t *testing.T) {
		emp := worker("Security Guard", "800")
		emp.SpecialRestDayPolicy = true

		earnings := Aggregate(emp, rows)
		assertPeso(t, "1040.00", earnings.Line(payroll.ComponentWorkingDayOff).Amount)
		assert.True(t, earnings.Line(payroll.ComponentRestDay).Amount.IsZero())
	})

	t.Run("special policy keeps seeded rest days in the rest day bucket", func(t *testing.T) {
		emp := worker("Security Guard", "800")
		emp.SpecialRestDayPolicy = true
		seeded := row("2024-06-02", timesheet.DayTypeRestDay, 8, 0, 0)
		seeded.SeedReason = timesheet.SeedFirstRestDay

		earnings := Aggregate(emp, []timesheet.DailyAttendance{seeded})
		assertPeso(t, "240.00", earnings.Line(payroll.ComponentRestDay).Amount)
		assert.True(t, earnings.Line(payroll.ComponentWorkingDayOff).Amount.IsZero())
	})
}

func TestAggregate_Holidays(t *testing.T) {
	earnings := Aggregate(worker("Security Guard", "800"), []timesheet.DailyAttendance{
		row("2024-06-12", timesheet.DayTypeRegularHoliday, 8, 1, 0),
		row("2024-08-21", timesheet.DayTypeNonWorkingHoliday, 8, 0, 0),
		row("2024-12-29", timesheet.DayTypeRestDayRegularHoliday, 8, 0, 0),
		row("2024-11-01", timesheet.DayTypeRestDayNonWorkingHoliday, 8, 0, 0),
	})

	assertPeso(t, "2080.00", earnings.Line(payroll.ComponentLegalHoliday).Amount)
	assert.Equal(t, 16.0, earnings.Line(payroll.ComponentLegalHoliday).Hours)
	assertPeso(t, "260.00", earnings.Line(payroll.ComponentLegalHolidayOvertime).Amount)
	assertPeso(t, "640.00", earnings.Line(payroll.ComponentSpecialHoliday).Amount)
	assert.True(t, earnings.BasicSalary.IsZero())
	// Plain holidays are paid without counting as days worked.
	assert.Equal(t, 2, earnings.DaysWorked)
}

func TestAggregate_EdgeCases(t *testing.T) {
	t.Run("empty attendance", func(t *testing.T) {
		earnings := Aggregate(worker("Security Guard", "800"), nil)
		assert.True(t, earnings.TotalGrossPay.IsZero())
		assert.Len(t, earnings.OrderedLines(), len(payroll.Components))
	})

	t.Run("unknown day type is ignored", func(t *testing.T) {
		earnings := Aggregate(worker("Security Guard", "800"), []timesheet.DailyAttendance{
			row("2024-06-03", timesheet.DayType("payday"), 8, 0, 0),
		})
		assert.True(t, earnings.TotalGrossPay.IsZero())
		assert.Zero(t, earnings.DaysWorked)
	})

	t.Run("partial day is not a day worked", func(t *testing.T) {
		earnings := Aggregate(worker("Security Guard", "800"), []timesheet.DailyAttendance{
			row("2024-06-03", timesheet.DayTypeRegular, 7.5, 0, 0),
		})
		assertPeso(t, "750.00", earnings.BasicSalary)
		assert.Zero(t, earnings.DaysWorked)
	})

	t.Run("hourly rate wins over daily rate", func(t *testing.T) {
		emp := worker("Security Guard", "800")
		hourly := decimal.RequireFromString("120")
		emp.RatePerHour = &hourly

		earnings := Aggregate(emp, []timesheet.DailyAttendance{
			row("2024-06-03", timesheet.DayTypeRegular, 8, 0, 0),
		})
		assertPeso(t, "960.00", earnings.BasicSalary)
	})
}

func TestAggregate_GrossIsSumOfLines(t *testing.T) {
	earnings := Aggregate(worker("Security Guard", "650"), []timesheet.DailyAttendance{
		row("2024-06-03", timesheet.DayTypeRegular, 8, 3, 2),
		row("2024-06-04", timesheet.DayTypeRegular, 8, 0, 4),
		row("2024-06-09", timesheet.DayTypeRestDay, 8, 2, 2),
		row("2024-06-12", timesheet.DayTypeRegularHoliday, 8, 2, 2),
	})

	sum := decimal.Zero
	for _, line := range earnings.OrderedLines() {
		sum = sum.Add(line.Amount)
	}
	assert.True(t, sum.Equal(earnings.TotalGrossPay))
}
