package payroll

import (
	"math"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// fullDayHours is the regular-hour threshold for counting a day as worked.
const fullDayHours = 8

// Aggregate folds generated daily attendance into the payslip earnings buckets.
// Both the JSON payslip and the printable payslip are built from its result.
//
// The working day off bucket (1.30) is only filled for employees on the
// special rest-day policy, for rest days they worked that were not seeded.
// Every other rest day is paid on the rest day line.
func Aggregate(emp employee.Employee, attendance []timesheet.DailyAttendance) payroll.Earnings {
	hourlyRate := emp.HourlyRate()
	exempt := IsNightDiffExempt(emp.PositionName())

	lines := make(map[payroll.Component]payroll.Line, len(payroll.Components))
	credit := func(r payroll.Rate, hours float64) {
		if hours <= 0 || (exempt && r.Component.IsNightDiff()) {
			return
		}
		l := lines[r.Component]
		l.Component = r.Component
		l.Hours += hours
		l.Amount = l.Amount.Add(amount(hours, hourlyRate, r.Multiplier))
		lines[r.Component] = l
	}

	earnings := payroll.Earnings{}
	for _, day := range attendance {
		regularRate, ok := LookupRate(day.DayType, payroll.HourKindRegular)
		if !ok {
			continue
		}
		// Under the special policy an unseeded rest day is only paid because it was worked.
		if day.DayType == timesheet.DayTypeRestDay && emp.SpecialRestDayPolicy && !day.IsSeeded() {
			regularRate = workingDayOffRate
		}
		overtimeRate, _ := LookupRate(day.DayType, payroll.HourKindOvertime)
		nightDiffRate, _ := LookupRate(day.DayType, payroll.HourKindNightDiff)

		credit(regularRate, day.RegularHours)
		credit(overtimeRate, day.OvertimeHours)
		credit(nightDiffRate, day.NightDiffHours)
		if day.DayType == timesheet.DayTypeRegular {
			credit(regularNightDiffOvertimeRate, math.Min(day.OvertimeHours, day.NightDiffHours))
		}

		earnings.HoursWorked += day.RegularHours + day.OvertimeHours
		if day.RegularHours >= fullDayHours && countsAsWorkedDay(day.DayType) {
			earnings.DaysWorked++
		}
	}

	earnings.Lines = lines
	earnings.BasicSalary = earnings.Line(payroll.ComponentBasic).Amount
	earnings.TotalGrossPay = decimal.Zero
	for _, c := range payroll.Components {
		earnings.TotalGrossPay = earnings.TotalGrossPay.Add(earnings.Line(c).Amount)
	}
	return earnings
}

// countsAsWorkedDay excludes plain holidays, which are paid whether or not worked.
func countsAsWorkedDay(t timesheet.DayType) bool {
	switch t {
	case timesheet.DayTypeRegular, timesheet.DayTypeRestDay,
		timesheet.DayTypeRestDayNonWorkingHoliday, timesheet.DayTypeRestDayRegularHoliday:
		return true
	}
	return false
}

// absentDays counts plain regular days with no regular hours credited.
func absentDays(attendance []timesheet.DailyAttendance) int {
	n := 0
	for _, day := range attendance {
		if day.DayType == timesheet.DayTypeRegular && day.RegularHours == 0 {
			n++
		}
	}
	return n
}
