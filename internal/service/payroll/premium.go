package payroll

import (
	"math"
	"strings"

	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

type premiumKey struct {
	dayType timesheet.DayType
	kind    payroll.HourKind
}

func rate(c payroll.Component, multiplier string, additive bool) payroll.Rate {
	return payroll.Rate{Component: c, Multiplier: decimal.RequireFromString(multiplier), Additive: additive}
}

// premiumTable maps each day type and kind of hour to the bucket it is paid into.
// Regular hours on a rest day that is also a holiday pay 150% (non-working) or
// 260% (regular holiday) of the day; the 0.50 and 1.60 premiums sit on top of base pay.
var premiumTable = map[premiumKey]payroll.Rate{
	{timesheet.DayTypeRegular, payroll.HourKindRegular}:   rate(payroll.ComponentBasic, "1.00", false),
	{timesheet.DayTypeRegular, payroll.HourKindOvertime}:  rate(payroll.ComponentRegularOvertime, "1.25", false),
	{timesheet.DayTypeRegular, payroll.HourKindNightDiff}: rate(payroll.ComponentNightDifferential, "0.10", true),

	{timesheet.DayTypeRegularHoliday, payroll.HourKindRegular}:   rate(payroll.ComponentLegalHoliday, "1.00", true),
	{timesheet.DayTypeRegularHoliday, payroll.HourKindOvertime}:  rate(payroll.ComponentLegalHolidayOvertime, "2.60", false),
	{timesheet.DayTypeRegularHoliday, payroll.HourKindNightDiff}: rate(payroll.ComponentLegalHolidayNightDiff, "0.10", true),

	{timesheet.DayTypeNonWorkingHoliday, payroll.HourKindRegular}:   rate(payroll.ComponentSpecialHoliday, "0.30", true),
	{timesheet.DayTypeNonWorkingHoliday, payroll.HourKindOvertime}:  rate(payroll.ComponentSpecialHolidayOvertime, "1.69", false),
	{timesheet.DayTypeNonWorkingHoliday, payroll.HourKindNightDiff}: rate(payroll.ComponentSpecialHolidayNightDiff, "0.10", true),

	{timesheet.DayTypeRestDay, payroll.HourKindRegular}:   rate(payroll.ComponentRestDay, "0.30", true),
	{timesheet.DayTypeRestDay, payroll.HourKindOvertime}:  rate(payroll.ComponentRestDayOvertime, "1.69", false),
	{timesheet.DayTypeRestDay, payroll.HourKindNightDiff}: rate(payroll.ComponentRestDayNightDiff, "0.10", true),

	{timesheet.DayTypeRestDayNonWorkingHoliday, payroll.HourKindRegular}:   rate(payroll.ComponentSpecialHoliday, "0.50", true),
	{timesheet.DayTypeRestDayNonWorkingHoliday, payroll.HourKindOvertime}:  rate(payroll.ComponentSpecialHolidayRestDayOvertime, "1.95", false),
	{timesheet.DayTypeRestDayNonWorkingHoliday, payroll.HourKindNightDiff}: rate(payroll.ComponentSpecialHolidayNightDiff, "0.10", true),

	{timesheet.DayTypeRestDayRegularHoliday, payroll.HourKindRegular}:   rate(payroll.ComponentLegalHoliday, "1.60", true),
	{timesheet.DayTypeRestDayRegularHoliday, payroll.HourKindOvertime}:  rate(payroll.ComponentLegalHolidayRestDayOvertime, "3.38", false),
	{timesheet.DayTypeRestDayRegularHoliday, payroll.HourKindNightDiff}: rate(payroll.ComponentLegalHolidayNightDiff, "0.10", true),
}

var (
	// workingDayOffRate pays an unscheduled-work rest day in full, with no base pay elsewhere.
	workingDayOffRate = rate(payroll.ComponentWorkingDayOff, "1.30", false)
	// regularNightDiffOvertimeRate applies to overtime hours that were also night hours.
	regularNightDiffOvertimeRate = rate(payroll.ComponentRegularNightDiffOvertime, "0.10", true)
)

// nightDiffExemptPosition is matched case-insensitively anywhere in the position title.
const nightDiffExemptPosition = "ACCOUNT SUPERVISOR"

// LookupRate returns the rate for hours of kind worked on a day of dayType.
func LookupRate(dayType timesheet.DayType, kind payroll.HourKind) (payroll.Rate, bool) {
	r, ok := premiumTable[premiumKey{dayType, kind}]
	return r, ok
}

// Premium is hours x hourlyRate x multiplier for the table entry. Unknown
// combinations, zero hours and negative inputs pay nothing.
func Premium(dayType timesheet.DayType, kind payroll.HourKind, hours float64, hourlyRate decimal.Decimal) decimal.Decimal {
	r, ok := LookupRate(dayType, kind)
	if !ok {
		return decimal.Zero
	}
	return amount(hours, hourlyRate, r.Multiplier)
}

func amount(hours float64, hourlyRate, multiplier decimal.Decimal) decimal.Decimal {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 || !hourlyRate.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(hours).Mul(hourlyRate).Mul(multiplier)
}

// IsNightDiffExempt reports whether the position is excluded from every
// night-differential bucket.
func IsNightDiffExempt(position string) bool {
	return strings.Contains(strings.ToUpper(position), nightDiffExemptPosition)
}
