package payroll

import (
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// HourKind enum
type HourKind string

const (
	HourKindRegular   HourKind = "regular"
	HourKindOvertime  HourKind = "overtime"
	HourKindNightDiff HourKind = "night_diff"
)

// Component enum - one earnings bucket on the payslip
type Component string

const (
	ComponentBasic                         Component = "basic"
	ComponentRegularOvertime               Component = "regular_overtime"
	ComponentNightDifferential             Component = "night_differential"
	ComponentLegalHoliday                  Component = "legal_holiday"
	ComponentLegalHolidayOvertime          Component = "legal_holiday_overtime"
	ComponentLegalHolidayNightDiff         Component = "legal_holiday_night_diff"
	ComponentSpecialHoliday                Component = "special_holiday"
	ComponentSpecialHolidayOvertime        Component = "special_holiday_overtime"
	ComponentSpecialHolidayNightDiff       Component = "special_holiday_night_diff"
	ComponentSpecialHolidayRestDayOvertime Component = "special_holiday_rest_day_overtime"
	ComponentLegalHolidayRestDayOvertime   Component = "legal_holiday_rest_day_overtime"
	ComponentRestDay                       Component = "rest_day"
	ComponentRestDayOvertime               Component = "rest_day_overtime"
	ComponentRestDayNightDiff              Component = "rest_day_night_diff"
	ComponentWorkingDayOff                 Component = "working_day_off"
	ComponentRegularNightDiffOvertime      Component = "regular_night_diff_overtime"
)

// Components lists every earnings bucket in payslip order.
var Components = []Component{
	ComponentBasic,
	ComponentRegularOvertime,
	ComponentNightDifferential,
	ComponentLegalHoliday,
	ComponentLegalHolidayOvertime,
	ComponentLegalHolidayNightDiff,
	ComponentSpecialHoliday,
	ComponentSpecialHolidayOvertime,
	ComponentSpecialHolidayNightDiff,
	ComponentSpecialHolidayRestDayOvertime,
	ComponentLegalHolidayRestDayOvertime,
	ComponentRestDay,
	ComponentRestDayOvertime,
	ComponentRestDayNightDiff,
	ComponentWorkingDayOff,
	ComponentRegularNightDiffOvertime,
}

var componentLabels = map[Component]string{
	ComponentBasic:                         "Hours Work",
	ComponentRegularOvertime:               "Regular Overtime",
	ComponentNightDifferential:             "Night Differential",
	ComponentLegalHoliday:                  "Legal Holiday",
	ComponentLegalHolidayOvertime:          "Legal Holiday OT",
	ComponentLegalHolidayNightDiff:         "Legal Holiday ND",
	ComponentSpecialHoliday:                "Special Holiday",
	ComponentSpecialHolidayOvertime:        "Special Holiday OT",
	ComponentSpecialHolidayNightDiff:       "Special Holiday ND",
	ComponentSpecialHolidayRestDayOvertime: "Special Holiday on Rest Day OT",
	ComponentLegalHolidayRestDayOvertime:   "Legal Holiday on Rest Day OT",
	ComponentRestDay:                       "Rest Day",
	ComponentRestDayOvertime:               "Rest Day OT",
	ComponentRestDayNightDiff:              "Rest Day ND",
	ComponentWorkingDayOff:                 "Working Day Off",
	ComponentRegularNightDiffOvertime:      "Regular Night Differential OT",
}

// Label is the printed payslip caption.
func (c Component) Label() string {
	if l, ok := componentLabels[c]; ok {
		return l
	}
	return string(c)
}

// IsNightDiff reports whether the bucket is derived from night-differential hours.
func (c Component) IsNightDiff() bool {
	switch c {
	case ComponentNightDifferential, ComponentLegalHolidayNightDiff, ComponentSpecialHolidayNightDiff,
		ComponentRestDayNightDiff, ComponentRegularNightDiffOvertime:
		return true
	}
	return false
}

// Rate - multiplier applied to hours x hourly rate. Additive rates are premiums
// on top of base pay accounted for elsewhere; the others are the full pay.
type Rate struct {
	Component  Component
	Multiplier decimal.Decimal
	Additive   bool
}

// Line - one earnings bucket
type Line struct {
	Component Component
	Hours     float64
	Amount    decimal.Decimal
}

// Earnings - aggregated pay for a period
type Earnings struct {
	Lines         map[Component]Line
	DaysWorked    int
	HoursWorked   float64
	BasicSalary   decimal.Decimal
	TotalGrossPay decimal.Decimal
}

// Line returns the bucket, zero valued when nothing was credited to it.
func (e Earnings) Line(c Component) Line {
	if l, ok := e.Lines[c]; ok {
		return l
	}
	return Line{Component: c, Amount: decimal.Zero}
}

// OrderedLines returns all 16 buckets in payslip order.
func (e Earnings) OrderedLines() []Line {
	lines := make([]Line, 0, len(Components))
	for _, c := range Components {
		lines = append(lines, e.Line(c))
	}
	return lines
}

// Contribution - one statutory contribution split between employee and employer
type Contribution struct {
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	Total         decimal.Decimal
}

// SSSContribution carries the monthly salary credit used for the lookup.
type SSSContribution struct {
	Contribution
	MonthlySalaryCredit decimal.Decimal
}

// BiMonthlyShares - employee shares deducted per semi-monthly payroll
type BiMonthlyShares struct {
	SSS        decimal.Decimal
	PhilHealth decimal.Decimal
	PagIBIG    decimal.Decimal
	Total      decimal.Decimal
}

// Contributions - all statutory contributions for a monthly salary
type Contributions struct {
	MonthlySalary decimal.Decimal
	SSS           SSSContribution
	PhilHealth    Contribution
	PagIBIG       Contribution
	BiMonthly     BiMonthlyShares
}

// WithholdingMode enum
type WithholdingMode string

const (
	// WithholdingDirect runs the period's taxable income through the monthly table.
	WithholdingDirect WithholdingMode = "direct"
	// WithholdingMonthlyEquivalent doubles the period income, applies the monthly table and halves the tax.
	WithholdingMonthlyEquivalent WithholdingMode = "monthly_equivalent"
)

func (m WithholdingMode) IsValid() bool {
	return m == WithholdingDirect || m == WithholdingMonthlyEquivalent
}

// DeductionLine - a named deduction supplied by the caller (loans, cash advances)
type DeductionLine struct {
	Name   string
	Amount decimal.Decimal
}

// Deductions - everything taken out of gross pay
type Deductions struct {
	SSS            decimal.Decimal
	PhilHealth     decimal.Decimal
	PagIBIG        decimal.Decimal
	WithholdingTax decimal.Decimal
	TaxableIncome  decimal.Decimal
	Other          []DeductionLine
	Total          decimal.Decimal
}

// PayslipInput - everything needed to build one payslip
type PayslipInput struct {
	Employee        employee.Employee
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Attendance      []timesheet.DailyAttendance
	OtherDeductions []DeductionLine
	Adjustment      decimal.Decimal
}

// Payslip - earnings, deductions and net pay for one employee and period
type Payslip struct {
	Employee      employee.Employee
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Earnings      Earnings
	Contributions Contributions
	Deductions    Deductions
	Adjustment    decimal.Decimal
	NetPay        decimal.Decimal
	AbsentDays    int
}
