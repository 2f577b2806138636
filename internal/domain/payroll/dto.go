package payroll

import (
	"strconv"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

// AttendanceDayRequest is one generated timesheet row, as returned by the timesheet endpoints.
type AttendanceDayRequest struct {
	Date           string  `json:"date"`
	DayType        string  `json:"day_type"`
	RegularHours   float64 `json:"regular_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	NightDiffHours float64 `json:"night_diff_hours"`
	SeedReason     string  `json:"seed_reason,omitempty"`
}

type DeductionLineRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type PayslipRequest struct {
	Employee        employee.PayProfileRequest `json:"employee"`
	PeriodStart     string                     `json:"period_start"`
	PeriodEnd       string                     `json:"period_end"`
	Days            []AttendanceDayRequest     `json:"days"`
	OtherDeductions []DeductionLineRequest     `json:"other_deductions,omitempty"`
	Adjustment      decimal.Decimal            `json:"adjustment"`
}

// ToInput validates the request and converts it to payslip input. Dates are read in loc.
func (r *PayslipRequest) ToInput(loc *time.Location) (PayslipInput, error) {
	var errs validator.ValidationErrors

	if err := r.Employee.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	start, end, rangeErrs := validator.ValidateDateRange(r.PeriodStart, r.PeriodEnd)
	errs = append(errs, validator.PrefixFields("period_", rangeErrs)...)

	attendance := make([]timesheet.DailyAttendance, 0, len(r.Days))
	for i, d := range r.Days {
		date, ok := validator.IsValidDate(d.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("days", i, "date"), Message: "must be in YYYY-MM-DD format"})
		}
		dayType := timesheet.DayType(d.DayType)
		if !dayType.IsValid() {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("days", i, "day_type"), Message: "is not a known day type"})
		}
		if d.RegularHours < 0 || d.OvertimeHours < 0 || d.NightDiffHours < 0 {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("days", i, "hours"), Message: "must be non-negative"})
		}
		attendance = append(attendance, timesheet.DailyAttendance{
			Date:           timesheet.CalendarDate(date, loc),
			DayType:        dayType,
			RegularHours:   d.RegularHours,
			OvertimeHours:  d.OvertimeHours,
			NightDiffHours: d.NightDiffHours,
			SeedReason:     timesheet.SeedReason(d.SeedReason),
		})
	}

	other := make([]DeductionLine, 0, len(r.OtherDeductions))
	for i, d := range r.OtherDeductions {
		if validator.IsEmpty(d.Name) {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("other_deductions", i, "name"), Message: "is required"})
		}
		if d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("other_deductions", i, "amount"), Message: "must be non-negative"})
		}
		other = append(other, DeductionLine{Name: d.Name, Amount: d.Amount})
	}

	if len(errs) > 0 {
		return PayslipInput{}, errs
	}

	emp := r.Employee.ToEmployee()
	for i := range attendance {
		attendance[i].EmployeeID = emp.ID
	}
	return PayslipInput{
		Employee:        emp,
		PeriodStart:     timesheet.CalendarDate(start, loc),
		PeriodEnd:       timesheet.CalendarDate(end, loc),
		Attendance:      attendance,
		OtherDeductions: other,
		Adjustment:      r.Adjustment,
	}, nil
}

// ContributionsQuery holds the raw daily_rate and working_days query parameters.
type ContributionsQuery struct {
	DailyRate   string
	WorkingDays string
}

// Parse returns the daily rate and working days; working days is 0 when omitted.
func (q ContributionsQuery) Parse() (decimal.Decimal, int, error) {
	var errs validator.ValidationErrors

	rate, err := decimal.NewFromString(q.DailyRate)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be a number"})
	} else if rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be non-negative"})
	}

	days := 0
	if q.WorkingDays != "" {
		days, err = strconv.Atoi(q.WorkingDays)
		if err != nil || days < 1 || days > 31 {
			errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be a whole number from 1 to 31"})
		}
	}

	if len(errs) > 0 {
		return decimal.Zero, 0, errs
	}
	return rate, days, nil
}

// ParseTaxableIncome validates the taxable_income query parameter.
func ParseTaxableIncome(s string) (decimal.Decimal, error) {
	income, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, validator.ValidationErrors{{Field: "taxable_income", Message: "must be a number"}}
	}
	if income.IsNegative() {
		return decimal.Zero, validator.ValidationErrors{{Field: "taxable_income", Message: "must be non-negative"}}
	}
	return income, nil
}

// ========== RESPONSE DTOs ==========

type EarningLineResponse struct {
	No        int             `json:"no"`
	Component Component       `json:"component"`
	Label     string          `json:"label"`
	Hours     float64         `json:"hours"`
	Amount    decimal.Decimal `json:"amount"`
}

type EarningsResponse struct {
	Lines         []EarningLineResponse `json:"lines"`
	DaysWorked    int                   `json:"days_worked"`
	HoursWorked   float64               `json:"hours_worked"`
	BasicSalary   decimal.Decimal       `json:"basic_salary"`
	TotalGrossPay decimal.Decimal       `json:"total_gross_pay"`
}

func NewEarningsResponse(e Earnings) EarningsResponse {
	lines := make([]EarningLineResponse, 0, len(Components))
	for i, l := range e.OrderedLines() {
		lines = append(lines, EarningLineResponse{
			No:        i + 1,
			Component: l.Component,
			Label:     l.Component.Label(),
			Hours:     l.Hours,
			Amount:    l.Amount.Round(2),
		})
	}
	return EarningsResponse{
		Lines:         lines,
		DaysWorked:    e.DaysWorked,
		HoursWorked:   e.HoursWorked,
		BasicSalary:   e.BasicSalary.Round(2),
		TotalGrossPay: e.TotalGrossPay.Round(2),
	}
}

type ContributionResponse struct {
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	Total         decimal.Decimal `json:"total"`
}

func newContributionResponse(c Contribution) ContributionResponse {
	return ContributionResponse{EmployeeShare: c.EmployeeShare, EmployerShare: c.EmployerShare, Total: c.Total}
}

type SSSContributionResponse struct {
	ContributionResponse
	MonthlySalaryCredit decimal.Decimal `json:"monthly_salary_credit"`
}

type BiMonthlySharesResponse struct {
	SSS        decimal.Decimal `json:"sss"`
	PhilHealth decimal.Decimal `json:"philhealth"`
	PagIBIG    decimal.Decimal `json:"pagibig"`
	Total      decimal.Decimal `json:"total"`
}

type ContributionsResponse struct {
	MonthlySalary decimal.Decimal         `json:"monthly_salary"`
	SSS           SSSContributionResponse `json:"sss"`
	PhilHealth    ContributionResponse    `json:"philhealth"`
	PagIBIG       ContributionResponse    `json:"pagibig"`
	BiMonthly     BiMonthlySharesResponse `json:"bi_monthly"`
}

func NewContributionsResponse(c Contributions) ContributionsResponse {
	return ContributionsResponse{
		MonthlySalary: c.MonthlySalary.Round(2),
		SSS: SSSContributionResponse{
			ContributionResponse: newContributionResponse(c.SSS.Contribution),
			MonthlySalaryCredit:  c.SSS.MonthlySalaryCredit,
		},
		PhilHealth: newContributionResponse(c.PhilHealth),
		PagIBIG:    newContributionResponse(c.PagIBIG),
		BiMonthly: BiMonthlySharesResponse{
			SSS:        c.BiMonthly.SSS,
			PhilHealth: c.BiMonthly.PhilHealth,
			PagIBIG:    c.BiMonthly.PagIBIG,
			Total:      c.BiMonthly.Total,
		},
	}
}

type WithholdingTaxResponse struct {
	TaxableIncome  decimal.Decimal `json:"taxable_income"`
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
}

type DeductionLineResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type DeductionsResponse struct {
	SSS            decimal.Decimal         `json:"sss"`
	PhilHealth     decimal.Decimal         `json:"philhealth"`
	PagIBIG        decimal.Decimal         `json:"pagibig"`
	TaxableIncome  decimal.Decimal         `json:"taxable_income"`
	WithholdingTax decimal.Decimal         `json:"withholding_tax"`
	Other          []DeductionLineResponse `json:"other"`
	Total          decimal.Decimal         `json:"total"`
}

type PayslipResponse struct {
	Employee      employee.EmployeeSummary `json:"employee"`
	PeriodStart   string                   `json:"period_start"`
	PeriodEnd     string                   `json:"period_end"`
	Earnings      EarningsResponse         `json:"earnings"`
	Deductions    DeductionsResponse       `json:"deductions"`
	Contributions ContributionsResponse    `json:"contributions"`
	Adjustment    decimal.Decimal          `json:"adjustment"`
	NetPay        decimal.Decimal          `json:"net_pay"`
	AbsentDays    int                      `json:"absent_days"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	other := make([]DeductionLineResponse, 0, len(p.Deductions.Other))
	for _, d := range p.Deductions.Other {
		other = append(other, DeductionLineResponse{Name: d.Name, Amount: d.Amount})
	}
	return PayslipResponse{
		Employee:    employee.NewEmployeeSummary(p.Employee),
		PeriodStart: p.PeriodStart.Format(timesheet.DateLayout),
		PeriodEnd:   p.PeriodEnd.Format(timesheet.DateLayout),
		Earnings:    NewEarningsResponse(p.Earnings),
		Deductions: DeductionsResponse{
			SSS:            p.Deductions.SSS,
			PhilHealth:     p.Deductions.PhilHealth,
			PagIBIG:        p.Deductions.PagIBIG,
			TaxableIncome:  p.Deductions.TaxableIncome,
			WithholdingTax: p.Deductions.WithholdingTax,
			Other:          other,
			Total:          p.Deductions.Total,
		},
		Contributions: NewContributionsResponse(p.Contributions),
		Adjustment:    p.Adjustment,
		NetPay:        p.NetPay,
		AbsentDays:    p.AbsentDays,
	}
}

type PayrollRunResponse struct {
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	Payslips    []PayslipResponse `json:"payslips"`
	TotalNetPay decimal.Decimal   `json:"total_net_pay"`
}
