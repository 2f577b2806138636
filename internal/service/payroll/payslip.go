package payroll

import (
	"fmt"

	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// PayslipBuilder turns attendance and caller deductions into a payslip.
type PayslipBuilder struct {
	deductions *DeductionCalculator
}

func NewPayslipBuilder(deductions *DeductionCalculator) *PayslipBuilder {
	return &PayslipBuilder{deductions: deductions}
}

// Build computes earnings, semi-monthly statutory deductions, withholding tax
// on gross less those contributions, and net pay. The period must be one half
// month: the 1st to the 15th, or the 16th to the month end.
func (b *PayslipBuilder) Build(in payroll.PayslipInput) (payroll.Payslip, error) {
	period := timesheet.Period{Start: in.PeriodStart, End: in.PeriodEnd}
	if !period.IsHalfMonth() {
		return payroll.Payslip{}, fmt.Errorf("%w: %s", payroll.ErrUnsupportedPayPeriod, period.String())
	}

	earnings := Aggregate(in.Employee, in.Attendance)
	contributions := b.deductions.Contributions(in.Employee.DailyRate())

	ded := payroll.Deductions{
		SSS:        contributions.BiMonthly.SSS,
		PhilHealth: contributions.BiMonthly.PhilHealth,
		PagIBIG:    contributions.BiMonthly.PagIBIG,
		Other:      make([]payroll.DeductionLine, 0, len(in.OtherDeductions)),
	}
	mandatory := ded.SSS.Add(ded.PhilHealth).Add(ded.PagIBIG)
	ded.TaxableIncome = roundMoney(nonNegative(earnings.TotalGrossPay.Sub(mandatory)))
	ded.WithholdingTax = b.deductions.PeriodWithholdingTax(ded.TaxableIncome)

	other := decimal.Zero
	for _, line := range in.OtherDeductions {
		line.Amount = roundMoney(nonNegative(line.Amount))
		if line.Amount.IsZero() {
			continue
		}
		ded.Other = append(ded.Other, line)
		other = other.Add(line.Amount)
	}
	ded.Total = mandatory.Add(ded.WithholdingTax).Add(other)

	return payroll.Payslip{
		Employee:      in.Employee,
		PeriodStart:   in.PeriodStart,
		PeriodEnd:     in.PeriodEnd,
		Earnings:      earnings,
		Contributions: contributions,
		Deductions:    ded,
		Adjustment:    in.Adjustment,
		NetPay:        roundMoney(earnings.TotalGrossPay.Add(in.Adjustment).Sub(ded.Total)),
		AbsentDays:    absentDays(in.Attendance),
	}, nil
}
