package payroll

import (
	"context"

	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

type PayrollService interface {
	// Breakdown aggregates supplied attendance rows into earnings buckets
	Breakdown(ctx context.Context, req PayslipRequest) (EarningsResponse, error)

	// CreatePayslip builds a payslip from supplied employee data and attendance
	CreatePayslip(ctx context.Context, req PayslipRequest) (PayslipResponse, error)

	// BuildForEmployee generates the stored employee's timesheet and builds the payslip
	BuildForEmployee(ctx context.Context, employeeID string, period timesheet.Period) (Payslip, error)

	// RunPayroll builds payslips for every active employee
	RunPayroll(ctx context.Context, period timesheet.Period) (PayrollRunResponse, error)

	// PayslipPDF renders the employee's payslip as a PDF document
	PayslipPDF(ctx context.Context, employeeID string, period timesheet.Period) ([]byte, error)

	// RegisterXLSX renders the payroll register for every active employee as a spreadsheet
	RegisterXLSX(ctx context.Context, period timesheet.Period) ([]byte, error)

	// Contributions computes monthly SSS, PhilHealth and Pag-IBIG for a daily rate
	Contributions(ctx context.Context, dailyRate decimal.Decimal, workingDaysPerMonth int) (ContributionsResponse, error)

	// WithholdingTax applies the monthly withholding table
	WithholdingTax(ctx context.Context, taxableIncome decimal.Decimal) (WithholdingTaxResponse, error)
}
