package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// runConcurrency bounds concurrent employees in a payroll run.
const runConcurrency = 8

type PayrollServiceImpl struct {
	builder          *PayslipBuilder
	deductions       *DeductionCalculator
	timesheetService timesheet.TimesheetService
	employeeRepo     employee.EmployeeRepository
	loc              *time.Location
}

// NewPayrollService reads request dates in loc.
func NewPayrollService(
	deductions *DeductionCalculator,
	timesheetService timesheet.TimesheetService,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		builder:          NewPayslipBuilder(deductions),
		deductions:       deductions,
		timesheetService: timesheetService,
		employeeRepo:     employeeRepo,
		loc:              loc,
	}
}

// ========== REQUEST-SUPPLIED INPUTS ==========

func (s *PayrollServiceImpl) Breakdown(ctx context.Context, req payroll.PayslipRequest) (payroll.EarningsResponse, error) {
	in, err := req.ToInput(s.loc)
	if err != nil {
		return payroll.EarningsResponse{}, err
	}

	return payroll.NewEarningsResponse(Aggregate(in.Employee, in.Attendance)), nil
}

func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	in, err := req.ToInput(s.loc)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	p, err := s.builder.Build(in)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(p), nil
}

func (s *PayrollServiceImpl) Contributions(ctx context.Context, dailyRate decimal.Decimal, workingDaysPerMonth int) (payroll.ContributionsResponse, error) {
	if workingDaysPerMonth <= 0 {
		workingDaysPerMonth = s.deductions.WorkingDaysPerMonth()
	}
	return payroll.NewContributionsResponse(ContributionsFor(dailyRate, workingDaysPerMonth)), nil
}

func (s *PayrollServiceImpl) WithholdingTax(ctx context.Context, taxableIncome decimal.Decimal) (payroll.WithholdingTaxResponse, error) {
	return payroll.WithholdingTaxResponse{
		TaxableIncome:  roundMoney(nonNegative(taxableIncome)),
		WithholdingTax: WithholdingTax(taxableIncome),
	}, nil
}

// ========== STORED INPUTS ==========

func (s *PayrollServiceImpl) BuildForEmployee(ctx context.Context, employeeID string, period timesheet.Period) (payroll.Payslip, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	return s.buildFor(ctx, emp, period)
}

// RunPayroll builds every active employee's payslip in parallel. Employees
// that fail are logged and reported joined; the others are still returned.
func (s *PayrollServiceImpl) RunPayroll(ctx context.Context, period timesheet.Period) (payroll.PayrollRunResponse, error) {
	payslips, err := s.payslipsForActive(ctx, period)
	if payslips == nil {
		return payroll.PayrollRunResponse{}, err
	}

	resp := payroll.PayrollRunResponse{
		PeriodStart: period.Start.Format(timesheet.DateLayout),
		PeriodEnd:   period.End.Format(timesheet.DateLayout),
		Payslips:    make([]payroll.PayslipResponse, 0, len(payslips)),
		TotalNetPay: decimal.Zero,
	}
	for _, p := range payslips {
		resp.Payslips = append(resp.Payslips, payroll.NewPayslipResponse(p))
		resp.TotalNetPay = resp.TotalNetPay.Add(p.NetPay)
	}

	slog.Info("Payroll run completed", "period", period.String(), "payslips", len(payslips), "total_net_pay", resp.TotalNetPay.StringFixed(2))
	return resp, err
}

func (s *PayrollServiceImpl) PayslipPDF(ctx context.Context, employeeID string, period timesheet.Period) ([]byte, error) {
	p, err := s.BuildForEmployee(ctx, employeeID, period)
	if err != nil {
		return nil, err
	}
	return RenderPayslipPDF(p)
}

// RegisterXLSX fails when any employee's payslip could not be built.
func (s *PayrollServiceImpl) RegisterXLSX(ctx context.Context, period timesheet.Period) ([]byte, error) {
	payslips, err := s.payslipsForActive(ctx, period)
	if err != nil {
		return nil, err
	}
	return RenderRegisterXLSX(period, payslips)
}

func (s *PayrollServiceImpl) buildFor(ctx context.Context, emp employee.Employee, period timesheet.Period) (payroll.Payslip, error) {
	if !period.IsHalfMonth() {
		return payroll.Payslip{}, fmt.Errorf("%w: %s", payroll.ErrUnsupportedPayPeriod, period.String())
	}
	if emp.DailyRate().IsZero() {
		return payroll.Payslip{}, employee.ErrEmployeeHasNoRate
	}

	ts, err := s.timesheetService.BuildForProfile(ctx, emp, period)
	if err != nil {
		return payroll.Payslip{}, err
	}

	return s.builder.Build(payroll.PayslipInput{
		Employee:    emp,
		PeriodStart: ts.PeriodStart,
		PeriodEnd:   ts.PeriodEnd,
		Attendance:  ts.Days,
		Adjustment:  decimal.Zero,
	})
}

// payslipsForActive returns nil only when the period is rejected or the
// employee list itself could not be loaded.
func (s *PayrollServiceImpl) payslipsForActive(ctx context.Context, period timesheet.Period) ([]payroll.Payslip, error) {
	if !period.IsHalfMonth() {
		return nil, fmt.Errorf("%w: %s", payroll.ErrUnsupportedPayPeriod, period.String())
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	payslips := make([]payroll.Payslip, 0, len(employees))
	var (
		mu       sync.Mutex
		failures []error
		g        errgroup.Group
	)
	g.SetLimit(runConcurrency)

	for _, emp := range employees {
		g.Go(func() error {
			p, err := s.buildFor(ctx, emp, period)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("Failed to build payslip", "employee_id", emp.ID, "period", period.String(), "error", err)
				failures = append(failures, fmt.Errorf("employee %s: %w", emp.ID, err))
				return nil
			}
			payslips = append(payslips, p)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(payslips, func(i, j int) bool {
		if payslips[i].Employee.FullName != payslips[j].Employee.FullName {
			return payslips[i].Employee.FullName < payslips[j].Employee.FullName
		}
		return payslips[i].Employee.ID < payslips[j].Employee.ID
	})
	return payslips, errors.Join(failures...)
}
