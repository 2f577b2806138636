package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/holiday"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/restday"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds concurrent employees in GenerateForAllActive.
const batchConcurrency = 4

type TimesheetServiceImpl struct {
	generator      *Generator
	clockEntryRepo timesheet.ClockEntryRepository
	attendanceRepo timesheet.DailyAttendanceRepository
	overrideRepo   timesheet.RestDayOverrideRepository
	holidayRepo    holiday.HolidayRepository
	employeeRepo   employee.EmployeeRepository
}

func NewTimesheetService(
	generator *Generator,
	clockEntryRepo timesheet.ClockEntryRepository,
	attendanceRepo timesheet.DailyAttendanceRepository,
	overrideRepo timesheet.RestDayOverrideRepository,
	holidayRepo holiday.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		generator:      generator,
		clockEntryRepo: clockEntryRepo,
		attendanceRepo: attendanceRepo,
		overrideRepo:   overrideRepo,
		holidayRepo:    holidayRepo,
		employeeRepo:   employeeRepo,
	}
}

// ========== REQUEST-SUPPLIED INPUTS ==========

func (s *TimesheetServiceImpl) ClassifyDay(ctx context.Context, req timesheet.ClassifyDayRequest) (timesheet.ClassifyDayResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ClassifyDayResponse{}, err
	}

	holidays, err := holiday.ToHolidays(req.Holidays)
	if err != nil {
		return timesheet.ClassifyDayResponse{}, err
	}
	date, err := time.ParseInLocation(timesheet.DateLayout, req.Date, s.generator.Location())
	if err != nil {
		return timesheet.ClassifyDayResponse{}, fmt.Errorf("parse date: %w", err)
	}

	return timesheet.ClassifyDayResponse{
		Date:    req.Date,
		DayType: ClassifyDay(date, holidays, req.IsRestDay),
	}, nil
}

func (s *TimesheetServiceImpl) Generate(ctx context.Context, req timesheet.GenerateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	in, err := req.ToInput(s.generator.Location())
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return timesheet.NewTimesheetResponse(s.generator.Generate(in)), nil
}

func (s *TimesheetServiceImpl) Validate(ctx context.Context, req timesheet.ValidateTimesheetRequest) (timesheet.ValidationResponse, error) {
	entries, period, weekdays, err := req.ToArgs(s.generator.Location())
	if err != nil {
		return timesheet.ValidationResponse{}, err
	}

	return timesheet.NewValidationResponse(s.generator.Validate(entries, period, weekdays)), nil
}

// ========== STORED INPUTS ==========

func (s *TimesheetServiceImpl) BuildForEmployee(ctx context.Context, employeeID string, period timesheet.Period) (timesheet.Timesheet, error) {
	if err := checkPeriod(period); err != nil {
		return timesheet.Timesheet{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	return s.build(ctx, emp, period)
}

func (s *TimesheetServiceImpl) BuildForProfile(ctx context.Context, emp employee.Employee, period timesheet.Period) (timesheet.Timesheet, error) {
	if err := checkPeriod(period); err != nil {
		return timesheet.Timesheet{}, err
	}
	return s.build(ctx, emp, period)
}

func (s *TimesheetServiceImpl) GenerateForEmployee(ctx context.Context, employeeID string, period timesheet.Period) (timesheet.TimesheetResponse, error) {
	ts, err := s.BuildForEmployee(ctx, employeeID, period)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if err := s.attendanceRepo.UpsertMany(ctx, employeeID, ts.Days); err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to save timesheet: %w", err)
	}

	slog.Info("Timesheet generated", "employee_id", employeeID, "period", period.String(), "regular_hours", ts.Totals.RegularHours)
	return timesheet.NewTimesheetResponse(ts), nil
}

func (s *TimesheetServiceImpl) StoredForEmployee(ctx context.Context, employeeID string, period timesheet.Period) (timesheet.TimesheetResponse, error) {
	if err := checkPeriod(period); err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	rows, err := s.attendanceRepo.ListByEmployeeBetween(ctx, employeeID, period.Start, period.End)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to load timesheet: %w", err)
	}

	ts := timesheet.Timesheet{EmployeeID: employeeID, PeriodStart: period.Start, PeriodEnd: period.End, Days: rows}
	for _, row := range rows {
		ts.Totals.RegularHours += row.RegularHours
		ts.Totals.OvertimeHours += row.OvertimeHours
		ts.Totals.NightDiffHours += row.NightDiffHours
	}
	return timesheet.NewTimesheetResponse(ts), nil
}

// GenerateForAllActive keeps going when one employee fails; failures are logged
// and returned joined.
func (s *TimesheetServiceImpl) GenerateForAllActive(ctx context.Context, period timesheet.Period) (int, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	var (
		generated atomic.Int64
		mu        sync.Mutex
		failures  []error
		g         errgroup.Group
	)
	g.SetLimit(batchConcurrency)

	for _, emp := range employees {
		g.Go(func() error {
			ts, err := s.build(ctx, emp, period)
			if err == nil {
				err = s.attendanceRepo.UpsertMany(ctx, emp.ID, ts.Days)
			}
			if err != nil {
				slog.Error("Failed to generate timesheet", "employee_id", emp.ID, "period", period.String(), "error", err)
				mu.Lock()
				failures = append(failures, fmt.Errorf("employee %s: %w", emp.ID, err))
				mu.Unlock()
				return nil
			}
			generated.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(generated.Load()), errors.Join(failures...)
}

func (s *TimesheetServiceImpl) ValidateForEmployee(ctx context.Context, employeeID string, period timesheet.Period, weekdays []time.Weekday) (timesheet.ValidationResponse, error) {
	if err := checkPeriod(period); err != nil {
		return timesheet.ValidationResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return timesheet.ValidationResponse{}, err
	}

	entries, err := s.clockEntryRepo.ListByEmployeeBetween(ctx, employeeID, period.Start, period.End.AddDate(0, 0, 1))
	if err != nil {
		return timesheet.ValidationResponse{}, fmt.Errorf("failed to load clock entries: %w", err)
	}

	return timesheet.NewValidationResponse(s.generator.Validate(entries, period, weekdays)), nil
}

// build loads the period plus the holiday lookback window and runs the generator.
func (s *TimesheetServiceImpl) build(ctx context.Context, emp employee.Employee, period timesheet.Period) (timesheet.Timesheet, error) {
	from := period.Start.AddDate(0, 0, -holidayLookbackDays)
	until := period.End.AddDate(0, 0, 1)

	var (
		entries   []timesheet.ClockEntry
		holidays  []holiday.Holiday
		overrides []timesheet.RestDayOverride
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.clockEntryRepo.ListByEmployeeBetween(gCtx, emp.ID, from, until)
		if err != nil {
			return fmt.Errorf("failed to load clock entries: %w", err)
		}
		entries = data
		return nil
	})

	g.Go(func() error {
		data, err := s.holidayRepo.ListBetween(gCtx, from, period.End)
		if err != nil {
			return fmt.Errorf("failed to load holidays: %w", err)
		}
		holidays = data
		return nil
	})

	g.Go(func() error {
		data, err := s.overrideRepo.ListByEmployeeBetween(gCtx, emp.ID, from, period.End)
		if err != nil {
			return fmt.Errorf("failed to load rest day overrides: %w", err)
		}
		overrides = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return timesheet.Timesheet{}, err
	}

	restDays, err := restDaysFor(emp, overrides, from, period.End, s.generator.Location())
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	in := timesheet.NewGenerateInput(entries, period.Start, period.End, holidays)
	in.EmployeeID = emp.ID
	in.RestDays = restDays
	in.OvertimeEligible = emp.OvertimeEligible
	in.NightDiffEligible = emp.NightDiffEligible
	in.SpecialRestDayPolicy = emp.SpecialRestDayPolicy

	return s.generator.Generate(in), nil
}

// restDaysFor returns nil, meaning Sundays, when the employee has neither a rule nor overrides.
func restDaysFor(emp employee.Employee, overrides []timesheet.RestDayOverride, from, to time.Time, loc *time.Location) (map[string]bool, error) {
	if emp.RestDayRule == nil && len(overrides) == 0 {
		return nil, nil
	}

	rule := restday.DefaultRule
	if emp.RestDayRule != nil {
		rule = *emp.RestDayRule
	}

	pinned := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		pinned[o.Date.Format(timesheet.DateLayout)] = o.IsRestDay
	}

	restDays, err := restday.Expand(rule, pinned, from, to, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", employee.ErrRestDayScheduleInvalid, err)
	}
	return restDays, nil
}

func checkPeriod(period timesheet.Period) error {
	if period.End.Before(period.Start) {
		return timesheet.ErrInvalidPeriod
	}
	if period.End.Sub(period.Start) >= timesheet.MaxPeriodDays*24*time.Hour {
		return timesheet.ErrPeriodTooLong
	}
	return nil
}
