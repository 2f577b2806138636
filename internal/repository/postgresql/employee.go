package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/employee"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const employeeColumns = `
	id, user_id, employee_code, full_name, position, assigned_site,
	rate_per_day, rate_per_hour, overtime_eligible, night_diff_eligible,
	special_rest_day_policy, rest_day_rule, employment_status, hire_date,
	created_at, updated_at
`

type employeeRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewEmployeeRepository(db *database.DB, loc *time.Location) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db, loc: loc}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + `FROM employees WHERE id = $1`

	emp, err := e.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE employment_status = $1
		ORDER BY full_name, id
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := e.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

func (e *employeeRepositoryImpl) scan(row pgx.Row) (employee.Employee, error) {
	var (
		emp         employee.Employee
		ratePerDay  decimal.NullDecimal
		ratePerHour decimal.NullDecimal
		hireDate    *time.Time
	)

	err := row.Scan(
		&emp.ID,
		&emp.UserID,
		&emp.EmployeeCode,
		&emp.FullName,
		&emp.Position,
		&emp.AssignedSite,
		&ratePerDay,
		&ratePerHour,
		&emp.OvertimeEligible,
		&emp.NightDiffEligible,
		&emp.SpecialRestDayPolicy,
		&emp.RestDayRule,
		&emp.EmploymentStatus,
		&hireDate,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if ratePerDay.Valid {
		emp.RatePerDay = &ratePerDay.Decimal
	}
	if ratePerHour.Valid {
		emp.RatePerHour = &ratePerHour.Decimal
	}
	if hireDate != nil {
		emp.HireDate = timesheet.CalendarDate(*hireDate, e.loc)
	}
	return emp, nil
}
