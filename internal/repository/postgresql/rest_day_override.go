package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/database"
)

type restDayOverrideRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewRestDayOverrideRepository(db *database.DB, loc *time.Location) timesheet.RestDayOverrideRepository {
	return &restDayOverrideRepositoryImpl{db: db, loc: loc}
}

// ListByEmployeeBetween implements timesheet.RestDayOverrideRepository. Both bounds are inclusive.
func (r *restDayOverrideRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.RestDayOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT override_date, is_rest_day
		FROM employee_rest_day_overrides
		WHERE employee_id = $1 AND override_date BETWEEN $2::date AND $3::date
		ORDER BY override_date
	`

	rows, err := q.Query(ctx, query, employeeID, from.Format(timesheet.DateLayout), to.Format(timesheet.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query rest day overrides: %w", err)
	}
	defer rows.Close()

	var overrides []timesheet.RestDayOverride
	for rows.Next() {
		var o timesheet.RestDayOverride
		if err := rows.Scan(&o.Date, &o.IsRestDay); err != nil {
			return nil, fmt.Errorf("failed to scan rest day override: %w", err)
		}
		o.Date = timesheet.CalendarDate(o.Date, r.loc)
		overrides = append(overrides, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return overrides, nil
}
