package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/database"
)

type clockEntryRepositoryImpl struct {
	db *database.DB
}

func NewClockEntryRepository(db *database.DB) timesheet.ClockEntryRepository {
	return &clockEntryRepositoryImpl{db: db}
}

// ListByEmployeeBetween implements timesheet.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.ClockEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, clock_in_time, clock_out_time,
			   COALESCE(regular_hours, 0), COALESCE(overtime_hours, 0), COALESCE(night_diff_hours, 0),
			   status
		FROM time_clock_entries
		WHERE employee_id = $1 AND clock_in_time >= $2 AND clock_in_time < $3
		ORDER BY clock_in_time
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.ClockEntry
	for rows.Next() {
		var e timesheet.ClockEntry
		err := rows.Scan(
			&e.ID,
			&e.EmployeeID,
			&e.ClockIn,
			&e.ClockOut,
			&e.RegularHours,
			&e.OvertimeHours,
			&e.NightDiffHours,
			&e.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
