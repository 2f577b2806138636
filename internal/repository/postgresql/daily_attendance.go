package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyAttendanceRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewDailyAttendanceRepository(db *database.DB, loc *time.Location) timesheet.DailyAttendanceRepository {
	return &dailyAttendanceRepositoryImpl{db: db, loc: loc}
}

// UpsertMany implements timesheet.DailyAttendanceRepository. Rows are written
// in one batch inside a transaction so a period is never half replaced.
func (r *dailyAttendanceRepositoryImpl) UpsertMany(ctx context.Context, employeeID string, rows []timesheet.DailyAttendance) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_attendance (
			id, employee_id, attendance_date, day_type,
			regular_hours, overtime_hours, night_diff_hours, seed_reason,
			created_at, updated_at
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, NULLIF($8, ''), NOW(), NOW())
		ON CONFLICT (employee_id, attendance_date) DO UPDATE SET
			day_type = EXCLUDED.day_type,
			regular_hours = EXCLUDED.regular_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			night_diff_hours = EXCLUDED.night_diff_hours,
			seed_reason = EXCLUDED.seed_reason,
			updated_at = NOW()
	`

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		batch := &pgx.Batch{}
		for _, row := range rows {
			id := row.ID
			if id == "" {
				id = uuid.NewString()
			}
			batch.Queue(query,
				id,
				employeeID,
				row.Date.Format(timesheet.DateLayout),
				row.DayType,
				row.RegularHours,
				row.OvertimeHours,
				row.NightDiffHours,
				string(row.SeedReason),
			)
		}

		br := q.SendBatch(ctx, batch)
		for _, row := range rows {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to upsert attendance for %s: %w", row.DateKey(), err)
			}
		}
		return br.Close()
	})
}

// ListByEmployeeBetween implements timesheet.DailyAttendanceRepository. Both bounds are inclusive.
func (r *dailyAttendanceRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_date, day_type,
			   regular_hours, overtime_hours, night_diff_hours, COALESCE(seed_reason, ''),
			   created_at, updated_at
		FROM daily_attendance
		WHERE employee_id = $1 AND attendance_date BETWEEN $2::date AND $3::date
		ORDER BY attendance_date
	`

	rows, err := q.Query(ctx, query, employeeID, from.Format(timesheet.DateLayout), to.Format(timesheet.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily attendance: %w", err)
	}
	defer rows.Close()

	var result []timesheet.DailyAttendance
	for rows.Next() {
		var d timesheet.DailyAttendance
		err := rows.Scan(
			&d.ID,
			&d.EmployeeID,
			&d.Date,
			&d.DayType,
			&d.RegularHours,
			&d.OvertimeHours,
			&d.NightDiffHours,
			&d.SeedReason,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance: %w", err)
		}
		d.Date = timesheet.CalendarDate(d.Date, r.loc)
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
