package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/holiday"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

// NewHolidayRepository returns holidays dated at midnight in loc.
func NewHolidayRepository(db *database.DB, loc *time.Location) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db, loc: loc}
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, name, holiday_type, created_at, updated_at
		FROM holidays
		WHERE holiday_date BETWEEN $1::date AND $2::date
		ORDER BY holiday_date, name
	`

	rows, err := q.Query(ctx, query, from.Format(timesheet.DateLayout), to.Format(timesheet.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Type, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		h.Date = timesheet.CalendarDate(h.Date, r.loc)
		holidays = append(holidays, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return holidays, nil
}
