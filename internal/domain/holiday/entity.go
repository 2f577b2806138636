package holiday

import "time"

// HolidayType enum
type HolidayType string

const (
	HolidayTypeRegular    HolidayType = "regular"     // legal holiday, paid even when unworked
	HolidayTypeNonWorking HolidayType = "non_working" // special non-working day
)

// Holiday - A proclaimed calendar date. Only the calendar part of Date is meaningful.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Type      HolidayType
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t HolidayType) IsValid() bool {
	return t == HolidayTypeRegular || t == HolidayTypeNonWorking
}

// DateKey returns the holiday date as YYYY-MM-DD.
func (h Holiday) DateKey() string {
	return h.Date.Format("2006-01-02")
}
