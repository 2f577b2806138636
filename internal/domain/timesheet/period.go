package timesheet

import (
	"fmt"
	"time"
)

// Period is an inclusive range of calendar days in the business timezone.
type Period struct {
	Start time.Time
	End   time.Time
}

// CalendarDate keeps the year, month and day of t and moves it to midnight in loc.
// Convert instants with t.In(loc) first when the wall-clock date in loc matters.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// NewPeriod normalizes start and end to calendar dates in loc.
func NewPeriod(start, end time.Time, loc *time.Location) (Period, error) {
	p := Period{Start: CalendarDate(start, loc), End: CalendarDate(end, loc)}
	if p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod, p.End.Format(DateLayout), p.Start.Format(DateLayout))
	}
	return p, nil
}

// WeekOf returns the Monday to Sunday pay week containing t.
func WeekOf(t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	day := CalendarDate(t.In(loc), loc)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Period{Start: start, End: start.AddDate(0, 0, 6)}
}

// HalfMonthOf returns the semi-monthly pay period containing t: the 1st to
// the 15th, or the 16th to the last day of the month.
func HalfMonthOf(t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	day := CalendarDate(t.In(loc), loc)
	if day.Day() <= 15 {
		start := day.AddDate(0, 0, 1-day.Day())
		return Period{Start: start, End: start.AddDate(0, 0, 14)}
	}
	start := time.Date(day.Year(), day.Month(), 16, 0, 0, 0, 0, loc)
	return Period{Start: start, End: time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, loc)}
}

// IsHalfMonth reports whether p is exactly one semi-monthly pay period.
func (p Period) IsHalfMonth() bool {
	h := HalfMonthOf(p.Start, p.Start.Location())
	return p.Start.Equal(h.Start) && CalendarDate(p.End, p.Start.Location()).Equal(h.End)
}

// Days lists every date in the period in order.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p Period) Contains(t time.Time) bool {
	d := CalendarDate(t.In(p.Start.Location()), p.Start.Location())
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return p.Start.Format(DateLayout) + ".." + p.End.Format(DateLayout)
}
