package timesheet

import (
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/holiday"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
)

// ClassifyDay returns the pay classification of date. A nil isRestDay means the
// rest day is Sunday. When several holidays share the date the first one listed wins.
func ClassifyDay(date time.Time, holidays []holiday.Holiday, isRestDay *bool) timesheet.DayType {
	restDay := date.Weekday() == time.Sunday
	if isRestDay != nil {
		restDay = *isRestDay
	}

	key := date.Format(timesheet.DateLayout)
	var holidayType holiday.HolidayType
	for _, h := range holidays {
		if h.Type.IsValid() && h.DateKey() == key {
			holidayType = h.Type
			break
		}
	}

	switch {
	case restDay && holidayType == holiday.HolidayTypeRegular:
		return timesheet.DayTypeRestDayRegularHoliday
	case restDay && holidayType == holiday.HolidayTypeNonWorking:
		return timesheet.DayTypeRestDayNonWorkingHoliday
	case holidayType == holiday.HolidayTypeRegular:
		return timesheet.DayTypeRegularHoliday
	case holidayType == holiday.HolidayTypeNonWorking:
		return timesheet.DayTypeNonWorkingHoliday
	case restDay:
		return timesheet.DayTypeRestDay
	default:
		return timesheet.DayTypeRegular
	}
}
