package timesheet

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid timesheet period")
	ErrPeriodTooLong = errors.New("timesheet period exceeds the maximum length")
)
