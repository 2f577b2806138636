package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeHasNoRate      = errors.New("employee has no pay rate configured")
	ErrRestDayScheduleInvalid = errors.New("employee rest day schedule is invalid")
)
