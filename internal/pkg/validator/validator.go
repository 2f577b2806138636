package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts any RFC 4122 UUID in canonical form.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+08:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// ValidateDateRange checks start/end as YYYY-MM-DD with start <= end.
func ValidateDateRange(startStr, endStr string) (start, end time.Time, errs ValidationErrors) {
	start, okStart := IsValidDate(startStr)
	if !okStart {
		errs = append(errs, ValidationError{Field: "start", Message: "must be in YYYY-MM-DD format"})
	}
	end, okEnd := IsValidDate(endStr)
	if !okEnd {
		errs = append(errs, ValidationError{Field: "end", Message: "must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, ValidationError{Field: "end", Message: "must not be before start"})
	}
	return start, end, errs
}

// ParseWeekdays parses a comma separated list of ISO day numbers (1=Monday .. 7=Sunday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if IsEmpty(s) {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	result := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("invalid weekday %q: must be 1 (Monday) to 7 (Sunday)", p)
		}
		result = append(result, time.Weekday(n%7))
	}
	return result, nil
}

// IndexedField builds a field path like "entries[2].clock_in".
func IndexedField(list string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, i, field)
}

// PrefixFields returns errs with prefix prepended to every field name.
func PrefixFields(prefix string, errs ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, e := range errs {
		out = append(out, ValidationError{Field: prefix + e.Field, Message: e.Message})
	}
	return out
}
