// Package restday expands per-employee rest-day recurrences into calendar dates.
package restday

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultRule is used when an employee has no rest-day schedule.
const DefaultRule = "every sunday"

const dateLayout = "2006-01-02"

var weekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}

// Parse parses a raw RRULE ("FREQ=WEEKLY;BYDAY=SA,SU") or a phrase such as
// "every sunday", "every saturday and sunday" or "weekends".
func Parse(rule string) (*rrule.RRule, error) {
	s := strings.TrimSpace(strings.ToLower(rule))
	if s == "" {
		s = DefaultRule
	}

	if strings.HasPrefix(s, "rrule:") || strings.HasPrefix(s, "freq=") {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	case "none", "never":
		return nil, nil
	}

	if !strings.HasPrefix(s, "every ") {
		return nil, fmt.Errorf("unrecognized rest day rule %q", rule)
	}

	names := strings.FieldsFunc(strings.TrimPrefix(s, "every "), func(r rune) bool {
		return r == ',' || r == ' '
	})
	var days []rrule.Weekday
	for _, name := range names {
		if name == "and" {
			continue
		}
		wd, ok := weekdays[name]
		if !ok {
			return nil, fmt.Errorf("unrecognized rest day rule %q: unknown day %q", rule, name)
		}
		days = append(days, wd)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("unrecognized rest day rule %q", rule)
	}

	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: days,
	})
}

// Expand returns a rest-day flag for every date in [from, to] keyed YYYY-MM-DD.
// Overrides replace the rule's answer for individual dates.
func Expand(rule string, overrides map[string]bool, from, to time.Time, loc *time.Location) (map[string]bool, error) {
	if loc == nil {
		loc = time.UTC
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)

	result := make(map[string]bool)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		result[d.Format(dateLayout)] = false
	}

	r, err := Parse(rule)
	if err != nil {
		return nil, err
	}

	if r != nil {
		// Unbounded rules start at the range start so Between covers it.
		opts := r.OrigOptions
		if opts.Dtstart.IsZero() {
			opts.Dtstart = from
		}
		bounded, err := rrule.NewRRule(opts)
		if err != nil {
			return nil, err
		}
		for _, d := range bounded.Between(from, to, true) {
			key := d.In(loc).Format(dateLayout)
			if _, ok := result[key]; ok {
				result[key] = true
			}
		}
	}

	for key, isRest := range overrides {
		if _, ok := result[key]; ok {
			result[key] = isRest
		}
	}

	return result, nil
}
