package holiday

import (
	"github.com/greenpasture/payroll-backend-go/internal/pkg/validator"
)

type HolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
	Type string `json:"type"` // "regular" or "non_working"
}

// ToHolidays converts request items into holidays, preserving order.
func ToHolidays(reqs []HolidayRequest) ([]Holiday, error) {
	var errs validator.ValidationErrors
	result := make([]Holiday, 0, len(reqs))

	for i, r := range reqs {
		date, ok := validator.IsValidDate(r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("holidays", i, "date"), Message: "must be in YYYY-MM-DD format"})
			continue
		}
		t := HolidayType(r.Type)
		if !t.IsValid() {
			errs = append(errs, validator.ValidationError{Field: validator.IndexedField("holidays", i, "type"), Message: "must be 'regular' or 'non_working'"})
			continue
		}
		result = append(result, Holiday{Date: date, Name: r.Name, Type: t})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}
