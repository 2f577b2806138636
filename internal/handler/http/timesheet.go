package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/handler/http/response"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/validator"
)

type TimesheetHandler interface {
	// Request-supplied inputs
	ClassifyDay(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)

	// Stored inputs
	GenerateForEmployee(w http.ResponseWriter, r *http.Request)
	GetForEmployee(w http.ResponseWriter, r *http.Request)
	ValidateForEmployee(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	loc              *time.Location
	now              func() time.Time
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, loc *time.Location, now func() time.Time) TimesheetHandler {
	if now == nil {
		now = time.Now
	}
	return &timesheetHandlerImpl{timesheetService: timesheetService, loc: loc, now: now}
}

// ========== REQUEST-SUPPLIED INPUTS ==========

func (h *timesheetHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ClassifyDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.ClassifyDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req timesheet.GenerateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ValidateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Validate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== STORED INPUTS ==========

func (h *timesheetHandlerImpl) GenerateForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, period, ok := h.employeePeriod(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.GenerateForEmployee(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet generated", result)
}

func (h *timesheetHandlerImpl) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, period, ok := h.employeePeriod(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.StoredForEmployee(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) ValidateForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, period, ok := h.employeePeriod(w, r)
	if !ok {
		return
	}

	weekdays, err := validator.ParseWeekdays(r.URL.Query().Get("weekdays"))
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{Field: "weekdays", Message: err.Error()}})
		return
	}

	result, err := h.timesheetService.ValidateForEmployee(r.Context(), employeeID, period, weekdays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// employeePeriod reads {employeeID} and the start/end query, writing the error response itself.
func (h *timesheetHandlerImpl) employeePeriod(w http.ResponseWriter, r *http.Request) (string, timesheet.Period, bool) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return "", timesheet.Period{}, false
	}

	period, err := periodFromQuery(r, h.now(), h.loc)
	if err != nil {
		response.HandleError(w, err)
		return "", timesheet.Period{}, false
	}
	return employeeID, period, true
}

func periodFromQuery(r *http.Request, now time.Time, loc *time.Location) (timesheet.Period, error) {
	q := r.URL.Query()
	return timesheet.PeriodQuery{Start: q.Get("start"), End: q.Get("end")}.ToPeriod(now, loc)
}
