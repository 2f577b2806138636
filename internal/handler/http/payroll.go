package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/greenpasture/payroll-backend-go/internal/handler/http/response"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type PayrollHandler interface {
	// Payslips
	Breakdown(w http.ResponseWriter, r *http.Request)
	CreatePayslip(w http.ResponseWriter, r *http.Request)
	GetEmployeePayslip(w http.ResponseWriter, r *http.Request)
	DownloadPayslipPDF(w http.ResponseWriter, r *http.Request)

	// Payroll run
	RunPayroll(w http.ResponseWriter, r *http.Request)
	DownloadRegister(w http.ResponseWriter, r *http.Request)

	// Deductions
	Contributions(w http.ResponseWriter, r *http.Request)
	WithholdingTax(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollHandler(payrollService payroll.PayrollService, loc *time.Location, now func() time.Time) PayrollHandler {
	if now == nil {
		now = time.Now
	}
	return &payrollHandlerImpl{payrollService: payrollService, loc: loc, now: now}
}

// ========== PAYSLIPS ==========

func (h *payrollHandlerImpl) Breakdown(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Breakdown(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetEmployeePayslip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	period, err := payPeriodFromQuery(r, h.now(), h.loc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.BuildForEmployee(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponse(result))
}

func (h *payrollHandlerImpl) DownloadPayslipPDF(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	period, err := payPeriodFromQuery(r, h.now(), h.loc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.payrollService.PayslipPDF(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypePDF, fmt.Sprintf("payslip-%s-%s.pdf", employeeID, period.Start.Format("20060102")), doc)
}

// ========== PAYROLL RUN ==========

func (h *payrollHandlerImpl) RunPayroll(w http.ResponseWriter, r *http.Request) {
	period, err := payPeriodFromQuery(r, h.now(), h.loc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.RunPayroll(r.Context(), period)
	if err != nil {
		// Payslips that did compute are still returned
		if len(result.Payslips) == 0 {
			response.HandleError(w, err)
			return
		}
		slog.Warn("Payroll run completed with failures", "period", period.String(), "error", err)
		response.SuccessWithMessage(w, "Payroll run completed with failures: "+err.Error(), result)
		return
	}

	response.SuccessWithMessage(w, "Payroll run completed", result)
}

func (h *payrollHandlerImpl) DownloadRegister(w http.ResponseWriter, r *http.Request) {
	period, err := payPeriodFromQuery(r, h.now(), h.loc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.payrollService.RegisterXLSX(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypeXLSX, fmt.Sprintf("payroll-register-%s.xlsx", period.Start.Format("20060102")), doc)
}

func payPeriodFromQuery(r *http.Request, now time.Time, loc *time.Location) (timesheet.Period, error) {
	q := r.URL.Query()
	return timesheet.PeriodQuery{Start: q.Get("start"), End: q.Get("end")}.ToPayPeriod(now, loc)
}

// ========== DEDUCTIONS ==========

func (h *payrollHandlerImpl) Contributions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dailyRate, workingDays, err := payroll.ContributionsQuery{
		DailyRate:   q.Get("daily_rate"),
		WorkingDays: q.Get("working_days"),
	}.Parse()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.Contributions(r.Context(), dailyRate, workingDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) WithholdingTax(w http.ResponseWriter, r *http.Request) {
	income, err := payroll.ParseTaxableIncome(r.URL.Query().Get("taxable_income"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.WithholdingTax(r.Context(), income)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
