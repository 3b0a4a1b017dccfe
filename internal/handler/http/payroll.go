package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	ListMyPayslips(w http.ResponseWriter, r *http.Request)
	UpdatePayslip(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	MonthlyStats(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ExportMyCSV(w http.ResponseWriter, r *http.Request)
	ExportPDF(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler.
func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Calculate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	report, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		slog.Error("Calculate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payroll batch finished",
		"year", report.Year, "month", report.Month,
		"created", report.CreatedCount, "updated", report.UpdatedCount,
		"skipped", report.SkippedCount, "errors", report.ErrorCount)
	response.SuccessWithMessage(w, "Payroll calculation finished", report)
}

// GetPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "id")
	if payslipID == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	payslip, err := h.payrollService.GetPayslip(r.Context(), payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponse(payslip))
}

// ListPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	filter, err := payslipFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if id := r.URL.Query().Get("employee_id"); id != "" {
		filter.EmployeeID = &id
	}

	payslips, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponses(payslips))
}

// ListMyPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) ListMyPayslips(w http.ResponseWriter, r *http.Request) {
	filter, err := payslipFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payslips, err := h.payrollService.ListMyPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewPayslipResponses(payslips))
}

// UpdatePayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdatePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayslipRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePayslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PayslipID = chi.URLParam(r, "id")

	payslip, err := h.payrollService.UpdatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip updated", payroll.NewPayslipResponse(payslip))
}

// Confirm implements PayrollHandler.
func (h *PayrollHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "id")
	if payslipID == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	payslip, err := h.payrollService.Confirm(r.Context(), payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip confirmed", payroll.NewPayslipResponse(payslip))
}

// MarkPaid implements PayrollHandler.
func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "id")
	if payslipID == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	payslip, err := h.payrollService.MarkPaid(r.Context(), payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip marked as paid", payroll.NewPayslipResponse(payslip))
}

// MonthlyStats implements PayrollHandler.
func (h *PayrollHandlerImpl) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	// The employee ID comes from the URL on the admin route and from the
	// token on the self route.
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		employeeID, _ = claims["employee_id"].(string)
	}

	stats, err := h.payrollService.MonthlyStats(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// ExportCSV implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.payrollService.ExportCSV(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="all_payslips_%d_%d.csv"`, year, month))
	w.Write(data)
}

// ExportMyCSV implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportMyCSV(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.payrollService.ExportMyCSV(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip_%d_%d.csv"`, year, month))
	w.Write(data)
}

// ExportPDF implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "id")
	if payslipID == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	data, err := h.payrollService.ExportPDF(r.Context(), payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip_%s.pdf"`, payslipID))
	w.Write(data)
}

func payslipFilterFromQuery(r *http.Request) (payroll.PayslipFilter, error) {
	var filter payroll.PayslipFilter

	year, err := queryInt(r, "year")
	if err != nil {
		return payroll.PayslipFilter{}, err
	}
	month, err := queryInt(r, "month")
	if err != nil {
		return payroll.PayslipFilter{}, err
	}
	if s := r.URL.Query().Get("status"); s != "" {
		st := payroll.PayslipStatus(s)
		filter.Status = &st
	}

	filter.Year = year
	filter.Month = month
	return filter, nil
}
