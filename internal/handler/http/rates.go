package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

// RateHandler covers the admin-facing payroll configuration surface: global
// settings, insurance and income tax rate schedules, and company holidays.
type RateHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)

	CreateInsuranceRate(w http.ResponseWriter, r *http.Request)
	ListInsuranceRates(w http.ResponseWriter, r *http.Request)

	CreateIncomeTaxRate(w http.ResponseWriter, r *http.Request)
	ListIncomeTaxRates(w http.ResponseWriter, r *http.Request)

	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type RateHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewRateHandler(payrollService payroll.PayrollService) RateHandler {
	return &RateHandlerImpl{payrollService: payrollService}
}

// GetSettings implements RateHandler.
func (h *RateHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.payrollService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSettingsResponse(settings))
}

// UpdateSettings implements RateHandler.
func (h *RateHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.SettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.payrollService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", payroll.NewSettingsResponse(settings))
}

// CreateInsuranceRate implements RateHandler.
func (h *RateHandlerImpl) CreateInsuranceRate(w http.ResponseWriter, r *http.Request) {
	var req payroll.InsuranceRateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateInsuranceRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rate, err := h.payrollService.CreateInsuranceRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Insurance rate created", payroll.NewInsuranceRateResponse(rate))
}

// ListInsuranceRates implements RateHandler.
func (h *RateHandlerImpl) ListInsuranceRates(w http.ResponseWriter, r *http.Request) {
	var rateType *string
	if t := r.URL.Query().Get("rate_type"); t != "" {
		rateType = &t
	}

	rates, err := h.payrollService.ListInsuranceRates(r.Context(), rateType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}

// CreateIncomeTaxRate implements RateHandler.
func (h *RateHandlerImpl) CreateIncomeTaxRate(w http.ResponseWriter, r *http.Request) {
	var req payroll.IncomeTaxRateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateIncomeTaxRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rate, err := h.payrollService.CreateIncomeTaxRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Income tax rate created", payroll.NewIncomeTaxRateResponse(rate))
}

// ListIncomeTaxRates implements RateHandler.
func (h *RateHandlerImpl) ListIncomeTaxRates(w http.ResponseWriter, r *http.Request) {
	var withholdingType *string
	if t := r.URL.Query().Get("withholding_type"); t != "" {
		withholdingType = &t
	}

	rates, err := h.payrollService.ListIncomeTaxRates(r.Context(), withholdingType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}

// CreateHoliday implements RateHandler.
func (h *RateHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req payroll.HolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	holiday, err := h.payrollService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", payroll.NewHolidayResponse(holiday))
}

// DeleteHoliday implements RateHandler.
func (h *RateHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	holidayID := chi.URLParam(r, "id")
	if holidayID == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteHoliday(r.Context(), holidayID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

// ListHolidays implements RateHandler.
func (h *RateHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	yearPtr, err := queryInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	year := time.Now().Year()
	if yearPtr != nil {
		year = *yearPtr
	}

	holidays, err := h.payrollService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewHolidayResponses(holidays))
}
