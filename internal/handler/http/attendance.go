package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListMyRecords(w http.ResponseWriter, r *http.Request)
	ListMonthlyRecords(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)

	CreateAdjustment(w http.ResponseWriter, r *http.Request)
	ListMyAdjustments(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)
	DecideAdjustment(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", attendance.NewRecordResponse(record))
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AttendanceID = chi.URLParam(r, "id")

	record, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendance.NewRecordResponse(record))
}

// ListMyRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMyRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListMyRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewRecordResponses(records))
}

// ListMonthlyRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMonthlyRecords(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListMonthlyRecords(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewRecordResponses(records))
}

// ListAll implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	filter, err := recordFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	records, err := h.attendanceService.ListAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewRecordResponses(records))
}

// CreateAdjustment implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdjustmentCreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAdjustment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	adjustment, err := h.attendanceService.CreateAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment request submitted", attendance.NewAdjustmentResponse(adjustment))
}

// ListMyAdjustments implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMyAdjustments(w http.ResponseWriter, r *http.Request) {
	var status *attendance.AdjustmentStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := attendance.AdjustmentStatus(s)
		status = &st
	}

	adjustments, err := h.attendanceService.ListMyAdjustments(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAdjustmentResponses(adjustments))
}

// ListAdjustments implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	var filter attendance.AdjustmentFilter
	if id := r.URL.Query().Get("employee_id"); id != "" {
		filter.EmployeeID = &id
	}
	if s := r.URL.Query().Get("status"); s != "" {
		st := attendance.AdjustmentStatus(s)
		filter.Status = &st
	}

	adjustments, err := h.attendanceService.ListAdjustments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAdjustmentResponses(adjustments))
}

// DecideAdjustment implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DecideAdjustment(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdjustmentDecisionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideAdjustment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	adjustment, err := h.attendanceService.DecideAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment request decided", attendance.NewAdjustmentResponse(adjustment))
}

func recordFilterFromQuery(r *http.Request) (attendance.RecordFilter, error) {
	var filter attendance.RecordFilter

	start, err := queryDate(r, "start_date")
	if err != nil {
		return attendance.RecordFilter{}, err
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		return attendance.RecordFilter{}, err
	}

	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}
