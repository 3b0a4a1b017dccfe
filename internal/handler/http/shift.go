package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMyShifts(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	DeleteMyShift(w http.ResponseWriter, r *http.Request)
	Projection(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// Create implements ShiftHandler.
func (h *ShiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift submitted successfully", shift.NewShiftResponse(created))
}

// ListMyShifts implements ShiftHandler.
func (h *ShiftHandlerImpl) ListMyShifts(w http.ResponseWriter, r *http.Request) {
	filter, err := shiftFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	shifts, err := h.shiftService.ListMyShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shift.NewShiftResponses(shifts))
}

// ListAll implements ShiftHandler.
func (h *ShiftHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	filter, err := shiftFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if id := r.URL.Query().Get("employee_id"); id != "" {
		filter.EmployeeID = &id
	}

	shifts, err := h.shiftService.ListAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shift.NewShiftResponses(shifts))
}

// Decide implements ShiftHandler.
func (h *ShiftHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req shift.DecisionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ShiftID = chi.URLParam(r, "id")

	decided, err := h.shiftService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift decided", shift.NewShiftResponse(decided))
}

// DeleteMyShift implements ShiftHandler.
func (h *ShiftHandlerImpl) DeleteMyShift(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "id")
	if shiftID == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	if err := h.shiftService.DeleteMyShift(r.Context(), shiftID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Projection implements ShiftHandler. The employee ID comes from the URL on
// the admin route and from the token on the self route.
func (h *ShiftHandlerImpl) Projection(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Unauthorized")
			return
		}
		employeeID, _ = claims["employee_id"].(string)
	}

	projection, err := h.shiftService.Projection(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, projection)
}

func shiftFilterFromQuery(r *http.Request) (shift.Filter, error) {
	var filter shift.Filter

	start, err := queryDate(r, "start_date")
	if err != nil {
		return shift.Filter{}, err
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		return shift.Filter{}, err
	}
	if s := r.URL.Query().Get("status"); s != "" {
		st := shift.Status(s)
		filter.Status = &st
	}

	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}
