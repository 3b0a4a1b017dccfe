package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	BalanceOf(w http.ResponseWriter, r *http.Request)
	Allocate(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.NewLeaveResponse(created))
}

// ListMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := leaveFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaves, err := h.leaveService.ListMyRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveResponses(leaves))
}

// ListAll implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	filter, err := leaveFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if id := r.URL.Query().Get("employee_id"); id != "" {
		filter.EmployeeID = &id
	}

	leaves, err := h.leaveService.ListAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveResponses(leaves))
}

// Decide implements LeaveHandler.
func (h *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecisionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveID = chi.URLParam(r, "id")

	decided, err := h.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request decided", leave.NewLeaveResponse(decided))
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	leaveID := chi.URLParam(r, "id")
	if leaveID == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	canceled, err := h.leaveService.Cancel(r.Context(), leaveID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request canceled", leave.NewLeaveResponse(canceled))
}

// MyBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.leaveService.MyBalance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// BalanceOf implements LeaveHandler.
func (h *LeaveHandlerImpl) BalanceOf(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	balance, err := h.leaveService.BalanceOf(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// Allocate implements LeaveHandler.
func (h *LeaveHandlerImpl) Allocate(w http.ResponseWriter, r *http.Request) {
	var req leave.AllocateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Allocate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	allocation, err := h.leaveService.Allocate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave days allocated", leave.NewAllocationResponse(allocation))
}

func leaveFilterFromQuery(r *http.Request) (leave.Filter, error) {
	var filter leave.Filter

	start, err := queryDate(r, "start_date")
	if err != nil {
		return leave.Filter{}, err
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		return leave.Filter{}, err
	}
	if s := r.URL.Query().Get("status"); s != "" {
		st := leave.Status(s)
		filter.Status = &st
	}

	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}
