package leave

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	LeaveType string  `json:"leave_type"`
	Reason    *string `json:"reason,omitempty"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if !validator.IsInSlice(r.LeaveType, []string{
		string(TypePaid), string(TypeUnpaid), string(TypeSick), string(TypeSpecial),
	}) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "invalid leave type"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	LeaveID      string  `json:"-"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
}

func (r DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be approved or rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AllocateRequest struct {
	EmployeeID    string  `json:"employee_id"`
	AllocatedDays float64 `json:"allocated_days"`
	EffectiveDate string  `json:"effective_date"`
	Reason        *string `json:"reason,omitempty"`
}

func (r AllocateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.AllocatedDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "allocated_days", Message: "must be greater than zero"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *string
	Status     *Status
	StartDate  *time.Time
	EndDate    *time.Time
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	AdminID      *string `json:"admin_id,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DaysCount    float64 `json:"days_count"`
	LeaveType    string  `json:"leave_type"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		AdminID:      l.AdminID,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		DaysCount:    l.DaysCount,
		LeaveType:    string(l.LeaveType),
		Reason:       l.Reason,
		Status:       string(l.Status),
		AdminComment: l.AdminComment,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

func NewLeaveResponses(leaves []Leave) []LeaveResponse {
	responses := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, NewLeaveResponse(l))
	}
	return responses
}

type AllocationResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	AllocatedDays float64 `json:"allocated_days"`
	EffectiveDate string  `json:"effective_date"`
	ExpiryDate    *string `json:"expiry_date,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewAllocationResponse(a Allocation) AllocationResponse {
	resp := AllocationResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		AllocatedDays: a.AllocatedDays,
		EffectiveDate: a.EffectiveDate.Format("2006-01-02"),
		Reason:        a.Reason,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
	if a.ExpiryDate != nil {
		expiry := a.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &expiry
	}
	return resp
}
