package shift

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Date         string  `json:"date"`
	Availability string  `json:"availability"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	Memo         *string `json:"memo,omitempty"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}

	if r.Availability != "" && !validator.IsInSlice(r.Availability, []string{
		string(AvailabilityAvailable), string(AvailabilityUnavailable),
		string(AvailabilityPrefer), string(AvailabilityPreferNot), string(AvailabilityAny),
	}) {
		errs = append(errs, validator.ValidationError{Field: "availability", Message: "invalid availability"})
	}

	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	ShiftID      string  `json:"-"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
}

func (r DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusConfirmed), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be confirmed or rejected"})
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

type ShiftResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	AdminID      *string `json:"admin_id,omitempty"`
	Date         string  `json:"date"`
	Availability string  `json:"availability"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	Memo         *string `json:"memo,omitempty"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		AdminID:      s.AdminID,
		Date:         s.Date.Format("2006-01-02"),
		Availability: string(s.Availability),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Memo:         s.Memo,
		Status:       string(s.Status),
		AdminComment: s.AdminComment,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewShiftResponses(shifts []Shift) []ShiftResponse {
	responses := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		responses = append(responses, NewShiftResponse(s))
	}
	return responses
}

// Projection is an estimated-salary preview built from confirmed shifts.
type Projection struct {
	EmployeeID      string  `json:"employee_id"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	ConfirmedShifts int     `json:"confirmed_shifts"`
	PlannedHours    float64 `json:"planned_hours"`
	EstimatedSalary int64   `json:"estimated_salary"`
}
