package attendance

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	CheckInTime    string  `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
	Memo           *string `json:"memo,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckInTime) {
		errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time is required"})
	} else if _, ok := validator.IsValidDateTime(r.CheckInTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "must be an ISO8601 timestamp"})
	}

	for field, value := range map[string]*string{
		"check_out_time":   r.CheckOutTime,
		"break_start_time": r.BreakStartTime,
		"break_end_time":   r.BreakEndTime,
	} {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidDateTime(*value); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	AttendanceID   string  `json:"attendance_id"`
	CheckOutTime   string  `json:"check_out_time"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
	Memo           *string `json:"memo,omitempty"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{Field: "attendance_id", Message: "attendance_id is required"})
	}
	if validator.IsEmpty(r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time is required"})
	} else if _, ok := validator.IsValidDateTime(r.CheckOutTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "must be an ISO8601 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
}

type AdjustmentCreateRequest struct {
	AttendanceID        *string `json:"attendance_id,omitempty"`
	RequestDate         string  `json:"request_date"`
	RequestedCheckIn    *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut   *string `json:"requested_check_out,omitempty"`
	RequestedBreakStart *string `json:"requested_break_start,omitempty"`
	RequestedBreakEnd   *string `json:"requested_break_end,omitempty"`
	Reason              string  `json:"reason"`
}

func (r AdjustmentCreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if validator.IsEmpty(r.RequestDate) {
		errs = append(errs, validator.ValidationError{Field: "request_date", Message: "request_date is required"})
	} else if _, ok := validator.IsValidDate(r.RequestDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "request_date", Message: "must be YYYY-MM-DD"})
	}

	for field, value := range map[string]*string{
		"requested_check_in":    r.RequestedCheckIn,
		"requested_check_out":   r.RequestedCheckOut,
		"requested_break_start": r.RequestedBreakStart,
		"requested_break_end":   r.RequestedBreakEnd,
	} {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidDateTime(*value); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentDecisionRequest struct {
	RequestID    string  `json:"-"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
}

func (r AdjustmentDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(AdjustmentStatusApproved), string(AdjustmentStatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be approved or rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentFilter struct {
	EmployeeID *string
	Status     *AdjustmentStatus
}

type RecordResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	CheckInTime       string   `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	BreakStartTime    *string  `json:"break_start_time,omitempty"`
	BreakEndTime      *string  `json:"break_end_time,omitempty"`
	TotalWorkingHours *float64 `json:"total_working_hours,omitempty"`
	TotalBreakHours   *float64 `json:"total_break_hours,omitempty"`
	Memo              *string  `json:"memo,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		CheckInTime:       r.CheckInTime.Format(time.RFC3339),
		CheckOutTime:      formatTimePtr(r.CheckOutTime),
		BreakStartTime:    formatTimePtr(r.BreakStartTime),
		BreakEndTime:      formatTimePtr(r.BreakEndTime),
		TotalWorkingHours: r.TotalWorkingHours,
		TotalBreakHours:   r.TotalBreakHours,
		Memo:              r.Memo,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
}

func NewRecordResponses(records []Record) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, NewRecordResponse(r))
	}
	return responses
}

type AdjustmentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	AdminID      *string `json:"admin_id,omitempty"`
	AttendanceID *string `json:"attendance_id,omitempty"`
	RequestDate  string  `json:"request_date"`

	OriginalCheckIn     *string `json:"original_check_in,omitempty"`
	OriginalCheckOut    *string `json:"original_check_out,omitempty"`
	OriginalBreakStart  *string `json:"original_break_start,omitempty"`
	OriginalBreakEnd    *string `json:"original_break_end,omitempty"`
	RequestedCheckIn    *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut   *string `json:"requested_check_out,omitempty"`
	RequestedBreakStart *string `json:"requested_break_start,omitempty"`
	RequestedBreakEnd   *string `json:"requested_break_end,omitempty"`

	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewAdjustmentResponse(a AdjustmentRequest) AdjustmentResponse {
	return AdjustmentResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		EmployeeName:        a.EmployeeName,
		AdminID:             a.AdminID,
		AttendanceID:        a.AttendanceID,
		RequestDate:         a.RequestDate.Format("2006-01-02"),
		OriginalCheckIn:     formatTimePtr(a.OriginalCheckIn),
		OriginalCheckOut:    formatTimePtr(a.OriginalCheckOut),
		OriginalBreakStart:  formatTimePtr(a.OriginalBreakStart),
		OriginalBreakEnd:    formatTimePtr(a.OriginalBreakEnd),
		RequestedCheckIn:    formatTimePtr(a.RequestedCheckIn),
		RequestedCheckOut:   formatTimePtr(a.RequestedCheckOut),
		RequestedBreakStart: formatTimePtr(a.RequestedBreakStart),
		RequestedBreakEnd:   formatTimePtr(a.RequestedBreakEnd),
		Reason:              a.Reason,
		Status:              string(a.Status),
		AdminComment:        a.AdminComment,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
}

func NewAdjustmentResponses(adjustments []AdjustmentRequest) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		responses = append(responses, NewAdjustmentResponse(a))
	}
	return responses
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
