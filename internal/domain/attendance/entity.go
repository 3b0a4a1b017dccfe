package attendance

import (
	"time"
)

// Record is one attendance day for one employee. A record opens on check-in
// and closes on check-out; total hours stay nil until the record is closed.
type Record struct {
	ID         string
	EmployeeID string

	CheckInTime    time.Time
	CheckOutTime   *time.Time
	BreakStartTime *time.Time
	BreakEndTime   *time.Time

	TotalWorkingHours *float64
	TotalBreakHours   *float64

	Memo *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Closed reports whether the record has a recorded check-out.
func (r Record) Closed() bool {
	return r.CheckOutTime != nil
}

type AdjustmentStatus string

const (
	AdjustmentStatusPending  AdjustmentStatus = "pending"
	AdjustmentStatusApproved AdjustmentStatus = "approved"
	AdjustmentStatusRejected AdjustmentStatus = "rejected"
)

// AdjustmentRequest asks an admin to overwrite the time bounds of an
// attendance record. The original bounds are captured at submission time so
// the change stays auditable.
type AdjustmentRequest struct {
	ID           string
	EmployeeID   string
	AdminID      *string
	AttendanceID *string

	RequestDate time.Time

	OriginalCheckIn     *time.Time
	OriginalCheckOut    *time.Time
	OriginalBreakStart  *time.Time
	OriginalBreakEnd    *time.Time
	RequestedCheckIn    *time.Time
	RequestedCheckOut   *time.Time
	RequestedBreakStart *time.Time
	RequestedBreakEnd   *time.Time

	Reason       string
	Status       AdjustmentStatus
	AdminComment *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
