package leave

import (
	"time"
)

type Type string

const (
	TypePaid    Type = "paid"
	TypeUnpaid  Type = "unpaid"
	TypeSick    Type = "sick"
	TypeSpecial Type = "special"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

// Leave is one leave request over an inclusive date range. DaysCount is the
// weekday-only day count of the range, fixed when the request is created or
// its dates change.
type Leave struct {
	ID         string
	EmployeeID string
	AdminID    *string

	StartDate time.Time
	EndDate   time.Time
	DaysCount float64

	LeaveType    Type
	Reason       *string
	Status       Status
	AdminComment *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Allocation grants paid-leave days to an employee. Only allocations that have
// not expired contribute to the balance.
type Allocation struct {
	ID         string
	EmployeeID string

	AllocatedDays float64
	EffectiveDate time.Time
	ExpiryDate    *time.Time
	Reason        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance is the paid-leave ledger state for one employee.
type Balance struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	TotalAllocated float64 `json:"total_paid_leave"`
	Used           float64 `json:"used_paid_leave"`
	Remaining      float64 `json:"remaining_paid_leave"`
	Pending        float64 `json:"upcoming_paid_leave"`
}
