package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrAllocationNotFound  = errors.New("leave allocation not found")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrInsufficientBalance = errors.New("insufficient paid leave balance")
	ErrAlreadyDecided      = errors.New("leave request has already been approved or rejected")
	ErrNotLeaveOwner       = errors.New("leave request belongs to another employee")
)
