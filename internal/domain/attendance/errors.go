package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidInterval  = errors.New("check-out must be after check-in and the break must fall inside the worked interval")
	ErrAlreadyCheckedIn = errors.New("an attendance record already exists for today")
	ErrNotCheckedIn     = errors.New("no open attendance record to close")
	ErrAlreadyClosed    = errors.New("attendance record is already checked out")
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrNotRecordOwner   = errors.New("attendance record belongs to another employee")

	ErrAdjustmentNotFound       = errors.New("time adjustment request not found")
	ErrAdjustmentAlreadyDecided = errors.New("time adjustment request has already been approved or rejected")
)
