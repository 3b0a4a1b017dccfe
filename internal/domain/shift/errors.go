package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrShiftExists         = errors.New("a shift already exists for this date")
	ErrShiftAlreadyDecided = errors.New("shift has already been confirmed or rejected")
	ErrNotShiftOwner       = errors.New("shift belongs to another employee")
)
