package shift

import (
	"context"
)

type ShiftService interface {
	// Create submits a shift preference for one date. A second submission for
	// the same date fails with ErrShiftExists.
	Create(ctx context.Context, req CreateRequest) (Shift, error)

	ListMyShifts(ctx context.Context, filter Filter) ([]Shift, error)
	ListAll(ctx context.Context, filter Filter) ([]Shift, error)

	// Decide confirms or rejects a pending shift (admin).
	Decide(ctx context.Context, req DecisionRequest) (Shift, error)

	// DeleteMyShift removes the authenticated employee's own pending shift.
	DeleteMyShift(ctx context.Context, shiftID string) error

	// Projection estimates the month's salary from confirmed shifts, applying
	// the same hour classification as payroll.
	Projection(ctx context.Context, employeeID string, year, month int) (Projection, error)
}
