package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	Delete(ctx context.Context, id string) error

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Shift, error)
	List(ctx context.Context, filter Filter) ([]Shift, error)

	// ListConfirmedInMonth returns confirmed shifts dated inside the calendar
	// month, ordered by date.
	ListConfirmedInMonth(ctx context.Context, employeeID string, year, month int) ([]Shift, error)
}
