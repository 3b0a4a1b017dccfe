package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDay returns the record whose check-in falls on the given
	// calendar day, if any.
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (Record, error)

	List(ctx context.Context, filter RecordFilter) ([]Record, error)

	// ListClosedInMonth returns the closed records (check-out recorded) whose
	// check-in falls inside the calendar month, ordered by check-in time.
	ListClosedInMonth(ctx context.Context, employeeID string, year, month int) ([]Record, error)

	CreateAdjustment(ctx context.Context, req AdjustmentRequest) (AdjustmentRequest, error)
	GetAdjustmentByID(ctx context.Context, id string) (AdjustmentRequest, error)
	UpdateAdjustment(ctx context.Context, req AdjustmentRequest) (AdjustmentRequest, error)
	ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentRequest, error)
}
