package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's attendance record for the authenticated employee.
	// At most one record may exist per employee per calendar day.
	CheckIn(ctx context.Context, req CheckInRequest) (Record, error)

	// CheckOut closes a record and computes worked/break hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (Record, error)

	// ListMyRecords returns the authenticated employee's records.
	ListMyRecords(ctx context.Context, filter RecordFilter) ([]Record, error)

	// ListMonthlyRecords returns one month of the authenticated employee's records.
	ListMonthlyRecords(ctx context.Context, year, month int) ([]Record, error)

	// ListAll returns records across employees (admin).
	ListAll(ctx context.Context, filter RecordFilter) ([]Record, error)

	// CreateAdjustment files a time-adjustment request, capturing the target
	// record's current bounds.
	CreateAdjustment(ctx context.Context, req AdjustmentCreateRequest) (AdjustmentRequest, error)

	// ListMyAdjustments returns the authenticated employee's adjustment requests.
	ListMyAdjustments(ctx context.Context, status *AdjustmentStatus) ([]AdjustmentRequest, error)

	// ListAdjustments returns adjustment requests across employees (admin).
	ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentRequest, error)

	// DecideAdjustment approves or rejects a pending request. Approval
	// overwrites the target record's bounds and recomputes its hours; this is
	// the only mutation path for a closed record.
	DecideAdjustment(ctx context.Context, req AdjustmentDecisionRequest) (AdjustmentRequest, error)
}
