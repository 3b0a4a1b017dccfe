package leave

import (
	"context"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	Update(ctx context.Context, l Leave) (Leave, error)
	List(ctx context.Context, filter Filter) ([]Leave, error)

	// ListByEmployee returns every leave request for one employee, any status.
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)

	CreateAllocation(ctx context.Context, a Allocation) (Allocation, error)
	ListAllocations(ctx context.Context, employeeID string) ([]Allocation, error)
}
