package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and the paid-leave
// balance ledger.
type LeaveService interface {
	// CreateRequest files a leave request. Paid leave is balance-checked here,
	// at creation time only; approval does not re-check.
	CreateRequest(ctx context.Context, req CreateRequest) (Leave, error)

	// ListMyRequests returns the authenticated employee's requests.
	ListMyRequests(ctx context.Context, filter Filter) ([]Leave, error)

	// ListAll returns requests across employees (admin).
	ListAll(ctx context.Context, filter Filter) ([]Leave, error)

	// Decide approves or rejects a pending request (admin). Deciding a
	// non-pending request fails with ErrAlreadyDecided.
	Decide(ctx context.Context, req DecisionRequest) (Leave, error)

	// Cancel cancels the authenticated employee's own pending request.
	Cancel(ctx context.Context, leaveID string) (Leave, error)

	// MyBalance returns the authenticated employee's paid-leave ledger state.
	MyBalance(ctx context.Context) (Balance, error)

	// BalanceOf returns any employee's ledger state (admin).
	BalanceOf(ctx context.Context, employeeID string) (Balance, error)

	// Allocate grants paid-leave days (admin). Expiry defaults to one year
	// after the effective date.
	Allocate(ctx context.Context, req AllocateRequest) (Allocation, error)
}
