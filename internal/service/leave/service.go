package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	db           *database.DB
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(db *database.DB, leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:           db,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

// Helper to get employee_id and role from JWT context
func getClaimsFromContext(ctx context.Context) (employeeID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	role, _ = claims["role"].(string)

	return employeeID, role, nil
}

func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.Leave{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	days := leave.CountLeaveDays(start, end)

	// Paid leave is balance-checked at request time only. Pending requests do
	// not reserve days, so parallel requests can each pass this check.
	if leave.Type(req.LeaveType) == leave.TypePaid {
		balance, err := s.balanceFor(ctx, employeeID)
		if err != nil {
			return leave.Leave{}, err
		}
		if balance.Remaining < days {
			return leave.Leave{}, leave.ErrInsufficientBalance
		}
	}

	return s.leaveRepo.Create(ctx, leave.Leave{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		DaysCount:  days,
		LeaveType:  leave.Type(req.LeaveType),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
}

func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = &employeeID
	return s.leaveRepo.List(ctx, filter)
}

func (s *LeaveServiceImpl) ListAll(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	return s.leaveRepo.List(ctx, filter)
}

func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecisionRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	adminID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.Leave{}, err
	}

	l, err := s.leaveRepo.GetByID(ctx, req.LeaveID)
	if err != nil {
		return leave.Leave{}, err
	}
	if l.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrAlreadyDecided
	}

	l.Status = leave.Status(req.Status)
	l.AdminID = &adminID
	l.AdminComment = req.AdminComment
	return s.leaveRepo.Update(ctx, l)
}

func (s *LeaveServiceImpl) Cancel(ctx context.Context, leaveID string) (leave.Leave, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.Leave{}, err
	}

	l, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.Leave{}, err
	}
	if l.EmployeeID != employeeID {
		return leave.Leave{}, leave.ErrNotLeaveOwner
	}
	if l.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrAlreadyDecided
	}

	l.Status = leave.StatusCanceled
	return s.leaveRepo.Update(ctx, l)
}

func (s *LeaveServiceImpl) MyBalance(ctx context.Context) (leave.Balance, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.Balance{}, err
	}
	return s.balanceFor(ctx, employeeID)
}

func (s *LeaveServiceImpl) BalanceOf(ctx context.Context, employeeID string) (leave.Balance, error) {
	return s.balanceFor(ctx, employeeID)
}

func (s *LeaveServiceImpl) Allocate(ctx context.Context, req leave.AllocateRequest) (leave.Allocation, error) {
	if err := req.Validate(); err != nil {
		return leave.Allocation{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Allocation{}, err
	}

	effective, _ := time.Parse("2006-01-02", req.EffectiveDate)
	expiry := effective.AddDate(1, 0, 0)
	return s.leaveRepo.CreateAllocation(ctx, leave.Allocation{
		EmployeeID:    req.EmployeeID,
		AllocatedDays: req.AllocatedDays,
		EffectiveDate: effective,
		ExpiryDate:    &expiry,
		Reason:        req.Reason,
	})
}

func (s *LeaveServiceImpl) balanceFor(ctx context.Context, employeeID string) (leave.Balance, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}

	allocations, err := s.leaveRepo.ListAllocations(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}
	leaves, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}

	balance := leave.ComputeBalance(allocations, leaves, time.Now())
	balance.EmployeeID = emp.ID
	balance.EmployeeName = emp.FullName
	return balance, nil
}
