package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(db *database.DB, attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
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

func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.Record{}, err
	}

	checkIn, _ := time.Parse(time.RFC3339, req.CheckInTime)

	_, err = s.attendanceRepo.GetByEmployeeAndDay(ctx, employeeID, checkIn)
	if err == nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.Record{}, err
	}

	rec := attendance.Record{
		EmployeeID:     employeeID,
		CheckInTime:    checkIn,
		CheckOutTime:   parseOptionalTime(req.CheckOutTime),
		BreakStartTime: parseOptionalTime(req.BreakStartTime),
		BreakEndTime:   parseOptionalTime(req.BreakEndTime),
		Memo:           req.Memo,
	}

	// A full record submitted in one shot closes immediately.
	if rec.CheckOutTime != nil {
		if err := closeRecord(&rec); err != nil {
			return attendance.Record{}, err
		}
	}

	return s.attendanceRepo.Create(ctx, rec)
}

func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.Record{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.Record{}, err
	}
	if rec.EmployeeID != employeeID {
		return attendance.Record{}, attendance.ErrNotRecordOwner
	}
	if rec.Closed() {
		return attendance.Record{}, attendance.ErrAlreadyClosed
	}

	checkOut, _ := time.Parse(time.RFC3339, req.CheckOutTime)
	rec.CheckOutTime = &checkOut
	if req.BreakStartTime != nil {
		rec.BreakStartTime = parseOptionalTime(req.BreakStartTime)
	}
	if req.BreakEndTime != nil {
		rec.BreakEndTime = parseOptionalTime(req.BreakEndTime)
	}
	if req.Memo != nil {
		rec.Memo = req.Memo
	}

	if err := closeRecord(&rec); err != nil {
		return attendance.Record{}, err
	}

	return s.attendanceRepo.Update(ctx, rec)
}

func (s *AttendanceServiceImpl) ListMyRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = employeeID
	return s.attendanceRepo.List(ctx, filter)
}

func (s *AttendanceServiceImpl) ListMonthlyRecords(ctx context.Context, year, month int) ([]attendance.Record, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.attendanceRepo.List(ctx, attendance.RecordFilter{
		EmployeeID: employeeID,
		StartDate:  &start,
		EndDate:    &end,
	})
}

func (s *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	return s.attendanceRepo.List(ctx, filter)
}

func (s *AttendanceServiceImpl) CreateAdjustment(ctx context.Context, req attendance.AdjustmentCreateRequest) (attendance.AdjustmentRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.AdjustmentRequest{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AdjustmentRequest{}, err
	}

	requestDate, _ := time.Parse("2006-01-02", req.RequestDate)
	adj := attendance.AdjustmentRequest{
		EmployeeID:          employeeID,
		AttendanceID:        req.AttendanceID,
		RequestDate:         requestDate,
		RequestedCheckIn:    parseOptionalTime(req.RequestedCheckIn),
		RequestedCheckOut:   parseOptionalTime(req.RequestedCheckOut),
		RequestedBreakStart: parseOptionalTime(req.RequestedBreakStart),
		RequestedBreakEnd:   parseOptionalTime(req.RequestedBreakEnd),
		Reason:              req.Reason,
		Status:              attendance.AdjustmentStatusPending,
	}

	// Capture the record's current bounds so the change stays auditable.
	if req.AttendanceID != nil {
		rec, err := s.attendanceRepo.GetByID(ctx, *req.AttendanceID)
		if err != nil {
			return attendance.AdjustmentRequest{}, err
		}
		if rec.EmployeeID != employeeID {
			return attendance.AdjustmentRequest{}, attendance.ErrNotRecordOwner
		}
		checkIn := rec.CheckInTime
		adj.OriginalCheckIn = &checkIn
		adj.OriginalCheckOut = rec.CheckOutTime
		adj.OriginalBreakStart = rec.BreakStartTime
		adj.OriginalBreakEnd = rec.BreakEndTime
	}

	return s.attendanceRepo.CreateAdjustment(ctx, adj)
}

func (s *AttendanceServiceImpl) ListMyAdjustments(ctx context.Context, status *attendance.AdjustmentStatus) ([]attendance.AdjustmentRequest, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListAdjustments(ctx, attendance.AdjustmentFilter{
		EmployeeID: &employeeID,
		Status:     status,
	})
}

func (s *AttendanceServiceImpl) ListAdjustments(ctx context.Context, filter attendance.AdjustmentFilter) ([]attendance.AdjustmentRequest, error) {
	return s.attendanceRepo.ListAdjustments(ctx, filter)
}

func (s *AttendanceServiceImpl) DecideAdjustment(ctx context.Context, req attendance.AdjustmentDecisionRequest) (attendance.AdjustmentRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.AdjustmentRequest{}, err
	}

	adminID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AdjustmentRequest{}, err
	}

	adj, err := s.attendanceRepo.GetAdjustmentByID(ctx, req.RequestID)
	if err != nil {
		return attendance.AdjustmentRequest{}, err
	}
	if adj.Status != attendance.AdjustmentStatusPending {
		return attendance.AdjustmentRequest{}, attendance.ErrAdjustmentAlreadyDecided
	}

	adj.Status = attendance.AdjustmentStatus(req.Status)
	adj.AdminID = &adminID
	adj.AdminComment = req.AdminComment

	var updated attendance.AdjustmentRequest
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if adj.Status == attendance.AdjustmentStatusApproved && adj.AttendanceID != nil {
			if err := s.applyAdjustment(ctx, adj); err != nil {
				return err
			}
		}

		updated, err = s.attendanceRepo.UpdateAdjustment(ctx, adj)
		return err
	})
	if err != nil {
		return attendance.AdjustmentRequest{}, err
	}

	return updated, nil
}

// applyAdjustment overwrites the target record's bounds with the requested
// ones and recomputes its hours. This is the only mutation path for a closed
// record.
func (s *AttendanceServiceImpl) applyAdjustment(ctx context.Context, adj attendance.AdjustmentRequest) error {
	rec, err := s.attendanceRepo.GetByID(ctx, *adj.AttendanceID)
	if err != nil {
		return err
	}

	if adj.RequestedCheckIn != nil {
		rec.CheckInTime = *adj.RequestedCheckIn
	}
	if adj.RequestedCheckOut != nil {
		rec.CheckOutTime = adj.RequestedCheckOut
	}
	if adj.RequestedBreakStart != nil {
		rec.BreakStartTime = adj.RequestedBreakStart
	}
	if adj.RequestedBreakEnd != nil {
		rec.BreakEndTime = adj.RequestedBreakEnd
	}

	if rec.CheckOutTime != nil {
		if err := closeRecord(&rec); err != nil {
			return err
		}
	}

	_, err = s.attendanceRepo.Update(ctx, rec)
	return err
}

// closeRecord computes and stores worked and break hours.
func closeRecord(rec *attendance.Record) error {
	worked, brk, err := attendance.ComputeHours(rec.CheckInTime, *rec.CheckOutTime, rec.BreakStartTime, rec.BreakEndTime)
	if err != nil {
		return err
	}
	rec.TotalWorkingHours = &worked
	rec.TotalBreakHours = &brk
	return nil
}

func parseOptionalTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
