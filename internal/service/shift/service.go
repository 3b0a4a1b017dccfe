package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	payrollsvc "github.com/kintai-hq/kintai-backend-go/internal/service/payroll"
)

type ShiftServiceImpl struct {
	db           *database.DB
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	holidayRepo  payroll.HolidayRepository
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	holidayRepo payroll.HolidayRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:           db,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		holidayRepo:  holidayRepo,
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

func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateRequest) (shift.Shift, error) {
	if err := req.Validate(); err != nil {
		return shift.Shift{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.Shift{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	_, err = s.shiftRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err == nil {
		return shift.Shift{}, shift.ErrShiftExists
	}
	if !errors.Is(err, shift.ErrShiftNotFound) {
		return shift.Shift{}, err
	}

	availability := shift.AvailabilityAvailable
	if req.Availability != "" {
		availability = shift.Availability(req.Availability)
	}

	return s.shiftRepo.Create(ctx, shift.Shift{
		EmployeeID:   employeeID,
		Date:         date,
		Availability: availability,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Memo:         req.Memo,
		Status:       shift.StatusPending,
	})
}

func (s *ShiftServiceImpl) ListMyShifts(ctx context.Context, filter shift.Filter) ([]shift.Shift, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = &employeeID
	return s.shiftRepo.List(ctx, filter)
}

func (s *ShiftServiceImpl) ListAll(ctx context.Context, filter shift.Filter) ([]shift.Shift, error) {
	return s.shiftRepo.List(ctx, filter)
}

func (s *ShiftServiceImpl) Decide(ctx context.Context, req shift.DecisionRequest) (shift.Shift, error) {
	if err := req.Validate(); err != nil {
		return shift.Shift{}, err
	}

	adminID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.Shift{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.Shift{}, err
	}
	if sh.Status != shift.StatusPending {
		return shift.Shift{}, shift.ErrShiftAlreadyDecided
	}

	sh.Status = shift.Status(req.Status)
	sh.AdminID = &adminID
	sh.AdminComment = req.AdminComment
	return s.shiftRepo.Update(ctx, sh)
}

func (s *ShiftServiceImpl) DeleteMyShift(ctx context.Context, shiftID string) error {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if sh.EmployeeID != employeeID {
		return shift.ErrNotShiftOwner
	}
	if sh.Status != shift.StatusPending {
		return shift.ErrShiftAlreadyDecided
	}

	return s.shiftRepo.Delete(ctx, shiftID)
}

// Projection estimates next month's salary from confirmed shifts, running the
// planned intervals through the same classification the payroll batch uses.
func (s *ShiftServiceImpl) Projection(ctx context.Context, employeeID string, year, month int) (shift.Projection, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return shift.Projection{}, err
	}

	settings, err := s.payrollRepo.GetSettings(ctx)
	if errors.Is(err, payroll.ErrSettingsNotFound) {
		settings = payroll.DefaultSettings()
	} else if err != nil {
		return shift.Projection{}, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)
	holidays, err := s.holidayRepo.ListInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return shift.Projection{}, err
	}
	holidayDates := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayDates[h.Date.Format("2006-01-02")] = true
	}

	shifts, err := s.shiftRepo.ListConfirmedInMonth(ctx, employeeID, year, month)
	if err != nil {
		return shift.Projection{}, err
	}

	calc := payrollsvc.NewCalculator(settings)
	days := make([]payrollsvc.DayBuckets, 0, len(shifts))
	for _, sh := range shifts {
		start, end, ok := sh.Interval()
		if !ok {
			continue
		}
		hours := end.Sub(start).Hours()

		// A planned shift classifies like a closed attendance record without
		// breaks.
		rec := attendance.Record{
			EmployeeID:        employeeID,
			CheckInTime:       start,
			CheckOutTime:      &end,
			TotalWorkingHours: &hours,
		}
		days = append(days, calc.ClassifyDay(rec, holidayDates[start.Format("2006-01-02")]))
	}

	totals := calc.Totals(days)
	pay := calc.Pay(emp.HourlyRate, totals)

	return shift.Projection{
		EmployeeID:      employeeID,
		Year:            year,
		Month:           month,
		ConfirmedShifts: len(shifts),
		PlannedHours:    totals.RegularHours + totals.OvertimeHours + totals.HolidayHours,
		EstimatedSalary: pay.GrossPay,
	}, nil
}
