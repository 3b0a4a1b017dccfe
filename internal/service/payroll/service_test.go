package payroll

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

// Stubs embed their interface so only the methods a test path touches need
// implementations.

type stubPayrollRepo struct {
	payroll.PayrollRepository
	existing map[string]payroll.Payslip // keyed by employee ID
	byID     map[string]payroll.Payslip
	created  []payroll.Payslip
	updated  []payroll.Payslip
}

func (s *stubPayrollRepo) GetPayslipByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) (payroll.Payslip, error) {
	if p, ok := s.existing[employeeID]; ok {
		return p, nil
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (s *stubPayrollRepo) GetPayslipByID(ctx context.Context, id string) (payroll.Payslip, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (s *stubPayrollRepo) CreatePayslip(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	s.created = append(s.created, p)
	return p, nil
}

func (s *stubPayrollRepo) UpdatePayslip(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	s.updated = append(s.updated, p)
	return p, nil
}

func (s *stubPayrollRepo) GetSettings(ctx context.Context) (payroll.Settings, error) {
	return payroll.Settings{}, payroll.ErrSettingsNotFound
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range s.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return s.employees, nil
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	records map[string][]attendance.Record
}

func (s *stubAttendanceRepo) ListClosedInMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Record, error) {
	return s.records[employeeID], nil
}

type stubHolidayRepo struct {
	payroll.HolidayRepository
}

func (s *stubHolidayRepo) ListInRange(ctx context.Context, start, end time.Time) ([]payroll.Holiday, error) {
	return nil, nil
}

type stubLeaveRepo struct {
	leave.LeaveRepository
}

func (s *stubLeaveRepo) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	return nil, nil
}

func newTestService(payrollRepo *stubPayrollRepo, empRepo *stubEmployeeRepo, attRepo *stubAttendanceRepo) payroll.PayrollService {
	return NewPayrollService(nil, payrollRepo, &fakeRateRepo{}, &stubHolidayRepo{}, attRepo, &stubLeaveRepo{}, empRepo)
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("employee_id", employeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func closedRecord(employeeID string, checkIn, checkOut time.Time, breakHours, workedHours float64, memo string) attendance.Record {
	rec := attendance.Record{
		EmployeeID:        employeeID,
		CheckInTime:       checkIn,
		CheckOutTime:      &checkOut,
		TotalBreakHours:   &breakHours,
		TotalWorkingHours: &workedHours,
	}
	if memo != "" {
		rec.Memo = &memo
	}
	return rec
}

// A batch recompute keeps the admin-entered allowance and resident tax on the
// existing draft and folds them into the gross and deduction totals.
func TestCalculate_KeepsAdminEnteredAmounts(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FullName: "Sato Yuki", HourlyRate: 1500, IsActive: true}
	payrollRepo := &stubPayrollRepo{
		existing: map[string]payroll.Payslip{
			"emp-1": {
				ID:              "slip-1",
				EmployeeID:      "emp-1",
				Year:            2024,
				Month:           6,
				Status:          payroll.PayslipStatusDraft,
				OtherAllowances: 5000,
				ResidentTax:     8000,
				OtherDeductions: 1200,
			},
		},
	}
	attRepo := &stubAttendanceRepo{records: map[string][]attendance.Record{
		"emp-1": {closedRecord("emp-1",
			time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local),
			time.Date(2024, 6, 3, 18, 0, 0, 0, time.Local),
			1.0, 8.0, "")},
	}}
	svc := newTestService(payrollRepo, &stubEmployeeRepo{employees: []employee.Employee{emp}}, attRepo)

	report, err := svc.Calculate(context.Background(), payroll.CalculateRequest{Year: 2024, Month: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, report.UpdatedCount)
	require.Len(t, payrollRepo.updated, 1)

	p := payrollRepo.updated[0]
	assert.Equal(t, 8.0, p.TotalHours)
	assert.Equal(t, int64(12000), p.BasePay)
	assert.Equal(t, int64(5000), p.OtherAllowances)
	// gross = base 12000 + allowance 5000
	assert.Equal(t, int64(17000), p.GrossPay)
	assert.Equal(t, int64(8000), p.ResidentTax)
	assert.Equal(t, int64(1200), p.OtherDeductions)
	// insurance on 17000: health 850, pension 1555, employment 51; tax 0
	assert.Equal(t, int64(11656), p.TotalDeductions)
	assert.Equal(t, int64(5344), p.NetPay)
}

// Confirmed payslips are left alone, and the report names whose payslip was
// skipped.
func TestCalculate_SkipReportNamesEmployee(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FullName: "Sato Yuki", HourlyRate: 1500, IsActive: true}
	payrollRepo := &stubPayrollRepo{
		existing: map[string]payroll.Payslip{
			"emp-1": {ID: "slip-1", EmployeeID: "emp-1", Status: payroll.PayslipStatusConfirmed},
		},
	}
	svc := newTestService(payrollRepo, &stubEmployeeRepo{employees: []employee.Employee{emp}}, &stubAttendanceRepo{})

	report, err := svc.Calculate(context.Background(), payroll.CalculateRequest{Year: 2024, Month: 6})
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedCount)
	assert.Equal(t, 0, report.ErrorCount)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "emp-1", report.Skipped[0].EmployeeID)
	assert.Equal(t, "Sato Yuki", report.Skipped[0].EmployeeName)
	assert.NotEmpty(t, report.Skipped[0].Message)
	assert.Empty(t, payrollRepo.updated)
	assert.Empty(t, payrollRepo.created)
}

// Editing a draft applies the allowance and resident tax and recomputes every
// derived amount from them.
func TestUpdatePayslip_AppliesAllowanceAndResidentTax(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FullName: "Sato Yuki", HourlyRate: 1500}
	payrollRepo := &stubPayrollRepo{
		byID: map[string]payroll.Payslip{
			"slip-1": {
				ID:           "slip-1",
				EmployeeID:   "emp-1",
				Year:         2024,
				Month:        6,
				Status:       payroll.PayslipStatusDraft,
				WorkDays:     1,
				TotalHours:   8.0,
				RegularHours: 8.0,
			},
		},
	}
	svc := newTestService(payrollRepo, &stubEmployeeRepo{employees: []employee.Employee{emp}}, &stubAttendanceRepo{})

	allowance := int64(3000)
	residentTax := int64(5000)
	totalHours := 9.5
	p, err := svc.UpdatePayslip(context.Background(), payroll.UpdatePayslipRequest{
		PayslipID:       "slip-1",
		TotalHours:      &totalHours,
		OtherAllowances: &allowance,
		ResidentTax:     &residentTax,
	})
	require.NoError(t, err)

	assert.Equal(t, 9.5, p.TotalHours)
	assert.Equal(t, int64(3000), p.OtherAllowances)
	// gross = base 12000 + allowance 3000
	assert.Equal(t, int64(15000), p.GrossPay)
	assert.Equal(t, int64(5000), p.ResidentTax)
	// insurance on 15000: health 750, pension 1372, employment 45; tax 0
	assert.Equal(t, int64(7167), p.TotalDeductions)
	assert.Equal(t, int64(7833), p.NetPay)
}

// The monthly summary prices the classified hours the same way the payslip
// batch would, so the estimate matches a batch gross without allowances.
func TestMonthlyStats_EstimatedSalary(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FullName: "Sato Yuki", HourlyRate: 1500}
	attRepo := &stubAttendanceRepo{records: map[string][]attendance.Record{
		"emp-1": {
			closedRecord("emp-1",
				time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local),
				time.Date(2024, 6, 3, 18, 0, 0, 0, time.Local),
				1.0, 8.0, ""),
			closedRecord("emp-1",
				time.Date(2024, 6, 4, 9, 0, 0, 0, time.Local),
				time.Date(2024, 6, 4, 20, 0, 0, 0, time.Local),
				1.0, 10.0, ""),
		},
	}}
	svc := newTestService(&stubPayrollRepo{}, &stubEmployeeRepo{employees: []employee.Employee{emp}}, attRepo)

	stats, err := svc.MonthlyStats(context.Background(), "emp-1", 2024, 6)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.WorkDays)
	assert.Equal(t, 18.0, stats.TotalHours)
	assert.Equal(t, 16.0, stats.RegularHours)
	assert.Equal(t, 2.0, stats.OvertimeHours)
	// base 16h*1500 + overtime 2h*1500*1.25
	assert.Equal(t, int64(27750), stats.EstimatedSalary)
}

// The personal CSV lists each attendance day and closes with the month summary
// and a pay estimate from the hourly rate.
func TestExportMyCSV_DayRowsAndSummary(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FullName: "Sato Yuki", HourlyRate: 1200}
	attRepo := &stubAttendanceRepo{records: map[string][]attendance.Record{
		"emp-1": {
			closedRecord("emp-1",
				time.Date(2024, 6, 4, 9, 0, 0, 0, time.Local),
				time.Date(2024, 6, 4, 20, 0, 0, 0, time.Local),
				1.0, 10.0, ""),
			closedRecord("emp-1",
				time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local),
				time.Date(2024, 6, 3, 18, 0, 0, 0, time.Local),
				1.0, 8.0, "shift swap"),
		},
	}}
	svc := newTestService(&stubPayrollRepo{}, &stubEmployeeRepo{employees: []employee.Employee{emp}}, attRepo)

	data, err := svc.ExportMyCSV(authedContext(t, "emp-1"), 2024, 6)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// Blank separator lines are dropped by the reader.
	require.Len(t, rows, 14)
	assert.Equal(t, []string{"Pay statement 2024-06"}, rows[0])
	assert.Equal(t, []string{"employee_name", "Sato Yuki"}, rows[1])
	assert.Equal(t, []string{"employee_id", "emp-1"}, rows[2])
	assert.Equal(t, []string{"hourly_rate", "1200"}, rows[3])
	assert.Equal(t, []string{"date", "check_in", "check_out", "break_hours", "working_hours", "memo"}, rows[4])
	// Day rows come out ordered by check-in.
	assert.Equal(t, []string{"2024-06-03", "09:00", "18:00", "1.00", "8.00", "shift swap"}, rows[5])
	assert.Equal(t, []string{"2024-06-04", "09:00", "20:00", "1.00", "10.00", ""}, rows[6])
	assert.Equal(t, []string{"total_work_days", "2"}, rows[7])
	assert.Equal(t, []string{"total_hours", "18.00"}, rows[8])
	// Regular quota is 2 days * 8h; the 2h above it count as overtime.
	assert.Equal(t, []string{"regular_hours", "16.00"}, rows[9])
	assert.Equal(t, []string{"overtime_hours", "2.00"}, rows[10])
	assert.Equal(t, []string{"base_pay", "19200"}, rows[11])
	assert.Equal(t, []string{"overtime_pay", "3000"}, rows[12])
	assert.Equal(t, []string{"total_pay", "22200"}, rows[13])
}

func TestExportMyCSV_PayEstimate(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FullName: "Sato Yuki", HourlyRate: 1200}
	attRepo := &stubAttendanceRepo{records: map[string][]attendance.Record{
		"emp-1": {
			closedRecord("emp-1",
				time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local),
				time.Date(2024, 6, 3, 19, 0, 0, 0, time.Local),
				1.0, 9.0, ""),
		},
	}}
	svc := newTestService(&stubPayrollRepo{}, &stubEmployeeRepo{employees: []employee.Employee{emp}}, attRepo)

	data, err := svc.ExportMyCSV(authedContext(t, "emp-1"), 2024, 6)
	require.NoError(t, err)

	lines := string(data)
	// 8h regular at 1200 and 1h overtime at 1.25x
	assert.Contains(t, lines, "base_pay,9600\n")
	assert.Contains(t, lines, "overtime_pay,1500\n")
	assert.Contains(t, lines, "total_pay,11100\n")
}
