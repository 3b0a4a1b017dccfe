package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	rateRepo       payroll.RateRepository
	holidayRepo    payroll.HolidayRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
	deductions     *DeductionCalculator
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	rateRepo payroll.RateRepository,
	holidayRepo payroll.HolidayRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		rateRepo:       rateRepo,
		holidayRepo:    holidayRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		deductions:     NewDeductionCalculator(rateRepo),
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

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CalculateReport, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateReport{}, err
	}

	var employees []employee.Employee
	var err error
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.ListByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.ListActive(ctx)
	}
	if err != nil {
		return payroll.CalculateReport{}, err
	}

	settings, err := s.settingsOrDefault(ctx)
	if err != nil {
		return payroll.CalculateReport{}, err
	}

	monthStart, monthEnd := monthBounds(req.Year, req.Month)
	holidays, err := s.holidayDates(ctx, monthStart, monthEnd)
	if err != nil {
		return payroll.CalculateReport{}, err
	}

	calc := NewCalculator(settings)
	report := payroll.CalculateReport{
		Year:    req.Year,
		Month:   req.Month,
		Skipped: []payroll.CalculateError{},
		Errors:  []payroll.CalculateError{},
	}

	for _, emp := range employees {
		created, err := s.calculateOne(ctx, emp, req.Year, req.Month, settings, calc, holidays, monthEnd)
		switch {
		case errors.Is(err, errPayslipLocked):
			report.SkippedCount++
			report.Skipped = append(report.Skipped, payroll.CalculateError{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Message:      err.Error(),
			})
		case err != nil:
			report.ErrorCount++
			report.Errors = append(report.Errors, payroll.CalculateError{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Message:      err.Error(),
			})
		case created:
			report.CreatedCount++
		default:
			report.UpdatedCount++
		}
	}

	return report, nil
}

// errPayslipLocked marks an existing payslip the batch must leave alone.
var errPayslipLocked = errors.New("payslip is not a draft")

func (s *PayrollServiceImpl) calculateOne(
	ctx context.Context,
	emp employee.Employee,
	year, month int,
	settings payroll.Settings,
	calc *Calculator,
	holidays map[string]bool,
	asOf time.Time,
) (created bool, err error) {
	existing, err := s.payrollRepo.GetPayslipByEmployeeAndMonth(ctx, emp.ID, year, month)
	exists := true
	if errors.Is(err, payroll.ErrPayslipNotFound) {
		exists = false
	} else if err != nil {
		return false, err
	}
	if exists && !existing.Mutable() {
		return false, errPayslipLocked
	}

	if emp.HourlyRate <= 0 {
		return false, payroll.ErrMissingHourlyRate
	}

	records, err := s.attendanceRepo.ListClosedInMonth(ctx, emp.ID, year, month)
	if err != nil {
		return false, err
	}

	days := make([]DayBuckets, 0, len(records))
	totalHours := 0.0
	for _, rec := range records {
		days = append(days, calc.ClassifyDay(rec, holidays[dayKey(rec.CheckInTime)]))
		if rec.TotalWorkingHours != nil {
			totalHours += *rec.TotalWorkingHours
		}
	}
	totals := calc.Totals(days)
	pay := calc.Pay(emp.HourlyRate, totals)

	// Admin-entered amounts survive the recompute.
	var otherAllowances, residentTax, otherDeductions int64
	if exists {
		otherAllowances = existing.OtherAllowances
		residentTax = existing.ResidentTax
		otherDeductions = existing.OtherDeductions
	}

	gross := pay.GrossPay + otherAllowances
	ded, err := s.deductions.Compute(ctx, emp, settings, gross, asOf)
	if err != nil {
		return false, err
	}

	p := payroll.Payslip{
		EmployeeID:          emp.ID,
		Year:                year,
		Month:               month,
		WorkDays:            totals.WorkDays,
		TotalHours:          round2(totalHours),
		RegularHours:        totals.RegularHours,
		OvertimeHours:       totals.OvertimeHours,
		NightHours:          totals.NightHours,
		HolidayHours:        totals.HolidayHours,
		BasePay:             pay.BasePay,
		OvertimePay:         pay.OvertimePay,
		NightPay:            pay.NightPay,
		HolidayPay:          pay.HolidayPay,
		OtherAllowances:     otherAllowances,
		GrossPay:            gross,
		HealthInsurance:     ded.HealthInsurance,
		PensionInsurance:    ded.PensionInsurance,
		EmploymentInsurance: ded.EmploymentInsurance,
		IncomeTax:           ded.IncomeTax,
		ResidentTax:         residentTax,
		OtherDeductions:     otherDeductions,
		TotalDeductions:     ded.Total() + residentTax + otherDeductions,
		Status:              payroll.PayslipStatusDraft,
	}
	p.NetPay = p.GrossPay - p.TotalDeductions

	if exists {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		_, err = s.payrollRepo.UpdatePayslip(ctx, p)
		return false, err
	}
	_, err = s.payrollRepo.CreatePayslip(ctx, p)
	return true, err
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, payslipID string) (payroll.Payslip, error) {
	employeeID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	p, err := s.payrollRepo.GetPayslipByID(ctx, payslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if role != string(employee.RoleAdmin) && p.EmployeeID != employeeID {
		return payroll.Payslip{}, payroll.ErrNotPayslipOwner
	}
	return p, nil
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	return s.payrollRepo.ListPayslips(ctx, filter)
}

func (s *PayrollServiceImpl) ListMyPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = &employeeID
	return s.payrollRepo.ListPayslips(ctx, filter)
}

func (s *PayrollServiceImpl) UpdatePayslip(ctx context.Context, req payroll.UpdatePayslipRequest) (payroll.Payslip, error) {
	if err := req.Validate(); err != nil {
		return payroll.Payslip{}, err
	}

	p, err := s.payrollRepo.GetPayslipByID(ctx, req.PayslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if !p.Mutable() {
		return payroll.Payslip{}, payroll.ErrPayslipImmutable
	}

	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if emp.HourlyRate <= 0 {
		return payroll.Payslip{}, payroll.ErrMissingHourlyRate
	}

	if req.TotalHours != nil {
		p.TotalHours = *req.TotalHours
	}
	if req.RegularHours != nil {
		p.RegularHours = *req.RegularHours
	}
	if req.OvertimeHours != nil {
		p.OvertimeHours = *req.OvertimeHours
	}
	if req.NightHours != nil {
		p.NightHours = *req.NightHours
	}
	if req.HolidayHours != nil {
		p.HolidayHours = *req.HolidayHours
	}
	if req.OtherAllowances != nil {
		p.OtherAllowances = *req.OtherAllowances
	}
	if req.ResidentTax != nil {
		p.ResidentTax = *req.ResidentTax
	}
	if req.OtherDeductions != nil {
		p.OtherDeductions = *req.OtherDeductions
	}

	settings, err := s.settingsOrDefault(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}
	calc := NewCalculator(settings)

	totals := MonthTotals{
		WorkDays:      p.WorkDays,
		RegularHours:  p.RegularHours,
		OvertimeHours: p.OvertimeHours,
		NightHours:    p.NightHours,
		HolidayHours:  p.HolidayHours,
	}
	pay := calc.Pay(emp.HourlyRate, totals)
	p.BasePay = pay.BasePay
	p.OvertimePay = pay.OvertimePay
	p.NightPay = pay.NightPay
	p.HolidayPay = pay.HolidayPay
	p.GrossPay = pay.GrossPay + p.OtherAllowances

	_, monthEnd := monthBounds(p.Year, p.Month)
	ded, err := s.deductions.Compute(ctx, emp, settings, p.GrossPay, monthEnd)
	if err != nil {
		return payroll.Payslip{}, err
	}
	p.HealthInsurance = ded.HealthInsurance
	p.PensionInsurance = ded.PensionInsurance
	p.EmploymentInsurance = ded.EmploymentInsurance
	p.IncomeTax = ded.IncomeTax
	p.TotalDeductions = ded.Total() + p.ResidentTax + p.OtherDeductions
	p.NetPay = p.GrossPay - p.TotalDeductions

	return s.payrollRepo.UpdatePayslip(ctx, p)
}

func (s *PayrollServiceImpl) Confirm(ctx context.Context, payslipID string) (payroll.Payslip, error) {
	adminID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	p, err := s.payrollRepo.GetPayslipByID(ctx, payslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if p.Status != payroll.PayslipStatusDraft {
		// Confirming twice is a no-op.
		return p, nil
	}

	now := time.Now()
	p.Status = payroll.PayslipStatusConfirmed
	p.ConfirmedAt = &now
	p.ConfirmedBy = &adminID
	return s.payrollRepo.UpdatePayslip(ctx, p)
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, payslipID string) (payroll.Payslip, error) {
	p, err := s.payrollRepo.GetPayslipByID(ctx, payslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	switch p.Status {
	case payroll.PayslipStatusPaid:
		return p, nil
	case payroll.PayslipStatusDraft:
		return payroll.Payslip{}, payroll.ErrPayslipNotConfirmed
	}

	now := time.Now()
	p.Status = payroll.PayslipStatusPaid
	p.PaidAt = &now
	return s.payrollRepo.UpdatePayslip(ctx, p)
}

// ========== STATS ==========

func (s *PayrollServiceImpl) MonthlyStats(ctx context.Context, employeeID string, year, month int) (payroll.MonthlyStats, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.MonthlyStats{}, err
	}

	settings, err := s.settingsOrDefault(ctx)
	if err != nil {
		return payroll.MonthlyStats{}, err
	}

	monthStart, monthEnd := monthBounds(year, month)
	holidays, err := s.holidayDates(ctx, monthStart, monthEnd)
	if err != nil {
		return payroll.MonthlyStats{}, err
	}

	records, err := s.attendanceRepo.ListClosedInMonth(ctx, employeeID, year, month)
	if err != nil {
		return payroll.MonthlyStats{}, err
	}

	calc := NewCalculator(settings)
	days := make([]DayBuckets, 0, len(records))
	total := 0.0
	for _, rec := range records {
		days = append(days, calc.ClassifyDay(rec, holidays[dayKey(rec.CheckInTime)]))
		if rec.TotalWorkingHours != nil {
			total += *rec.TotalWorkingHours
		}
	}
	totals := calc.Totals(days)

	approved := leave.StatusApproved
	leaves, err := s.leaveRepo.List(ctx, leave.Filter{
		EmployeeID: &employeeID,
		Status:     &approved,
		StartDate:  &monthStart,
		EndDate:    &monthEnd,
	})
	if err != nil {
		return payroll.MonthlyStats{}, err
	}
	leaveDays := 0.0
	for _, l := range leaves {
		start, end := clampRange(l.StartDate, l.EndDate, monthStart, monthEnd)
		if start.After(end) {
			continue
		}
		leaveDays += leave.CountLeaveDays(start, end)
	}

	pay := calc.Pay(emp.HourlyRate, totals)

	return payroll.MonthlyStats{
		EmployeeID:      employeeID,
		Year:            year,
		Month:           month,
		WorkDays:        totals.WorkDays,
		TotalHours:      round2(total),
		RegularHours:    totals.RegularHours,
		OvertimeHours:   totals.OvertimeHours,
		NightHours:      totals.NightHours,
		HolidayHours:    totals.HolidayHours,
		LeaveDays:       leaveDays,
		EstimatedSalary: pay.GrossPay,
	}, nil
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.Settings, error) {
	return s.settingsOrDefault(ctx)
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.SettingsRequest) (payroll.Settings, error) {
	if err := req.Validate(); err != nil {
		return payroll.Settings{}, err
	}

	settings, err := s.settingsOrDefault(ctx)
	if err != nil {
		return payroll.Settings{}, err
	}

	if req.OvertimeMultiplier != nil {
		settings.OvertimeMultiplier = decimal.NewFromFloat(*req.OvertimeMultiplier)
	}
	if req.NightMultiplier != nil {
		settings.NightMultiplier = decimal.NewFromFloat(*req.NightMultiplier)
	}
	if req.HolidayMultiplier != nil {
		settings.HolidayMultiplier = decimal.NewFromFloat(*req.HolidayMultiplier)
	}
	if req.RegularHoursPerDay != nil {
		settings.RegularHoursPerDay = *req.RegularHoursPerDay
	}
	if req.NightWindowStart != nil {
		settings.NightWindowStart = *req.NightWindowStart
	}
	if req.NightWindowEnd != nil {
		settings.NightWindowEnd = *req.NightWindowEnd
	}
	if req.UseDBRates != nil {
		settings.UseDBRates = *req.UseDBRates
	}
	if req.DefaultPrefecture != nil {
		settings.DefaultPrefecture = req.DefaultPrefecture
	}
	if req.DefaultIndustry != nil {
		settings.DefaultIndustry = req.DefaultIndustry
	}

	return s.payrollRepo.SaveSettings(ctx, settings)
}

func (s *PayrollServiceImpl) settingsOrDefault(ctx context.Context) (payroll.Settings, error) {
	settings, err := s.payrollRepo.GetSettings(ctx)
	if errors.Is(err, payroll.ErrSettingsNotFound) {
		return payroll.DefaultSettings(), nil
	}
	if err != nil {
		return payroll.Settings{}, err
	}
	return settings, nil
}

// ========== RATES ==========

func (s *PayrollServiceImpl) CreateInsuranceRate(ctx context.Context, req payroll.InsuranceRateRequest) (payroll.InsuranceRate, error) {
	if err := req.Validate(); err != nil {
		return payroll.InsuranceRate{}, err
	}

	effective, _ := time.Parse("2006-01-02", req.EffectiveDate)
	rate := payroll.InsuranceRate{
		RateType:      req.RateType,
		RateName:      req.RateName,
		Prefecture:    req.Prefecture,
		IndustryType:  req.IndustryType,
		Rate:          decimal.NewFromFloat(req.Rate),
		EffectiveDate: effective,
		Notes:         req.Notes,
	}
	if req.EmployeeRate != nil {
		d := decimal.NewFromFloat(*req.EmployeeRate)
		rate.EmployeeRate = &d
	}
	if req.EmployerRate != nil {
		d := decimal.NewFromFloat(*req.EmployerRate)
		rate.EmployerRate = &d
	}

	// Close the previous open window for the same type and scope so only one
	// rate is ever in effect on a date.
	prev, err := s.rateRepo.FindOverlappingInsuranceRate(ctx, req.RateType, req.Prefecture, req.IndustryType, effective)
	if err == nil {
		if prev.ExpiryDate == nil || !prev.ExpiryDate.Before(effective) {
			prev.ExpiryDate = &effective
			if _, err := s.rateRepo.UpdateInsuranceRate(ctx, prev); err != nil {
				return payroll.InsuranceRate{}, err
			}
		}
	} else if !errors.Is(err, payroll.ErrRateNotFound) {
		return payroll.InsuranceRate{}, err
	}

	return s.rateRepo.CreateInsuranceRate(ctx, rate)
}

func (s *PayrollServiceImpl) ListInsuranceRates(ctx context.Context, rateType *string) ([]payroll.InsuranceRate, error) {
	return s.rateRepo.ListInsuranceRates(ctx, rateType)
}

func (s *PayrollServiceImpl) CreateIncomeTaxRate(ctx context.Context, req payroll.IncomeTaxRateRequest) (payroll.IncomeTaxRate, error) {
	if err := req.Validate(); err != nil {
		return payroll.IncomeTaxRate{}, err
	}

	effective, _ := time.Parse("2006-01-02", req.EffectiveDate)
	return s.rateRepo.CreateIncomeTaxRate(ctx, payroll.IncomeTaxRate{
		MinAmount:       req.MinAmount,
		MaxAmount:       req.MaxAmount,
		Rate:            decimal.NewFromFloat(req.Rate),
		Deduction:       req.Deduction,
		WithholdingType: req.WithholdingType,
		DependentCount:  req.DependentCount,
		EffectiveDate:   effective,
	})
}

func (s *PayrollServiceImpl) ListIncomeTaxRates(ctx context.Context, withholdingType *string) ([]payroll.IncomeTaxRate, error) {
	return s.rateRepo.ListIncomeTaxRates(ctx, withholdingType)
}

// ========== HOLIDAYS ==========

func (s *PayrollServiceImpl) CreateHoliday(ctx context.Context, req payroll.HolidayRequest) (payroll.Holiday, error) {
	if err := req.Validate(); err != nil {
		return payroll.Holiday{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	_, err := s.holidayRepo.GetByDate(ctx, date)
	if err == nil {
		return payroll.Holiday{}, payroll.ErrHolidayExists
	}
	if !errors.Is(err, payroll.ErrHolidayNotFound) {
		return payroll.Holiday{}, err
	}

	return s.holidayRepo.Create(ctx, payroll.Holiday{Date: date, Name: req.Name})
}

func (s *PayrollServiceImpl) DeleteHoliday(ctx context.Context, holidayID string) error {
	return s.holidayRepo.Delete(ctx, holidayID)
}

func (s *PayrollServiceImpl) ListHolidays(ctx context.Context, year int) ([]payroll.Holiday, error) {
	return s.holidayRepo.ListByYear(ctx, year)
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) holidayDates(ctx context.Context, start, end time.Time) (map[string]bool, error) {
	holidays, err := s.holidayRepo.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		dates[dayKey(h.Date)] = true
	}
	return dates, nil
}

func monthBounds(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func clampRange(start, end, lo, hi time.Time) (time.Time, time.Time) {
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	return start, end
}
