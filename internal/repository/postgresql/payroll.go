package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payslipColumns = `
	p.id, p.employee_id, p.year, p.month,
	p.work_days, p.total_hours, p.regular_hours, p.overtime_hours, p.night_hours, p.holiday_hours,
	p.base_pay, p.overtime_pay, p.night_pay, p.holiday_pay, p.other_allowances, p.gross_pay,
	p.health_insurance, p.pension_insurance, p.employment_insurance,
	p.income_tax, p.resident_tax, p.other_deductions, p.total_deductions, p.net_pay,
	p.status, p.confirmed_at, p.confirmed_by, p.paid_at,
	p.created_at, p.updated_at`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Year, &p.Month,
		&p.WorkDays, &p.TotalHours, &p.RegularHours, &p.OvertimeHours, &p.NightHours, &p.HolidayHours,
		&p.BasePay, &p.OvertimePay, &p.NightPay, &p.HolidayPay, &p.OtherAllowances, &p.GrossPay,
		&p.HealthInsurance, &p.PensionInsurance, &p.EmploymentInsurance,
		&p.IncomeTax, &p.ResidentTax, &p.OtherDeductions, &p.TotalDeductions, &p.NetPay,
		&p.Status, &p.ConfirmedAt, &p.ConfirmedBy, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreatePayslip implements payroll.PayrollRepository.
func (r *payrollRepository) CreatePayslip(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, employee_id, year, month,
			work_days, total_hours, regular_hours, overtime_hours, night_hours, holiday_hours,
			base_pay, overtime_pay, night_pay, holiday_pay, other_allowances, gross_pay,
			health_insurance, pension_insurance, employment_insurance,
			income_tax, resident_tax, other_deductions, total_deductions, net_pay,
			status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.Year, p.Month,
		p.WorkDays, p.TotalHours, p.RegularHours, p.OvertimeHours, p.NightHours, p.HolidayHours,
		p.BasePay, p.OvertimePay, p.NightPay, p.HolidayPay, p.OtherAllowances, p.GrossPay,
		p.HealthInsurance, p.PensionInsurance, p.EmploymentInsurance,
		p.IncomeTax, p.ResidentTax, p.OtherDeductions, p.TotalDeductions, p.NetPay,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return p, nil
}

// GetPayslipByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetPayslipByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + payslipColumns + `,
			e.full_name AS employee_name, e.employee_code
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var p payroll.Payslip
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EmployeeID, &p.Year, &p.Month,
		&p.WorkDays, &p.TotalHours, &p.RegularHours, &p.OvertimeHours, &p.NightHours, &p.HolidayHours,
		&p.BasePay, &p.OvertimePay, &p.NightPay, &p.HolidayPay, &p.OtherAllowances, &p.GrossPay,
		&p.HealthInsurance, &p.PensionInsurance, &p.EmploymentInsurance,
		&p.IncomeTax, &p.ResidentTax, &p.OtherDeductions, &p.TotalDeductions, &p.NetPay,
		&p.Status, &p.ConfirmedAt, &p.ConfirmedBy, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

// GetPayslipByEmployeeAndMonth implements payroll.PayrollRepository.
func (r *payrollRepository) GetPayslipByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + payslipColumns + `
		FROM payslips p
		WHERE p.employee_id = $1 AND p.year = $2 AND p.month = $3
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by month: %w", err)
	}

	return p, nil
}

// UpdatePayslip implements payroll.PayrollRepository.
func (r *payrollRepository) UpdatePayslip(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			work_days = $2, total_hours = $3, regular_hours = $4, overtime_hours = $5,
			night_hours = $6, holiday_hours = $7,
			base_pay = $8, overtime_pay = $9, night_pay = $10, holiday_pay = $11,
			other_allowances = $12, gross_pay = $13,
			health_insurance = $14, pension_insurance = $15, employment_insurance = $16,
			income_tax = $17, resident_tax = $18, other_deductions = $19,
			total_deductions = $20, net_pay = $21,
			status = $22, confirmed_at = $23, confirmed_by = $24, paid_at = $25,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID,
		p.WorkDays, p.TotalHours, p.RegularHours, p.OvertimeHours, p.NightHours, p.HolidayHours,
		p.BasePay, p.OvertimePay, p.NightPay, p.HolidayPay, p.OtherAllowances, p.GrossPay,
		p.HealthInsurance, p.PensionInsurance, p.EmploymentInsurance,
		p.IncomeTax, p.ResidentTax, p.OtherDeductions, p.TotalDeductions, p.NetPay,
		p.Status, p.ConfirmedAt, p.ConfirmedBy, p.PaidAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to update payslip: %w", err)
	}

	return p, nil
}

// ListPayslips implements payroll.PayrollRepository.
func (r *payrollRepository) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT`+payslipColumns+`,
			e.full_name AS employee_name, e.employee_code
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.year DESC, p.month DESC, e.full_name
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var p payroll.Payslip
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Year, &p.Month,
			&p.WorkDays, &p.TotalHours, &p.RegularHours, &p.OvertimeHours, &p.NightHours, &p.HolidayHours,
			&p.BasePay, &p.OvertimePay, &p.NightPay, &p.HolidayPay, &p.OtherAllowances, &p.GrossPay,
			&p.HealthInsurance, &p.PensionInsurance, &p.EmploymentInsurance,
			&p.IncomeTax, &p.ResidentTax, &p.OtherDeductions, &p.TotalDeductions, &p.NetPay,
			&p.Status, &p.ConfirmedAt, &p.ConfirmedBy, &p.PaidAt,
			&p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName, &p.EmployeeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, rows.Err()
}

// GetSettings implements payroll.PayrollRepository. A single settings row is
// kept; its absence maps to ErrSettingsNotFound so callers can fall back to
// defaults.
func (r *payrollRepository) GetSettings(ctx context.Context) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, overtime_multiplier, night_multiplier, holiday_multiplier,
			   regular_hours_per_day, night_window_start, night_window_end,
			   use_db_rates, default_prefecture, default_industry,
			   created_at, updated_at
		FROM payroll_settings
		ORDER BY created_at
		LIMIT 1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.OvertimeMultiplier, &s.NightMultiplier, &s.HolidayMultiplier,
		&s.RegularHoursPerDay, &s.NightWindowStart, &s.NightWindowEnd,
		&s.UseDBRates, &s.DefaultPrefecture, &s.DefaultIndustry,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

// SaveSettings implements payroll.PayrollRepository.
func (r *payrollRepository) SaveSettings(ctx context.Context, s payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		query := `
			INSERT INTO payroll_settings (
				id, overtime_multiplier, night_multiplier, holiday_multiplier,
				regular_hours_per_day, night_window_start, night_window_end,
				use_db_rates, default_prefecture, default_industry,
				created_at, updated_at
			) VALUES (
				uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
			) RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query,
			s.OvertimeMultiplier, s.NightMultiplier, s.HolidayMultiplier,
			s.RegularHoursPerDay, s.NightWindowStart, s.NightWindowEnd,
			s.UseDBRates, s.DefaultPrefecture, s.DefaultIndustry,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return payroll.Settings{}, fmt.Errorf("failed to insert payroll settings: %w", err)
		}
		return s, nil
	}

	query := `
		UPDATE payroll_settings SET
			overtime_multiplier = $2, night_multiplier = $3, holiday_multiplier = $4,
			regular_hours_per_day = $5, night_window_start = $6, night_window_end = $7,
			use_db_rates = $8, default_prefecture = $9, default_industry = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		s.ID,
		s.OvertimeMultiplier, s.NightMultiplier, s.HolidayMultiplier,
		s.RegularHoursPerDay, s.NightWindowStart, s.NightWindowEnd,
		s.UseDBRates, s.DefaultPrefecture, s.DefaultIndustry,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to update payroll settings: %w", err)
	}

	return s, nil
}
