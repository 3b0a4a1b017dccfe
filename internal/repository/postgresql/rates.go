package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

type rateRepository struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) payroll.RateRepository {
	return &rateRepository{db: db}
}

const insuranceRateColumns = `
	r.id, r.rate_type, r.rate_name, r.prefecture, r.industry_type,
	r.rate, r.employee_rate, r.employer_rate,
	r.effective_date, r.expiry_date, r.notes,
	r.created_at, r.updated_at`

func scanInsuranceRate(row pgx.Row) (payroll.InsuranceRate, error) {
	var ir payroll.InsuranceRate
	err := row.Scan(
		&ir.ID, &ir.RateType, &ir.RateName, &ir.Prefecture, &ir.IndustryType,
		&ir.Rate, &ir.EmployeeRate, &ir.EmployerRate,
		&ir.EffectiveDate, &ir.ExpiryDate, &ir.Notes,
		&ir.CreatedAt, &ir.UpdatedAt,
	)
	return ir, err
}

// CreateInsuranceRate implements payroll.RateRepository.
func (r *rateRepository) CreateInsuranceRate(ctx context.Context, ir payroll.InsuranceRate) (payroll.InsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO insurance_rates (
			id, rate_type, rate_name, prefecture, industry_type,
			rate, employee_rate, employer_rate,
			effective_date, expiry_date, notes,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ir.RateType, ir.RateName, ir.Prefecture, ir.IndustryType,
		ir.Rate, ir.EmployeeRate, ir.EmployerRate,
		ir.EffectiveDate, ir.ExpiryDate, ir.Notes,
	).Scan(&ir.ID, &ir.CreatedAt, &ir.UpdatedAt)
	if err != nil {
		return payroll.InsuranceRate{}, fmt.Errorf("failed to create insurance rate: %w", err)
	}

	return ir, nil
}

// UpdateInsuranceRate implements payroll.RateRepository.
func (r *rateRepository) UpdateInsuranceRate(ctx context.Context, ir payroll.InsuranceRate) (payroll.InsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE insurance_rates SET
			rate_name = $2, prefecture = $3, industry_type = $4,
			rate = $5, employee_rate = $6, employer_rate = $7,
			effective_date = $8, expiry_date = $9, notes = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		ir.ID,
		ir.RateName, ir.Prefecture, ir.IndustryType,
		ir.Rate, ir.EmployeeRate, ir.EmployerRate,
		ir.EffectiveDate, ir.ExpiryDate, ir.Notes,
	).Scan(&ir.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.InsuranceRate{}, payroll.ErrRateNotFound
		}
		return payroll.InsuranceRate{}, fmt.Errorf("failed to update insurance rate: %w", err)
	}

	return ir, nil
}

// ListInsuranceRates implements payroll.RateRepository.
func (r *rateRepository) ListInsuranceRates(ctx context.Context, rateType *string) ([]payroll.InsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if rateType != nil {
		baseWhere += fmt.Sprintf(" AND r.rate_type = $%d", argIdx)
		args = append(args, *rateType)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT`+insuranceRateColumns+`
		FROM insurance_rates r
		WHERE %s
		ORDER BY r.rate_type, r.effective_date DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query insurance rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.InsuranceRate
	for rows.Next() {
		ir, err := scanInsuranceRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insurance rate: %w", err)
		}
		rates = append(rates, ir)
	}

	return rates, rows.Err()
}

// FindOverlappingInsuranceRate implements payroll.RateRepository.
func (r *rateRepository) FindOverlappingInsuranceRate(ctx context.Context, rateType string, prefecture, industryType *string, effectiveDate time.Time) (payroll.InsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + insuranceRateColumns + `
		FROM insurance_rates r
		WHERE r.rate_type = $1
		  AND r.prefecture IS NOT DISTINCT FROM $2
		  AND r.industry_type IS NOT DISTINCT FROM $3
		  AND (r.expiry_date IS NULL OR r.expiry_date >= $4)
		ORDER BY r.effective_date DESC
		LIMIT 1
	`

	ir, err := scanInsuranceRate(q.QueryRow(ctx, query, rateType, prefecture, industryType, effectiveDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.InsuranceRate{}, payroll.ErrRateNotFound
		}
		return payroll.InsuranceRate{}, fmt.Errorf("failed to find overlapping insurance rate: %w", err)
	}

	return ir, nil
}

// ResolveInsuranceRate implements payroll.RateRepository. Scope filters only
// apply when the schedule row carries one, so a nationwide rate (NULL scope)
// matches any employee.
func (r *rateRepository) ResolveInsuranceRate(ctx context.Context, rateType string, prefecture, industryType *string, on time.Time) (payroll.InsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + insuranceRateColumns + `
		FROM insurance_rates r
		WHERE r.rate_type = $1
		  AND (r.prefecture IS NULL OR r.prefecture = $2)
		  AND (r.industry_type IS NULL OR r.industry_type = $3)
		  AND r.effective_date <= $4
		  AND (r.expiry_date IS NULL OR r.expiry_date >= $4)
		ORDER BY r.effective_date DESC
		LIMIT 1
	`

	ir, err := scanInsuranceRate(q.QueryRow(ctx, query, rateType, prefecture, industryType, on))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.InsuranceRate{}, payroll.ErrRateNotFound
		}
		return payroll.InsuranceRate{}, fmt.Errorf("failed to resolve insurance rate: %w", err)
	}

	return ir, nil
}

const incomeTaxRateColumns = `
	t.id, t.min_amount, t.max_amount, t.rate, t.deduction,
	t.withholding_type, t.dependent_count,
	t.effective_date, t.expiry_date,
	t.created_at, t.updated_at`

func scanIncomeTaxRate(row pgx.Row) (payroll.IncomeTaxRate, error) {
	var tr payroll.IncomeTaxRate
	err := row.Scan(
		&tr.ID, &tr.MinAmount, &tr.MaxAmount, &tr.Rate, &tr.Deduction,
		&tr.WithholdingType, &tr.DependentCount,
		&tr.EffectiveDate, &tr.ExpiryDate,
		&tr.CreatedAt, &tr.UpdatedAt,
	)
	return tr, err
}

// CreateIncomeTaxRate implements payroll.RateRepository.
func (r *rateRepository) CreateIncomeTaxRate(ctx context.Context, tr payroll.IncomeTaxRate) (payroll.IncomeTaxRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO income_tax_rates (
			id, min_amount, max_amount, rate, deduction,
			withholding_type, dependent_count,
			effective_date, expiry_date,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		tr.MinAmount, tr.MaxAmount, tr.Rate, tr.Deduction,
		tr.WithholdingType, tr.DependentCount,
		tr.EffectiveDate, tr.ExpiryDate,
	).Scan(&tr.ID, &tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		return payroll.IncomeTaxRate{}, fmt.Errorf("failed to create income tax rate: %w", err)
	}

	return tr, nil
}

// ListIncomeTaxRates implements payroll.RateRepository.
func (r *rateRepository) ListIncomeTaxRates(ctx context.Context, withholdingType *string) ([]payroll.IncomeTaxRate, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if withholdingType != nil {
		baseWhere += fmt.Sprintf(" AND t.withholding_type = $%d", argIdx)
		args = append(args, *withholdingType)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT`+incomeTaxRateColumns+`
		FROM income_tax_rates t
		WHERE %s
		ORDER BY t.withholding_type, t.dependent_count, t.min_amount
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income tax rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.IncomeTaxRate
	for rows.Next() {
		tr, err := scanIncomeTaxRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income tax rate: %w", err)
		}
		rates = append(rates, tr)
	}

	return rates, rows.Err()
}

// ResolveIncomeTaxRate implements payroll.RateRepository.
func (r *rateRepository) ResolveIncomeTaxRate(ctx context.Context, withholdingType string, dependentCount int, taxable int64, on time.Time) (payroll.IncomeTaxRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + incomeTaxRateColumns + `
		FROM income_tax_rates t
		WHERE t.withholding_type = $1
		  AND t.dependent_count = $2
		  AND t.min_amount <= $3
		  AND (t.max_amount IS NULL OR t.max_amount >= $3)
		  AND t.effective_date <= $4
		  AND (t.expiry_date IS NULL OR t.expiry_date >= $4)
		ORDER BY t.effective_date DESC
		LIMIT 1
	`

	tr, err := scanIncomeTaxRate(q.QueryRow(ctx, query, withholdingType, dependentCount, taxable, on))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.IncomeTaxRate{}, payroll.ErrRateNotFound
		}
		return payroll.IncomeTaxRate{}, fmt.Errorf("failed to resolve income tax rate: %w", err)
	}

	return tr, nil
}
