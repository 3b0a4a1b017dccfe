package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

// Fallback employee-side premium rates used when the settings do not point at
// the persisted rate schedules, or when no schedule row matches.
var (
	fallbackHealthRate     = decimal.NewFromFloat(0.05)
	fallbackPensionRate    = decimal.NewFromFloat(0.0915)
	fallbackEmploymentRate = decimal.NewFromFloat(0.003)
	fallbackIncomeTaxRate  = decimal.NewFromFloat(0.05)
)

// Income below this monthly amount withholds no tax under the fallback rule.
const fallbackTaxableFloor = 195000

// DeductionBreakdown carries the deduction side of one payslip in integer yen.
// OtherDeductions is not computed here; it is an admin-entered figure.
type DeductionBreakdown struct {
	HealthInsurance     int64
	PensionInsurance    int64
	EmploymentInsurance int64
	IncomeTax           int64
}

func (d DeductionBreakdown) Total() int64 {
	return d.HealthInsurance + d.PensionInsurance + d.EmploymentInsurance + d.IncomeTax
}

// DeductionCalculator prices social insurance and withholding tax. With
// UseDBRates enabled it resolves the persisted rate schedules and falls back
// to the built-in percentages per rate type when no row matches.
type DeductionCalculator struct {
	rates payroll.RateRepository
}

func NewDeductionCalculator(rates payroll.RateRepository) *DeductionCalculator {
	return &DeductionCalculator{rates: rates}
}

// Compute derives the month's deductions. Salaried employees deduct against
// their monthly salary, hourly employees against the computed gross.
func (d *DeductionCalculator) Compute(ctx context.Context, emp employee.Employee, settings payroll.Settings, gross int64, on time.Time) (DeductionBreakdown, error) {
	base := gross
	if emp.MonthlySalary != nil {
		base = *emp.MonthlySalary
	}
	baseDec := decimal.NewFromInt(base)

	var b DeductionBreakdown
	health, err := d.employeeRate(ctx, settings, "health", d.prefecture(emp, settings), nil, on, fallbackHealthRate)
	if err != nil {
		return DeductionBreakdown{}, err
	}
	pension, err := d.employeeRate(ctx, settings, "pension", nil, nil, on, fallbackPensionRate)
	if err != nil {
		return DeductionBreakdown{}, err
	}
	employment, err := d.employeeRate(ctx, settings, "employment", nil, d.industry(emp, settings), on, fallbackEmploymentRate)
	if err != nil {
		return DeductionBreakdown{}, err
	}

	b.HealthInsurance = floorYen(baseDec.Mul(health))
	b.PensionInsurance = floorYen(baseDec.Mul(pension))
	b.EmploymentInsurance = floorYen(baseDec.Mul(employment))

	taxable := gross - b.HealthInsurance - b.PensionInsurance - b.EmploymentInsurance
	tax, err := d.incomeTax(ctx, settings, emp.DependentCount, taxable, on)
	if err != nil {
		return DeductionBreakdown{}, err
	}
	b.IncomeTax = tax

	return b, nil
}

func (d *DeductionCalculator) employeeRate(ctx context.Context, settings payroll.Settings, rateType string, prefecture, industryType *string, on time.Time, fallback decimal.Decimal) (decimal.Decimal, error) {
	if !settings.UseDBRates || d.rates == nil {
		return fallback, nil
	}

	rate, err := d.rates.ResolveInsuranceRate(ctx, rateType, prefecture, industryType, on)
	if errors.Is(err, payroll.ErrRateNotFound) {
		return fallback, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if rate.EmployeeRate != nil {
		return *rate.EmployeeRate, nil
	}
	return rate.Rate, nil
}

func (d *DeductionCalculator) incomeTax(ctx context.Context, settings payroll.Settings, dependentCount int, taxable int64, on time.Time) (int64, error) {
	if taxable <= 0 {
		return 0, nil
	}

	if settings.UseDBRates && d.rates != nil {
		bracket, err := d.rates.ResolveIncomeTaxRate(ctx, "monthly", dependentCount, taxable, on)
		if err == nil {
			tax := floorYen(decimal.NewFromInt(taxable).Mul(bracket.Rate)) - bracket.Deduction
			if tax < 0 {
				tax = 0
			}
			return tax, nil
		}
		if !errors.Is(err, payroll.ErrRateNotFound) {
			return 0, err
		}
	}

	if taxable > fallbackTaxableFloor {
		return floorYen(decimal.NewFromInt(taxable).Mul(fallbackIncomeTaxRate)), nil
	}
	return 0, nil
}

func (d *DeductionCalculator) prefecture(emp employee.Employee, settings payroll.Settings) *string {
	if emp.Prefecture != nil {
		return emp.Prefecture
	}
	return settings.DefaultPrefecture
}

func (d *DeductionCalculator) industry(emp employee.Employee, settings payroll.Settings) *string {
	if emp.IndustryType != nil {
		return emp.IndustryType
	}
	return settings.DefaultIndustry
}
