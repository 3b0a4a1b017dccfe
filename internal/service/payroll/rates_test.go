package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

// fakeRateRepo satisfies payroll.RateRepository for deduction tests without a
// database. Unset resolve funcs report no matching schedule row.
type fakeRateRepo struct {
	resolveInsurance func(rateType string) (payroll.InsuranceRate, error)
	resolveIncomeTax func(taxable int64) (payroll.IncomeTaxRate, error)
}

func (f *fakeRateRepo) CreateInsuranceRate(ctx context.Context, r payroll.InsuranceRate) (payroll.InsuranceRate, error) {
	return r, nil
}

func (f *fakeRateRepo) UpdateInsuranceRate(ctx context.Context, r payroll.InsuranceRate) (payroll.InsuranceRate, error) {
	return r, nil
}

func (f *fakeRateRepo) ListInsuranceRates(ctx context.Context, rateType *string) ([]payroll.InsuranceRate, error) {
	return nil, nil
}

func (f *fakeRateRepo) FindOverlappingInsuranceRate(ctx context.Context, rateType string, prefecture, industryType *string, effectiveDate time.Time) (payroll.InsuranceRate, error) {
	return payroll.InsuranceRate{}, payroll.ErrRateNotFound
}

func (f *fakeRateRepo) ResolveInsuranceRate(ctx context.Context, rateType string, prefecture, industryType *string, on time.Time) (payroll.InsuranceRate, error) {
	if f.resolveInsurance == nil {
		return payroll.InsuranceRate{}, payroll.ErrRateNotFound
	}
	return f.resolveInsurance(rateType)
}

func (f *fakeRateRepo) CreateIncomeTaxRate(ctx context.Context, r payroll.IncomeTaxRate) (payroll.IncomeTaxRate, error) {
	return r, nil
}

func (f *fakeRateRepo) ListIncomeTaxRates(ctx context.Context, withholdingType *string) ([]payroll.IncomeTaxRate, error) {
	return nil, nil
}

func (f *fakeRateRepo) ResolveIncomeTaxRate(ctx context.Context, withholdingType string, dependentCount int, taxable int64, on time.Time) (payroll.IncomeTaxRate, error) {
	if f.resolveIncomeTax == nil {
		return payroll.IncomeTaxRate{}, payroll.ErrRateNotFound
	}
	return f.resolveIncomeTax(taxable)
}

func TestDeductions_FallbackRates(t *testing.T) {
	calc := NewDeductionCalculator(&fakeRateRepo{})
	settings := payroll.DefaultSettings()
	emp := employee.Employee{HourlyRate: 1500}
	on := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	b, err := calc.Compute(context.Background(), emp, settings, 300000, on)
	require.NoError(t, err)

	assert.Equal(t, int64(15000), b.HealthInsurance)
	assert.Equal(t, int64(27450), b.PensionInsurance)
	assert.Equal(t, int64(900), b.EmploymentInsurance)
	// taxable = 300000 - 43350 = 256650; 5% floored
	assert.Equal(t, int64(12832), b.IncomeTax)
	assert.Equal(t, int64(56182), b.Total())
}

// Below the taxable floor the fallback rule withholds nothing.
func TestDeductions_FallbackBelowTaxableFloor(t *testing.T) {
	calc := NewDeductionCalculator(&fakeRateRepo{})
	settings := payroll.DefaultSettings()
	on := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	b, err := calc.Compute(context.Background(), employee.Employee{}, settings, 200000, on)
	require.NoError(t, err)

	// taxable = 200000 - 10000 - 18300 - 600 = 171100 <= 195000
	assert.Equal(t, int64(0), b.IncomeTax)
}

// Salaried employees deduct insurance against their monthly salary, not the
// computed gross.
func TestDeductions_SalariedBase(t *testing.T) {
	calc := NewDeductionCalculator(&fakeRateRepo{})
	settings := payroll.DefaultSettings()
	salary := int64(400000)
	emp := employee.Employee{MonthlySalary: &salary}
	on := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	b, err := calc.Compute(context.Background(), emp, settings, 300000, on)
	require.NoError(t, err)

	assert.Equal(t, int64(20000), b.HealthInsurance)
	assert.Equal(t, int64(36600), b.PensionInsurance)
	assert.Equal(t, int64(1200), b.EmploymentInsurance)
	// taxable still derives from gross: 300000 - 57800 = 242200
	assert.Equal(t, int64(12110), b.IncomeTax)
}

func TestDeductions_DBRatesAndBracket(t *testing.T) {
	employeeShare := decimal.NewFromFloat(0.04)
	repo := &fakeRateRepo{
		resolveInsurance: func(rateType string) (payroll.InsuranceRate, error) {
			if rateType == "health" {
				return payroll.InsuranceRate{
					Rate:         decimal.NewFromFloat(0.08),
					EmployeeRate: &employeeShare,
				}, nil
			}
			return payroll.InsuranceRate{}, payroll.ErrRateNotFound
		},
		resolveIncomeTax: func(taxable int64) (payroll.IncomeTaxRate, error) {
			return payroll.IncomeTaxRate{
				Rate:      decimal.NewFromFloat(0.0707),
				Deduction: 5412,
			}, nil
		},
	}

	calc := NewDeductionCalculator(repo)
	settings := payroll.DefaultSettings()
	settings.UseDBRates = true
	on := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	b, err := calc.Compute(context.Background(), employee.Employee{}, settings, 300000, on)
	require.NoError(t, err)

	// Employee share of the schedule row wins over the combined rate
	assert.Equal(t, int64(12000), b.HealthInsurance)
	// Pension and employment fall back when no schedule row matches
	assert.Equal(t, int64(27450), b.PensionInsurance)
	assert.Equal(t, int64(900), b.EmploymentInsurance)
	// taxable = 300000 - 40350 = 259650; bracket: floor(259650*0.0707) - 5412
	assert.Equal(t, int64(12945), b.IncomeTax)
}

func TestDeductions_BracketNeverGoesNegative(t *testing.T) {
	repo := &fakeRateRepo{
		resolveIncomeTax: func(taxable int64) (payroll.IncomeTaxRate, error) {
			return payroll.IncomeTaxRate{Rate: decimal.Zero, Deduction: 99999}, nil
		},
	}

	calc := NewDeductionCalculator(repo)
	settings := payroll.DefaultSettings()
	settings.UseDBRates = true
	on := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	b, err := calc.Compute(context.Background(), employee.Employee{}, settings, 300000, on)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.IncomeTax)
}
