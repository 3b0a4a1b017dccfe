package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ==========================================
// DEFAULT INSURANCE RATES
// ==========================================

// GetDefaultInsuranceRates returns the standard social insurance premium
// rates used to bootstrap an empty rate schedule: health insurance for Tokyo,
// the nationwide employees' pension rate, and employment insurance split by
// industry type. Only the employee share is withheld from pay.
func GetDefaultInsuranceRates() []payroll.InsuranceRate {
	return []payroll.InsuranceRate{
		{
			RateType:      "health",
			RateName:      "Health insurance (Tokyo)",
			Prefecture:    strPtr("tokyo"),
			Rate:          decimal.NewFromFloat(0.10),
			EmployeeRate:  decimalPtr(0.05),
			EmployerRate:  decimalPtr(0.05),
			EffectiveDate: date(2024, time.April, 1),
			Notes:         strPtr("Kyokai Kenpo Tokyo branch rate"),
		},
		{
			RateType:      "pension",
			RateName:      "Employees' pension insurance",
			Rate:          decimal.NewFromFloat(0.183),
			EmployeeRate:  decimalPtr(0.0915),
			EmployerRate:  decimalPtr(0.0915),
			EffectiveDate: date(2017, time.September, 1),
			Notes:         strPtr("Fixed nationwide rate since September 2017"),
		},
		{
			RateType:      "employment",
			RateName:      "Employment insurance (general)",
			IndustryType:  strPtr("general"),
			Rate:          decimal.NewFromFloat(0.0095),
			EmployeeRate:  decimalPtr(0.003),
			EmployerRate:  decimalPtr(0.0065),
			EffectiveDate: date(2024, time.April, 1),
		},
		{
			RateType:      "employment",
			RateName:      "Employment insurance (construction)",
			IndustryType:  strPtr("construction"),
			Rate:          decimal.NewFromFloat(0.0115),
			EmployeeRate:  decimalPtr(0.004),
			EmployerRate:  decimalPtr(0.0075),
			EffectiveDate: date(2024, time.April, 1),
		},
	}
}

// ==========================================
// DEFAULT INCOME TAX BRACKETS
// ==========================================

// GetDefaultIncomeTaxRates returns the monthly withholding brackets for zero
// dependents. Tax for a bracket is taxable*rate minus the fixed deduction,
// floored to whole yen.
func GetDefaultIncomeTaxRates() []payroll.IncomeTaxRate {
	effective := date(2024, time.January, 1)

	brackets := []struct {
		min       int64
		max       *int64
		rate      float64
		deduction int64
	}{
		{0, int64Ptr(87999), 0, 0},
		{88000, int64Ptr(88999), 0.0021, 0},
		{89000, int64Ptr(89999), 0.0024, 0},
		{90000, int64Ptr(93999), 0.0027, 0},
		{94000, int64Ptr(100999), 0.0030, 0},
		{101000, int64Ptr(120999), 0.0033, 0},
		{121000, int64Ptr(161999), 0.0505, 2110},
		{162000, int64Ptr(254999), 0.0707, 5412},
		{255000, int64Ptr(274999), 0.1010, 13126},
		{275000, int64Ptr(578999), 0.1212, 18681},
		{579000, int64Ptr(749999), 0.2323, 83041},
		{750000, int64Ptr(1499999), 0.3333, 158616},
		{1500000, nil, 0.4545, 341426},
	}

	rates := make([]payroll.IncomeTaxRate, 0, len(brackets))
	for _, b := range brackets {
		rates = append(rates, payroll.IncomeTaxRate{
			MinAmount:       b.min,
			MaxAmount:       b.max,
			Rate:            decimal.NewFromFloat(b.rate),
			Deduction:       b.deduction,
			WithholdingType: "monthly",
			DependentCount:  0,
			EffectiveDate:   effective,
		})
	}
	return rates
}
