package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	CreatePayslip(ctx context.Context, p Payslip) (Payslip, error)
	GetPayslipByID(ctx context.Context, id string) (Payslip, error)
	GetPayslipByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) (Payslip, error)
	UpdatePayslip(ctx context.Context, p Payslip) (Payslip, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]Payslip, error)

	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) (Settings, error)
}

type RateRepository interface {
	CreateInsuranceRate(ctx context.Context, r InsuranceRate) (InsuranceRate, error)
	UpdateInsuranceRate(ctx context.Context, r InsuranceRate) (InsuranceRate, error)
	ListInsuranceRates(ctx context.Context, rateType *string) ([]InsuranceRate, error)

	// FindOverlappingInsuranceRate returns a rate of the same type and scope
	// whose validity window is still open on the given date, if any.
	FindOverlappingInsuranceRate(ctx context.Context, rateType string, prefecture, industryType *string, effectiveDate time.Time) (InsuranceRate, error)

	// ResolveInsuranceRate returns the rate in effect on the given date,
	// preferring the most recent effective date.
	ResolveInsuranceRate(ctx context.Context, rateType string, prefecture, industryType *string, on time.Time) (InsuranceRate, error)

	CreateIncomeTaxRate(ctx context.Context, r IncomeTaxRate) (IncomeTaxRate, error)
	ListIncomeTaxRates(ctx context.Context, withholdingType *string) ([]IncomeTaxRate, error)

	// ResolveIncomeTaxRate returns the withholding bracket containing the
	// taxable amount for the given withholding type and dependent count.
	ResolveIncomeTaxRate(ctx context.Context, withholdingType string, dependentCount int, taxable int64, on time.Time) (IncomeTaxRate, error)
}

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	GetByDate(ctx context.Context, date time.Time) (Holiday, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)

	// ListInRange returns holidays with dates in [start, end] inclusive.
	ListInRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
