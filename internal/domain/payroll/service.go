package payroll

import (
	"context"
)

// PayrollService drives payslip calculation and the payslip lifecycle.
type PayrollService interface {
	// Calculate runs the batch calculation for one month. Draft payslips are
	// recomputed, confirmed and paid ones are skipped, and per-employee
	// failures are reported without aborting the batch.
	Calculate(ctx context.Context, req CalculateRequest) (CalculateReport, error)

	GetPayslip(ctx context.Context, payslipID string) (Payslip, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
	ListMyPayslips(ctx context.Context, filter PayslipFilter) ([]Payslip, error)

	// UpdatePayslip edits hour fields or other deductions on a draft and
	// recomputes every derived amount. Non-drafts fail with
	// ErrPayslipImmutable.
	UpdatePayslip(ctx context.Context, req UpdatePayslipRequest) (Payslip, error)

	// Confirm moves a draft to confirmed. Confirming an already confirmed or
	// paid payslip is a no-op.
	Confirm(ctx context.Context, payslipID string) (Payslip, error)

	// MarkPaid moves a confirmed payslip to paid. Marking an already paid
	// payslip is a no-op; drafts fail with ErrPayslipNotConfirmed.
	MarkPaid(ctx context.Context, payslipID string) (Payslip, error)

	// MonthlyStats summarizes one employee's month from closed attendance
	// records and approved leave, without touching payslips.
	MonthlyStats(ctx context.Context, employeeID string, year, month int) (MonthlyStats, error)

	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, req SettingsRequest) (Settings, error)

	// CreateInsuranceRate registers a new rate. An overlapping open rate of
	// the same type and scope has its expiry closed at the new effective date.
	CreateInsuranceRate(ctx context.Context, req InsuranceRateRequest) (InsuranceRate, error)
	ListInsuranceRates(ctx context.Context, rateType *string) ([]InsuranceRate, error)

	CreateIncomeTaxRate(ctx context.Context, req IncomeTaxRateRequest) (IncomeTaxRate, error)
	ListIncomeTaxRates(ctx context.Context, withholdingType *string) ([]IncomeTaxRate, error)

	CreateHoliday(ctx context.Context, req HolidayRequest) (Holiday, error)
	DeleteHoliday(ctx context.Context, holidayID string) error
	ListHolidays(ctx context.Context, year int) ([]Holiday, error)

	// ExportCSV writes the month's payslips as CSV.
	ExportCSV(ctx context.Context, year, month int) ([]byte, error)

	// ExportMyCSV writes the calling employee's month as a personal pay
	// statement with per-day attendance rows and a summary.
	ExportMyCSV(ctx context.Context, year, month int) ([]byte, error)

	// ExportPDF renders one payslip as a PDF document.
	ExportPDF(ctx context.Context, payslipID string) ([]byte, error)
}
