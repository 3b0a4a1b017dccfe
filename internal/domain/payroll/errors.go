package payroll

import "errors"

// Payroll domain errors
var (
	ErrPayslipNotFound     = errors.New("payslip not found")
	ErrPayslipImmutable    = errors.New("payslip is no longer a draft")
	ErrPayslipNotConfirmed = errors.New("payslip has not been confirmed")
	ErrNotPayslipOwner     = errors.New("payslip belongs to another employee")
	ErrSettingsNotFound    = errors.New("payroll settings not found")
	ErrRateNotFound        = errors.New("rate not found")
	ErrHolidayNotFound     = errors.New("holiday not found")
	ErrHolidayExists       = errors.New("holiday already registered for that date")
	ErrMissingHourlyRate   = errors.New("employee has no hourly rate configured")
)
