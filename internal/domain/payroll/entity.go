package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the company-wide calculation parameters. A single row exists;
// updates overwrite it in place.
type Settings struct {
	ID string

	OvertimeMultiplier decimal.Decimal
	NightMultiplier    decimal.Decimal
	HolidayMultiplier  decimal.Decimal
	RegularHoursPerDay float64
	NightWindowStart   string // "HH:MM"
	NightWindowEnd     string // "HH:MM"

	// UseDBRates switches deduction calculation from the built-in fallback
	// percentages to the persisted rate schedules.
	UseDBRates        bool
	DefaultPrefecture *string
	DefaultIndustry   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSettings returns the parameters used before an admin has saved any.
func DefaultSettings() Settings {
	return Settings{
		OvertimeMultiplier: decimal.NewFromFloat(1.25),
		NightMultiplier:    decimal.NewFromFloat(1.25),
		HolidayMultiplier:  decimal.NewFromFloat(1.35),
		RegularHoursPerDay: 8.0,
		NightWindowStart:   "22:00",
		NightWindowEnd:     "05:00",
	}
}

type PayslipStatus string

const (
	PayslipStatusDraft     PayslipStatus = "draft"
	PayslipStatusConfirmed PayslipStatus = "confirmed"
	PayslipStatusPaid      PayslipStatus = "paid"
)

// Payslip is one employee's computed pay for one month. Hour fields carry two
// decimal places; money fields are integer yen.
type Payslip struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int

	WorkDays      int
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
	NightHours    float64
	HolidayHours  float64

	BasePay         int64
	OvertimePay     int64
	NightPay        int64
	HolidayPay      int64
	OtherAllowances int64
	GrossPay        int64

	HealthInsurance     int64
	PensionInsurance    int64
	EmploymentInsurance int64
	IncomeTax           int64
	ResidentTax         int64
	OtherDeductions     int64
	TotalDeductions     int64

	NetPay int64

	Status      PayslipStatus
	ConfirmedAt *time.Time
	ConfirmedBy *string
	PaidAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// Mutable reports whether the payslip may still be recomputed or edited.
func (p Payslip) Mutable() bool {
	return p.Status == PayslipStatusDraft
}

// InsuranceRate is one social-insurance premium rate, valid from EffectiveDate
// until ExpiryDate (nil means open-ended). Rates are scoped by prefecture for
// health insurance and by industry type for employment insurance. Rate is the
// combined premium; only EmployeeRate is withheld from pay.
type InsuranceRate struct {
	ID           string
	RateType     string // "health", "pension", "employment"
	RateName     string
	Prefecture   *string
	IndustryType *string

	Rate         decimal.Decimal
	EmployeeRate *decimal.Decimal
	EmployerRate *decimal.Decimal

	EffectiveDate time.Time
	ExpiryDate    *time.Time
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IncomeTaxRate is one withholding bracket. A monthly taxable amount matches
// the bracket whose inclusive [MinAmount, MaxAmount] range contains it, for
// the given withholding type and dependent count. Tax is amount*Rate minus
// the bracket's fixed Deduction, floored to whole yen.
type IncomeTaxRate struct {
	ID              string
	MinAmount       int64
	MaxAmount       *int64
	Rate            decimal.Decimal
	Deduction       int64
	WithholdingType string // "monthly" or "daily"
	DependentCount  int
	EffectiveDate   time.Time
	ExpiryDate      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday is one public-holiday calendar entry. Work on these dates is paid at
// the holiday multiplier.
type Holiday struct {
	ID   string
	Date time.Time
	Name string

	CreatedAt time.Time
}

// MonthlyStats summarizes one employee's month without persisting anything.
// EstimatedSalary is the gross the payroll batch would produce from the same
// records; it carries no allowances or deductions.
type MonthlyStats struct {
	EmployeeID      string  `json:"employee_id"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	WorkDays        int     `json:"work_days"`
	TotalHours      float64 `json:"total_hours"`
	RegularHours    float64 `json:"regular_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	NightHours      float64 `json:"night_hours"`
	HolidayHours    float64 `json:"holiday_hours"`
	LeaveDays       float64 `json:"leave_days"`
	EstimatedSalary int64   `json:"estimated_salary"`
}

// CalculateError records why one employee's payslip could not be produced
// during a batch run.
type CalculateError struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Message      string `json:"message"`
}

// CalculateReport is the outcome of a batch calculation. One employee failing
// never aborts the batch. Skipped lists the employees whose confirmed or paid
// payslips the batch left alone.
type CalculateReport struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	CreatedCount int              `json:"created_count"`
	UpdatedCount int              `json:"updated_count"`
	SkippedCount int              `json:"skipped_count"`
	ErrorCount   int              `json:"error_count"`
	Skipped      []CalculateError `json:"skipped"`
	Errors       []CalculateError `json:"errors"`
}
