package payroll

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type CalculateRequest struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayslipRequest struct {
	PayslipID string `json:"-"`

	TotalHours    *float64 `json:"total_hours,omitempty"`
	RegularHours  *float64 `json:"regular_hours,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
	NightHours    *float64 `json:"night_hours,omitempty"`
	HolidayHours  *float64 `json:"holiday_hours,omitempty"`

	OtherAllowances *int64 `json:"other_allowances,omitempty"`
	ResidentTax     *int64 `json:"resident_tax,omitempty"`
	OtherDeductions *int64 `json:"other_deductions,omitempty"`
}

func (r UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	hourFields := []struct {
		name  string
		value *float64
	}{
		{"total_hours", r.TotalHours},
		{"regular_hours", r.RegularHours},
		{"overtime_hours", r.OvertimeHours},
		{"night_hours", r.NightHours},
		{"holiday_hours", r.HolidayHours},
	}
	for _, f := range hourFields {
		if f.value != nil && *f.value < 0 {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: "must not be negative"})
		}
	}
	amountFields := []struct {
		name  string
		value *int64
	}{
		{"other_allowances", r.OtherAllowances},
		{"resident_tax", r.ResidentTax},
		{"other_deductions", r.OtherDeductions},
	}
	for _, f := range amountFields {
		if f.value != nil && *f.value < 0 {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsRequest struct {
	OvertimeMultiplier *float64 `json:"overtime_multiplier,omitempty"`
	NightMultiplier    *float64 `json:"night_multiplier,omitempty"`
	HolidayMultiplier  *float64 `json:"holiday_multiplier,omitempty"`
	RegularHoursPerDay *float64 `json:"regular_hours_per_day,omitempty"`
	NightWindowStart   *string  `json:"night_window_start,omitempty"`
	NightWindowEnd     *string  `json:"night_window_end,omitempty"`
	UseDBRates         *bool    `json:"use_db_rates,omitempty"`
	DefaultPrefecture  *string  `json:"default_prefecture,omitempty"`
	DefaultIndustry    *string  `json:"default_industry,omitempty"`
}

func (r SettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	multipliers := []struct {
		name  string
		value *float64
	}{
		{"overtime_multiplier", r.OvertimeMultiplier},
		{"night_multiplier", r.NightMultiplier},
		{"holiday_multiplier", r.HolidayMultiplier},
	}
	for _, f := range multipliers {
		if f.value != nil && *f.value < 1.0 {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: "must be at least 1.0"})
		}
	}
	if r.RegularHoursPerDay != nil && (*r.RegularHoursPerDay <= 0 || *r.RegularHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{Field: "regular_hours_per_day", Message: "must be between 0 and 24"})
	}
	if r.NightWindowStart != nil && !validator.IsValidClock(*r.NightWindowStart) {
		errs = append(errs, validator.ValidationError{Field: "night_window_start", Message: "must be HH:MM"})
	}
	if r.NightWindowEnd != nil && !validator.IsValidClock(*r.NightWindowEnd) {
		errs = append(errs, validator.ValidationError{Field: "night_window_end", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InsuranceRateRequest struct {
	RateType      string   `json:"rate_type"`
	RateName      string   `json:"rate_name"`
	Prefecture    *string  `json:"prefecture,omitempty"`
	IndustryType  *string  `json:"industry_type,omitempty"`
	Rate          float64  `json:"rate"`
	EmployeeRate  *float64 `json:"employee_rate,omitempty"`
	EmployerRate  *float64 `json:"employer_rate,omitempty"`
	EffectiveDate string   `json:"effective_date"`
	Notes         *string  `json:"notes,omitempty"`
}

func (r InsuranceRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.RateType, []string{"health", "pension", "employment"}) {
		errs = append(errs, validator.ValidationError{Field: "rate_type", Message: "must be health, pension or employment"})
	}
	if validator.IsEmpty(r.RateName) {
		errs = append(errs, validator.ValidationError{Field: "rate_name", Message: "rate_name is required"})
	}
	if r.Rate <= 0 || r.Rate >= 1 {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be a fraction between 0 and 1"})
	}
	if r.EmployeeRate != nil && (*r.EmployeeRate <= 0 || *r.EmployeeRate >= 1) {
		errs = append(errs, validator.ValidationError{Field: "employee_rate", Message: "must be a fraction between 0 and 1"})
	}
	if r.EmployerRate != nil && (*r.EmployerRate <= 0 || *r.EmployerRate >= 1) {
		errs = append(errs, validator.ValidationError{Field: "employer_rate", Message: "must be a fraction between 0 and 1"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IncomeTaxRateRequest struct {
	MinAmount       int64   `json:"min_amount"`
	MaxAmount       *int64  `json:"max_amount,omitempty"`
	Rate            float64 `json:"rate"`
	Deduction       int64   `json:"deduction"`
	WithholdingType string  `json:"withholding_type"`
	DependentCount  int     `json:"dependent_count"`
	EffectiveDate   string  `json:"effective_date"`
}

func (r IncomeTaxRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MinAmount < 0 {
		errs = append(errs, validator.ValidationError{Field: "min_amount", Message: "must not be negative"})
	}
	if r.MaxAmount != nil && *r.MaxAmount < r.MinAmount {
		errs = append(errs, validator.ValidationError{Field: "max_amount", Message: "must not be below min_amount"})
	}
	if r.Rate < 0 || r.Rate >= 1 {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be a fraction below 1"})
	}
	if r.Deduction < 0 {
		errs = append(errs, validator.ValidationError{Field: "deduction", Message: "must not be negative"})
	}
	if !validator.IsInSlice(r.WithholdingType, []string{"monthly", "daily"}) {
		errs = append(errs, validator.ValidationError{Field: "withholding_type", Message: "must be monthly or daily"})
	}
	if r.DependentCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "dependent_count", Message: "must not be negative"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r HolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipFilter struct {
	EmployeeID *string
	Year       *int
	Month      *int
	Status     *PayslipStatus
}

type PayslipResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`

	WorkDays      int     `json:"work_days"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`
	HolidayHours  float64 `json:"holiday_hours"`

	BasePay         int64 `json:"base_pay"`
	OvertimePay     int64 `json:"overtime_pay"`
	NightPay        int64 `json:"night_pay"`
	HolidayPay      int64 `json:"holiday_pay"`
	OtherAllowances int64 `json:"other_allowances"`
	GrossPay        int64 `json:"gross_pay"`

	HealthInsurance     int64 `json:"health_insurance"`
	PensionInsurance    int64 `json:"pension_insurance"`
	EmploymentInsurance int64 `json:"employment_insurance"`
	IncomeTax           int64 `json:"income_tax"`
	ResidentTax         int64 `json:"resident_tax"`
	OtherDeductions     int64 `json:"other_deductions"`
	TotalDeductions     int64 `json:"total_deductions"`

	NetPay int64 `json:"net_pay"`

	Status      string  `json:"status"`
	ConfirmedAt *string `json:"confirmed_at,omitempty"`
	ConfirmedBy *string `json:"confirmed_by,omitempty"`
	PaidAt      *string `json:"paid_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                  p.ID,
		EmployeeID:          p.EmployeeID,
		EmployeeName:        p.EmployeeName,
		EmployeeCode:        p.EmployeeCode,
		Year:                p.Year,
		Month:               p.Month,
		WorkDays:            p.WorkDays,
		TotalHours:          p.TotalHours,
		RegularHours:        p.RegularHours,
		OvertimeHours:       p.OvertimeHours,
		NightHours:          p.NightHours,
		HolidayHours:        p.HolidayHours,
		BasePay:             p.BasePay,
		OvertimePay:         p.OvertimePay,
		NightPay:            p.NightPay,
		HolidayPay:          p.HolidayPay,
		OtherAllowances:     p.OtherAllowances,
		GrossPay:            p.GrossPay,
		HealthInsurance:     p.HealthInsurance,
		PensionInsurance:    p.PensionInsurance,
		EmploymentInsurance: p.EmploymentInsurance,
		IncomeTax:           p.IncomeTax,
		ResidentTax:         p.ResidentTax,
		OtherDeductions:     p.OtherDeductions,
		TotalDeductions:     p.TotalDeductions,
		NetPay:              p.NetPay,
		Status:              string(p.Status),
		ConfirmedAt:         formatTimePtr(p.ConfirmedAt),
		ConfirmedBy:         p.ConfirmedBy,
		PaidAt:              formatTimePtr(p.PaidAt),
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

func NewPayslipResponses(payslips []Payslip) []PayslipResponse {
	responses := make([]PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		responses = append(responses, NewPayslipResponse(p))
	}
	return responses
}

type SettingsResponse struct {
	OvertimeMultiplier float64 `json:"overtime_multiplier"`
	NightMultiplier    float64 `json:"night_multiplier"`
	HolidayMultiplier  float64 `json:"holiday_multiplier"`
	RegularHoursPerDay float64 `json:"regular_hours_per_day"`
	NightWindowStart   string  `json:"night_window_start"`
	NightWindowEnd     string  `json:"night_window_end"`
	UseDBRates         bool    `json:"use_db_rates"`
	DefaultPrefecture  *string `json:"default_prefecture,omitempty"`
	DefaultIndustry    *string `json:"default_industry,omitempty"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		OvertimeMultiplier: s.OvertimeMultiplier.InexactFloat64(),
		NightMultiplier:    s.NightMultiplier.InexactFloat64(),
		HolidayMultiplier:  s.HolidayMultiplier.InexactFloat64(),
		RegularHoursPerDay: s.RegularHoursPerDay,
		NightWindowStart:   s.NightWindowStart,
		NightWindowEnd:     s.NightWindowEnd,
		UseDBRates:         s.UseDBRates,
		DefaultPrefecture:  s.DefaultPrefecture,
		DefaultIndustry:    s.DefaultIndustry,
	}
}

type InsuranceRateResponse struct {
	ID            string   `json:"id"`
	RateType      string   `json:"rate_type"`
	RateName      string   `json:"rate_name"`
	Prefecture    *string  `json:"prefecture,omitempty"`
	IndustryType  *string  `json:"industry_type,omitempty"`
	Rate          float64  `json:"rate"`
	EmployeeRate  *float64 `json:"employee_rate,omitempty"`
	EmployerRate  *float64 `json:"employer_rate,omitempty"`
	EffectiveDate string   `json:"effective_date"`
	ExpiryDate    *string  `json:"expiry_date,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func NewInsuranceRateResponse(r InsuranceRate) InsuranceRateResponse {
	resp := InsuranceRateResponse{
		ID:            r.ID,
		RateType:      r.RateType,
		RateName:      r.RateName,
		Prefecture:    r.Prefecture,
		IndustryType:  r.IndustryType,
		Rate:          r.Rate.InexactFloat64(),
		EffectiveDate: r.EffectiveDate.Format("2006-01-02"),
		Notes:         r.Notes,
	}
	if r.EmployeeRate != nil {
		v := r.EmployeeRate.InexactFloat64()
		resp.EmployeeRate = &v
	}
	if r.EmployerRate != nil {
		v := r.EmployerRate.InexactFloat64()
		resp.EmployerRate = &v
	}
	if r.ExpiryDate != nil {
		expiry := r.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &expiry
	}
	return resp
}

func NewInsuranceRateResponses(rates []InsuranceRate) []InsuranceRateResponse {
	responses := make([]InsuranceRateResponse, 0, len(rates))
	for _, r := range rates {
		responses = append(responses, NewInsuranceRateResponse(r))
	}
	return responses
}

type IncomeTaxRateResponse struct {
	ID              string  `json:"id"`
	MinAmount       int64   `json:"min_amount"`
	MaxAmount       *int64  `json:"max_amount,omitempty"`
	Rate            float64 `json:"rate"`
	Deduction       int64   `json:"deduction"`
	WithholdingType string  `json:"withholding_type"`
	DependentCount  int     `json:"dependent_count"`
	EffectiveDate   string  `json:"effective_date"`
	ExpiryDate      *string `json:"expiry_date,omitempty"`
}

func NewIncomeTaxRateResponse(r IncomeTaxRate) IncomeTaxRateResponse {
	resp := IncomeTaxRateResponse{
		ID:              r.ID,
		MinAmount:       r.MinAmount,
		MaxAmount:       r.MaxAmount,
		Rate:            r.Rate.InexactFloat64(),
		Deduction:       r.Deduction,
		WithholdingType: r.WithholdingType,
		DependentCount:  r.DependentCount,
		EffectiveDate:   r.EffectiveDate.Format("2006-01-02"),
	}
	if r.ExpiryDate != nil {
		expiry := r.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &expiry
	}
	return resp
}

func NewIncomeTaxRateResponses(rates []IncomeTaxRate) []IncomeTaxRateResponse {
	responses := make([]IncomeTaxRateResponse, 0, len(rates))
	for _, r := range rates {
		responses = append(responses, NewIncomeTaxRateResponse(r))
	}
	return responses
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}

func NewHolidayResponses(holidays []Holiday) []HolidayResponse {
	responses := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, NewHolidayResponse(h))
	}
	return responses
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
