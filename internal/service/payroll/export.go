package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

// ExportCSV renders the month's payslips as one CSV table, one row per
// employee.
func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, year, month int) ([]byte, error) {
	payslips, err := s.payrollRepo.ListPayslips(ctx, payroll.PayslipFilter{Year: &year, Month: &month})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{fmt.Sprintf("Payslips %04d-%02d", year, month)},
		{},
		{
			"employee_id", "employee_name", "work_days", "total_hours",
			"regular_hours", "overtime_hours", "night_hours", "holiday_hours",
			"base_pay", "overtime_pay", "night_pay", "holiday_pay",
			"other_allowances", "gross_pay",
			"health_insurance", "pension_insurance", "employment_insurance",
			"income_tax", "resident_tax", "other_deductions", "total_deductions",
			"net_pay", "status",
		},
	}
	for _, p := range payslips {
		name := ""
		if p.EmployeeName != nil {
			name = *p.EmployeeName
		}
		rows = append(rows, []string{
			p.EmployeeID,
			name,
			strconv.Itoa(p.WorkDays),
			formatHours(p.TotalHours),
			formatHours(p.RegularHours),
			formatHours(p.OvertimeHours),
			formatHours(p.NightHours),
			formatHours(p.HolidayHours),
			strconv.FormatInt(p.BasePay, 10),
			strconv.FormatInt(p.OvertimePay, 10),
			strconv.FormatInt(p.NightPay, 10),
			strconv.FormatInt(p.HolidayPay, 10),
			strconv.FormatInt(p.OtherAllowances, 10),
			strconv.FormatInt(p.GrossPay, 10),
			strconv.FormatInt(p.HealthInsurance, 10),
			strconv.FormatInt(p.PensionInsurance, 10),
			strconv.FormatInt(p.EmploymentInsurance, 10),
			strconv.FormatInt(p.IncomeTax, 10),
			strconv.FormatInt(p.ResidentTax, 10),
			strconv.FormatInt(p.OtherDeductions, 10),
			strconv.FormatInt(p.TotalDeductions, 10),
			strconv.FormatInt(p.NetPay, 10),
			string(p.Status),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportMyCSV renders the calling employee's month as a personal pay
// statement: one row per attendance day followed by the month summary and a
// pay estimate priced from the hourly rate. Admin-entered allowances and
// deductions never appear here; the estimate covers worked hours only.
func (s *PayrollServiceImpl) ExportMyCSV(ctx context.Context, year, month int) ([]byte, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListClosedInMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CheckInTime.Before(records[j].CheckInTime)
	})

	rows := [][]string{
		{fmt.Sprintf("Pay statement %04d-%02d", year, month)},
		{},
		{"employee_name", emp.FullName},
		{"employee_id", emp.ID},
		{"hourly_rate", strconv.FormatInt(emp.HourlyRate, 10)},
		{},
		{"date", "check_in", "check_out", "break_hours", "working_hours", "memo"},
	}

	totalHours := 0.0
	for _, rec := range records {
		checkOut := "-"
		if rec.CheckOutTime != nil {
			checkOut = rec.CheckOutTime.Format("15:04")
		}
		breakHours := 0.0
		if rec.TotalBreakHours != nil {
			breakHours = *rec.TotalBreakHours
		}
		workingHours := 0.0
		if rec.TotalWorkingHours != nil {
			workingHours = *rec.TotalWorkingHours
		}
		memo := ""
		if rec.Memo != nil {
			memo = *rec.Memo
		}
		rows = append(rows, []string{
			rec.CheckInTime.Format("2006-01-02"),
			rec.CheckInTime.Format("15:04"),
			checkOut,
			formatHours(breakHours),
			formatHours(workingHours),
			memo,
		})
		totalHours += workingHours
	}

	// The summary estimates overtime against the month's regular quota; the
	// per-day night and holiday classification is left to the payslip batch.
	workDays := len(records)
	regularHours := float64(workDays) * settings.RegularHoursPerDay
	overtimeHours := math.Max(0, totalHours-regularHours)

	rate := decimal.NewFromInt(emp.HourlyRate)
	basePay := floorYen(decimal.NewFromFloat(regularHours).Mul(rate))
	overtimePay := floorYen(decimal.NewFromFloat(overtimeHours).Mul(rate).Mul(settings.OvertimeMultiplier))

	rows = append(rows,
		[]string{},
		[]string{"total_work_days", strconv.Itoa(workDays)},
		[]string{"total_hours", formatHours(totalHours)},
		[]string{"regular_hours", formatHours(regularHours)},
		[]string{"overtime_hours", formatHours(overtimeHours)},
		[]string{},
		[]string{"base_pay", strconv.FormatInt(basePay, 10)},
		[]string{"overtime_pay", strconv.FormatInt(overtimePay, 10)},
		[]string{"total_pay", strconv.FormatInt(basePay+overtimePay, 10)},
	)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders one payslip as an A4 document.
func (s *PayrollServiceImpl) ExportPDF(ctx context.Context, payslipID string) ([]byte, error) {
	p, err := s.GetPayslip(ctx, payslipID)
	if err != nil {
		return nil, err
	}

	name := p.EmployeeID
	if p.EmployeeName != nil {
		name = *p.EmployeeName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", p.Year, p.Month))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", p.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	writePDFLine(pdf, fmt.Sprintf("Base pay (%.2f h)", p.RegularHours), p.BasePay)
	writePDFLine(pdf, fmt.Sprintf("Overtime pay (%.2f h)", p.OvertimeHours), p.OvertimePay)
	writePDFLine(pdf, fmt.Sprintf("Night differential (%.2f h)", p.NightHours), p.NightPay)
	writePDFLine(pdf, fmt.Sprintf("Holiday pay (%.2f h)", p.HolidayHours), p.HolidayPay)
	writePDFLine(pdf, "Other allowances", p.OtherAllowances)
	writePDFLine(pdf, "Gross pay", p.GrossPay)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	writePDFLine(pdf, "Health insurance", p.HealthInsurance)
	writePDFLine(pdf, "Pension insurance", p.PensionInsurance)
	writePDFLine(pdf, "Employment insurance", p.EmploymentInsurance)
	writePDFLine(pdf, "Income tax", p.IncomeTax)
	writePDFLine(pdf, "Resident tax", p.ResidentTax)
	writePDFLine(pdf, "Other deductions", p.OtherDeductions)
	writePDFLine(pdf, "Total deductions", p.TotalDeductions)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	writePDFLine(pdf, "Net pay", p.NetPay)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFLine(pdf *gofpdf.Fpdf, label string, amount int64) {
	pdf.Cell(120, 7, label)
	pdf.CellFormat(40, 7, fmt.Sprintf("%d JPY", amount), "", 0, "R", false, 0, "")
	pdf.Ln(7)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
