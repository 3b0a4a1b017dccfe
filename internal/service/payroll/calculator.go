package payroll

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

// DayBuckets is one attendance day's hours split into pay categories.
// Regular and Overtime are mutually exclusive with Holiday: work on a holiday
// or weekend lands entirely in the Holiday bucket. Night overlaps the others
// and is paid as a differential on top of them.
type DayBuckets struct {
	Regular  float64
	Overtime float64
	Night    float64
	Holiday  float64
}

// MonthTotals is the month's classified hours, each rounded to two decimals.
type MonthTotals struct {
	WorkDays      int
	RegularHours  float64
	OvertimeHours float64
	NightHours    float64
	HolidayHours  float64
}

// PayBreakdown carries the gross side of one payslip in integer yen.
type PayBreakdown struct {
	BasePay     int64
	OvertimePay int64
	NightPay    int64
	HolidayPay  int64
	GrossPay    int64
}

// Calculator classifies attendance days and prices classified hours using one
// settings snapshot. It holds no other state and is safe for concurrent use.
type Calculator struct {
	settings payroll.Settings
}

func NewCalculator(settings payroll.Settings) *Calculator {
	return &Calculator{settings: settings}
}

// ClassifyDay splits one closed attendance record's hours into pay buckets.
// isHoliday marks public holidays from the company calendar; Saturdays and
// Sundays are treated the same way.
func (c *Calculator) ClassifyDay(rec attendance.Record, isHoliday bool) DayBuckets {
	if rec.TotalWorkingHours == nil {
		return DayBuckets{}
	}
	worked := *rec.TotalWorkingHours
	if worked <= 0 {
		return DayBuckets{}
	}

	var b DayBuckets
	if isHoliday || isWeekend(rec.CheckInTime) {
		b.Holiday = worked
	} else {
		b.Regular = math.Min(worked, c.settings.RegularHoursPerDay)
		b.Overtime = worked - b.Regular
	}

	if rec.CheckOutTime != nil {
		night := c.nightHours(rec)
		b.Night = math.Min(night, worked)
	}
	return b
}

// Totals folds per-day buckets into month totals. Days without any worked
// hours do not count toward WorkDays.
func (c *Calculator) Totals(days []DayBuckets) MonthTotals {
	var t MonthTotals
	for _, d := range days {
		if d.Regular+d.Overtime+d.Holiday <= 0 {
			continue
		}
		t.WorkDays++
		t.RegularHours += d.Regular
		t.OvertimeHours += d.Overtime
		t.NightHours += d.Night
		t.HolidayHours += d.Holiday
	}
	t.RegularHours = round2(t.RegularHours)
	t.OvertimeHours = round2(t.OvertimeHours)
	t.NightHours = round2(t.NightHours)
	t.HolidayHours = round2(t.HolidayHours)
	return t
}

// Pay prices classified hours at the employee's hourly rate. Every component
// floors to whole yen independently. Night pay is a differential: night hours
// are already priced inside regular, overtime or holiday pay, so only the
// extra (multiplier - 1) share is added here.
func (c *Calculator) Pay(hourlyRate int64, t MonthTotals) PayBreakdown {
	rate := decimal.NewFromInt(hourlyRate)
	one := decimal.NewFromInt(1)

	var p PayBreakdown
	p.BasePay = floorYen(decimal.NewFromFloat(t.RegularHours).Mul(rate))
	p.OvertimePay = floorYen(decimal.NewFromFloat(t.OvertimeHours).Mul(rate).Mul(c.settings.OvertimeMultiplier))
	p.NightPay = floorYen(decimal.NewFromFloat(t.NightHours).Mul(rate).Mul(c.settings.NightMultiplier.Sub(one)))
	p.HolidayPay = floorYen(decimal.NewFromFloat(t.HolidayHours).Mul(rate).Mul(c.settings.HolidayMultiplier))
	p.GrossPay = p.BasePay + p.OvertimePay + p.NightPay + p.HolidayPay
	return p
}

// nightHours measures how much of the record's working time falls inside the
// night window. The window is anchored on the check-in date and, because it
// crosses midnight, on the following date as well. Breaks inside the window
// are excluded.
func (c *Calculator) nightHours(rec attendance.Record) float64 {
	var total time.Duration
	for _, anchor := range []time.Time{dateOf(rec.CheckInTime), dateOf(rec.CheckInTime).AddDate(0, 0, 1)} {
		ws, we, ok := c.windowOn(anchor)
		if !ok {
			continue
		}
		total += overlap(rec.CheckInTime, *rec.CheckOutTime, ws, we)
		if rec.BreakStartTime != nil && rec.BreakEndTime != nil {
			total -= overlap(*rec.BreakStartTime, *rec.BreakEndTime, ws, we)
		}
	}
	if total < 0 {
		total = 0
	}
	return round2(total.Hours())
}

// windowOn instantiates the configured night window starting on the given
// date. When the end clock is not after the start clock the window runs into
// the next day.
func (c *Calculator) windowOn(date time.Time) (start, end time.Time, ok bool) {
	sc, err := time.Parse("15:04", c.settings.NightWindowStart)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	ec, err := time.Parse("15:04", c.settings.NightWindowEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(date.Year(), date.Month(), date.Day(), sc.Hour(), sc.Minute(), 0, 0, date.Location())
	end = time.Date(date.Year(), date.Month(), date.Day(), ec.Hour(), ec.Minute(), 0, 0, date.Location())
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func floorYen(d decimal.Decimal) int64 {
	return d.Floor().IntPart()
}

func round2(h float64) float64 {
	return math.Floor(h*100+0.5) / 100
}
