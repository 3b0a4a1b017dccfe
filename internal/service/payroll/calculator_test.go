package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/payroll"
)

func closedCalcRecord(checkIn, checkOut time.Time, worked float64) attendance.Record {
	return attendance.Record{
		CheckInTime:       checkIn,
		CheckOutTime:      &checkOut,
		TotalWorkingHours: &worked,
	}
}

func TestClassifyDay_WeekdaySplitsOvertime(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	// Wednesday, 09:00-20:00 with 10 worked hours
	checkIn := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	b := calc.ClassifyDay(closedCalcRecord(checkIn, checkIn.Add(11*time.Hour), 10), false)

	assert.Equal(t, 8.0, b.Regular)
	assert.Equal(t, 2.0, b.Overtime)
	assert.Equal(t, 0.0, b.Night)
	assert.Equal(t, 0.0, b.Holiday)
}

func TestClassifyDay_WeekendGoesToHolidayBucket(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	// Saturday, all hours land in the holiday bucket even past 8h
	checkIn := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	b := calc.ClassifyDay(closedCalcRecord(checkIn, checkIn.Add(10*time.Hour), 10), false)

	assert.Equal(t, 0.0, b.Regular)
	assert.Equal(t, 0.0, b.Overtime)
	assert.Equal(t, 10.0, b.Holiday)
}

func TestClassifyDay_PublicHolidayOnWeekday(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	checkIn := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	b := calc.ClassifyDay(closedCalcRecord(checkIn, checkIn.Add(8*time.Hour), 8), true)

	assert.Equal(t, 8.0, b.Holiday)
	assert.Equal(t, 0.0, b.Regular)
}

func TestClassifyDay_NightWindowCrossesMidnight(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	// 20:00 Wednesday to 02:00 Thursday; night window 22:00-05:00 covers 4h
	checkIn := time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)
	b := calc.ClassifyDay(closedCalcRecord(checkIn, checkIn.Add(6*time.Hour), 6), false)

	assert.Equal(t, 6.0, b.Regular)
	assert.Equal(t, 4.0, b.Night)
}

func TestClassifyDay_NightExcludesBreaks(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	checkIn := time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(6 * time.Hour)
	breakStart := time.Date(2024, 6, 12, 23, 0, 0, 0, time.UTC)
	breakEnd := breakStart.Add(time.Hour)
	worked := 5.0

	rec := attendance.Record{
		CheckInTime:       checkIn,
		CheckOutTime:      &checkOut,
		BreakStartTime:    &breakStart,
		BreakEndTime:      &breakEnd,
		TotalWorkingHours: &worked,
	}

	b := calc.ClassifyDay(rec, false)
	assert.Equal(t, 3.0, b.Night)
}

func TestClassifyDay_OpenRecordIsIgnored(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	rec := attendance.Record{CheckInTime: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)}
	assert.Equal(t, DayBuckets{}, calc.ClassifyDay(rec, false))
}

func TestTotals_SkipsEmptyDays(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	totals := calc.Totals([]DayBuckets{
		{Regular: 8},
		{},
		{Regular: 6, Overtime: 1, Night: 2},
		{Holiday: 5},
	})

	assert.Equal(t, 3, totals.WorkDays)
	assert.Equal(t, 14.0, totals.RegularHours)
	assert.Equal(t, 1.0, totals.OvertimeHours)
	assert.Equal(t, 2.0, totals.NightHours)
	assert.Equal(t, 5.0, totals.HolidayHours)
}

func TestPay_AppliesMultipliers(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	p := calc.Pay(1000, MonthTotals{
		RegularHours:  8,
		OvertimeHours: 2,
		NightHours:    4,
		HolidayHours:  0,
	})

	assert.Equal(t, int64(8000), p.BasePay)
	assert.Equal(t, int64(2500), p.OvertimePay)
	// Night pay is the (1.25 - 1) differential on hours already priced above
	assert.Equal(t, int64(1000), p.NightPay)
	assert.Equal(t, int64(0), p.HolidayPay)
	assert.Equal(t, int64(11500), p.GrossPay)
}

func TestPay_HolidayMultiplierAndFlooring(t *testing.T) {
	calc := NewCalculator(payroll.DefaultSettings())

	p := calc.Pay(1111, MonthTotals{HolidayHours: 7.5})

	// 7.5 * 1111 * 1.35 = 11248.875, floored per component
	assert.Equal(t, int64(11248), p.HolidayPay)
	assert.Equal(t, int64(11248), p.GrossPay)
}
