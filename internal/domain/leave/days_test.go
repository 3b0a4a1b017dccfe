package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestCountLeaveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{"full work week", day(2024, time.June, 10), day(2024, time.June, 14), 5},
		{"single weekday", day(2024, time.June, 12), day(2024, time.June, 12), 1},
		{"weekend only", day(2024, time.June, 15), day(2024, time.June, 16), 0},
		{"friday through monday", day(2024, time.June, 14), day(2024, time.June, 17), 2},
		{"two full weeks", day(2024, time.June, 10), day(2024, time.June, 23), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLeaveDays(tt.start, tt.end))
		})
	}
}

func TestComputeBalance(t *testing.T) {
	asOf := day(2024, time.June, 1)
	expired := day(2024, time.May, 1)

	allocations := []Allocation{
		{AllocatedDays: 10, EffectiveDate: day(2023, time.June, 1)},
		{AllocatedDays: 5, EffectiveDate: day(2023, time.May, 1), ExpiryDate: &expired},
	}
	leaves := []Leave{
		{LeaveType: TypePaid, Status: StatusApproved, DaysCount: 3},
		{LeaveType: TypePaid, Status: StatusPending, DaysCount: 2},
		{LeaveType: TypePaid, Status: StatusRejected, DaysCount: 4},
		{LeaveType: TypeSick, Status: StatusApproved, DaysCount: 4},
	}

	b := ComputeBalance(allocations, leaves, asOf)

	assert.Equal(t, 10.0, b.TotalAllocated, "expired allocation must not count")
	assert.Equal(t, 3.0, b.Used, "only approved paid leave consumes the balance")
	assert.Equal(t, 2.0, b.Pending)
	assert.Equal(t, 7.0, b.Remaining)
}

func TestComputeBalance_Empty(t *testing.T) {
	b := ComputeBalance(nil, nil, day(2024, time.June, 1))

	assert.Equal(t, 0.0, b.TotalAllocated)
	assert.Equal(t, 0.0, b.Remaining)
}
