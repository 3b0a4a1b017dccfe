package leave

import (
	"time"
)

// CountLeaveDays counts the weekdays (Monday through Friday) in the inclusive
// range [start, end]. Every leave request's days_count uses this convention
// regardless of leave type.
func CountLeaveDays(start, end time.Time) float64 {
	days := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// ComputeBalance folds allocations and leave requests into the paid-leave
// ledger state as of the given date. Expired allocations are excluded; only
// approved paid leaves consume the balance, pending paid leaves are tracked
// separately and do not reduce Remaining.
func ComputeBalance(allocations []Allocation, leaves []Leave, asOf time.Time) Balance {
	var b Balance

	for _, alloc := range allocations {
		if alloc.ExpiryDate != nil && alloc.ExpiryDate.Before(asOf) {
			continue
		}
		b.TotalAllocated += alloc.AllocatedDays
	}

	for _, l := range leaves {
		if l.LeaveType != TypePaid {
			continue
		}
		switch l.Status {
		case StatusApproved:
			b.Used += l.DaysCount
		case StatusPending:
			b.Pending += l.DaysCount
		}
	}

	b.Remaining = b.TotalAllocated - b.Used
	return b
}
