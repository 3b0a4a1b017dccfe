package shift

import (
	"time"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityPrefer      Availability = "prefer"
	AvailabilityPreferNot   Availability = "prefer_not"
	AvailabilityAny         Availability = "any"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Shift is one employee's availability (and, once confirmed, planned working
// time) for a calendar date. StartTime/EndTime are wall-clock strings like
// "09:00"; an end earlier than the start means the shift crosses midnight.
type Shift struct {
	ID         string
	EmployeeID string
	AdminID    *string

	Date         time.Time
	Availability Availability
	StartTime    *string
	EndTime      *string
	Memo         *string

	Status       Status
	AdminComment *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Interval resolves the shift's planned working interval on its date. The
// second timestamp lands on the next day when the shift crosses midnight.
func (s Shift) Interval() (start, end time.Time, ok bool) {
	if s.StartTime == nil || s.EndTime == nil {
		return time.Time{}, time.Time{}, false
	}
	st, err := time.Parse("15:04", *s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	et, err := time.Parse("15:04", *s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
	start = day.Add(time.Duration(st.Hour())*time.Hour + time.Duration(st.Minute())*time.Minute)
	end = day.Add(time.Duration(et.Hour())*time.Hour + time.Duration(et.Minute())*time.Minute)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}
