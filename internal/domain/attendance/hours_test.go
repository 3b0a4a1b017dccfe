package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, minute int) time.Time {
	return time.Date(2024, 6, 12, hour, minute, 0, 0, time.UTC)
}

func tsPtr(hour, minute int) *time.Time {
	t := ts(hour, minute)
	return &t
}

func TestComputeHours_FullDayWithBreak(t *testing.T) {
	worked, brk, err := ComputeHours(ts(9, 0), ts(18, 0), tsPtr(12, 0), tsPtr(13, 0))

	require.NoError(t, err)
	assert.Equal(t, 8.0, worked)
	assert.Equal(t, 1.0, brk)
}

func TestComputeHours_NoBreak(t *testing.T) {
	worked, brk, err := ComputeHours(ts(9, 0), ts(17, 30), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 8.5, worked)
	assert.Equal(t, 0.0, brk)
}

// A single break bound counts as no break at all.
func TestComputeHours_HalfBreakIgnored(t *testing.T) {
	worked, brk, err := ComputeHours(ts(9, 0), ts(17, 0), tsPtr(12, 0), nil)

	require.NoError(t, err)
	assert.Equal(t, 8.0, worked)
	assert.Equal(t, 0.0, brk)
}

func TestComputeHours_RoundsHalfUp(t *testing.T) {
	// 7h40m = 7.666... rounds to 7.67
	worked, _, err := ComputeHours(ts(9, 0), ts(16, 40), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 7.67, worked)
}

func TestComputeHours_CrossesMidnight(t *testing.T) {
	checkIn := ts(22, 0)
	checkOut := checkIn.Add(7 * time.Hour)

	worked, _, err := ComputeHours(checkIn, checkOut, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 7.0, worked)
}

func TestComputeHours_InvalidIntervals(t *testing.T) {
	tests := []struct {
		name       string
		checkIn    time.Time
		checkOut   time.Time
		breakStart *time.Time
		breakEnd   *time.Time
	}{
		{"checkout before checkin", ts(18, 0), ts(9, 0), nil, nil},
		{"checkout equals checkin", ts(9, 0), ts(9, 0), nil, nil},
		{"inverted break", ts(9, 0), ts(18, 0), tsPtr(13, 0), tsPtr(12, 0)},
		{"break before checkin", ts(9, 0), ts(18, 0), tsPtr(8, 0), tsPtr(10, 0)},
		{"break after checkout", ts(9, 0), ts(18, 0), tsPtr(17, 0), tsPtr(19, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ComputeHours(tt.checkIn, tt.checkOut, tt.breakStart, tt.breakEnd)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}
}
