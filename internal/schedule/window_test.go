package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRules mirrors the documented clinic configuration: open 08:15,
// close 14:30, 15-minute steps, capacity 10 dropping to 5 in the last
// half hour. A fixed UTC+2 zone keeps the tests independent of tzdata.
func testRules() Rules {
	return Rules{
		Location:           time.FixedZone("EET", 2*60*60),
		OpenMinute:         495,
		CloseMinute:        870,
		StepMinutes:        15,
		ProximityMinutes:   15,
		DefaultCapacity:    10,
		ReducedCapacity:    5,
		ReducedTailMinutes: 30,
	}
}

func TestValidate_Window(t *testing.T) {
	r := testRules()
	now := time.Date(2030, 5, 1, 7, 0, 0, 0, r.Location)

	tests := []struct {
		name  string
		clock string
		err   error
	}{
		{"before opening", "08:00:00", ErrOutsideHours},
		{"opening minute", "08:15:00", nil},
		{"mid morning", "10:00:00", nil},
		{"closing minute", "14:30:00", nil},
		{"one past closing", "14:31:00", ErrOutsideHours},
		{"evening", "20:00:00", ErrOutsideHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := r.Validate("2030-05-01", tt.clock, now)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2030-05-01", slot.At.Format("2006-01-02"))
			assert.Equal(t, tt.clock, slot.At.Format("15:04:05"))
		})
	}
}

func TestValidate_Past(t *testing.T) {
	r := testRules()
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, r.Location)

	_, err := r.Validate("2030-04-30", "10:00:00", now)
	assert.ErrorIs(t, err, ErrPastBooking)

	// Same day, earlier time.
	_, err = r.Validate("2030-05-01", "10:00:00", now)
	assert.ErrorIs(t, err, ErrPastBooking)

	// Same day, later time.
	slot, err := r.Validate("2030-05-01", "13:00:00", now)
	require.NoError(t, err)
	assert.Equal(t, 13, slot.Hour)
	assert.Equal(t, 0, slot.Minute)
	assert.Equal(t, 780, slot.MinuteOfDay())
}

func TestValidate_BadDate(t *testing.T) {
	r := testRules()
	now := time.Now()

	_, err := r.Validate("01-05-2030", "10:00:00", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = r.Validate("2030-13-40", "10:00:00", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCapacity_StepFunction(t *testing.T) {
	r := testRules()

	assert.Equal(t, 10, r.Capacity(8, 15))
	assert.Equal(t, 10, r.Capacity(11, 0))
	assert.Equal(t, 10, r.Capacity(13, 59))
	// The reduced tail covers 14:00 through 14:30 inclusive.
	assert.Equal(t, 5, r.Capacity(14, 0))
	assert.Equal(t, 5, r.Capacity(14, 15))
	assert.Equal(t, 5, r.Capacity(14, 30))
}

func TestClockHelpers(t *testing.T) {
	assert.Equal(t, "08:15:00", ClockAt(495))
	assert.Equal(t, "14:30:00", ClockAt(870))

	got, err := AddMinutes("10:00:00", 15)
	require.NoError(t, err)
	assert.Equal(t, "10:15:00", got)

	got, err = AddMinutes("14:50:00", 15)
	require.NoError(t, err)
	assert.Equal(t, "15:05:00", got)

	_, err = AddMinutes("nope", 15)
	assert.ErrorIs(t, err, ErrInvalidTime)
}
