package schedule

import (
	"fmt"
	"time"
)

// Rules carries every scheduling constant the booking pipelines need.
// All values come from configuration: the operating window is expressed
// in minutes since midnight, the forward search advances by StepMinutes,
// and the capacity table is the DefaultCapacity with a ReducedCapacity
// tail covering the final ReducedTailMinutes of the window. Times are
// always interpreted in Location, never in the server's local zone.
type Rules struct {
	Location           *time.Location
	OpenMinute         int // first bookable minute of day, e.g. 495 (08:15)
	CloseMinute        int // last bookable minute of day, e.g. 870 (14:30)
	StepMinutes        int // forward-search increment, e.g. 15
	ProximityMinutes   int // minimum spacing between bookings per doctor
	DefaultCapacity    int // bookings per hour through most of the day
	ReducedCapacity    int // bookings per hour near closing
	ReducedTailMinutes int // length of the reduced-capacity tail
}

// Slot is the validated outcome of combining a date and a normalized
// time: the zone-aware instant plus the derived hour/minute used by the
// capacity table.
type Slot struct {
	At     time.Time
	Hour   int
	Minute int
}

// MinuteOfDay is the slot's position within the day in minutes.
func (s Slot) MinuteOfDay() int { return s.Hour*60 + s.Minute }

// Validate combines a "YYYY-MM-DD" date with a canonical "HH:MM:SS"
// time, interprets the pair in the clinic zone and checks it against
// the operating window. It returns ErrInvalidDate when the strings do
// not parse, ErrPastBooking when the instant is not after now, and
// ErrOutsideHours when the minute-of-day falls outside
// [OpenMinute, CloseMinute].
func (r Rules) Validate(date, clock string, now time.Time) (Slot, error) {
	at, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, r.Location)
	if err != nil {
		return Slot{}, ErrInvalidDate
	}
	if at.Before(now.In(r.Location)) {
		return Slot{}, ErrPastBooking
	}
	slot := Slot{At: at, Hour: at.Hour(), Minute: at.Minute()}
	mod := slot.MinuteOfDay()
	if mod < r.OpenMinute || mod > r.CloseMinute {
		return Slot{}, ErrOutsideHours
	}
	return slot, nil
}

// Capacity returns the maximum bookings allowed for the hour containing
// the given time of day. It is a step function: DefaultCapacity
// everywhere except the reduced tail at the end of the operating
// window, where staffing drops.
func (r Rules) Capacity(hour, minute int) int {
	mod := hour*60 + minute
	if mod >= r.CloseMinute-r.ReducedTailMinutes && mod <= r.CloseMinute {
		return r.ReducedCapacity
	}
	return r.DefaultCapacity
}

// ClockAt renders a minute-of-day as a canonical "HH:MM:00" slot time.
func ClockAt(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d:00", minuteOfDay/60, minuteOfDay%60)
}

// AddMinutes shifts a canonical "HH:MM:SS" clock forward by n minutes,
// wrapping within the day. It backs the suggested-time calculation for
// doctor proximity conflicts.
func AddMinutes(clock string, n int) (string, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return "", ErrInvalidTime
	}
	return t.Add(time.Duration(n) * time.Minute).Format("15:04:05"), nil
}
