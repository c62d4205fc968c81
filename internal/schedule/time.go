// Package schedule implements the clinic's calendar rules: time-of-day
// normalization, the operating-window check and the per-slot capacity
// table. Everything here is pure computation over configuration; the
// package never touches storage or HTTP.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Errors returned by the normalizer and validator. Handlers translate
// these into client errors; they never indicate a server fault.
var (
	ErrInvalidTime  = errors.New("invalid time format")
	ErrInvalidDate  = errors.New("invalid appointment date")
	ErrPastBooking  = errors.New("booking date and time must be in the future")
	ErrOutsideHours = errors.New("outside clinic operating hours")
)

// Accepted time-of-day shapes. Minutes and seconds must always be two
// digits; the hour may be one or two. The 12-hour form allows an
// optional seconds group and a required AM/PM marker.
var (
	re24Hour = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	re12Hour = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)$`)
)

// NormalizeTime parses a free-form time-of-day string into the canonical
// zero-padded "HH:MM:SS" form. Accepted inputs are 24-hour "H:MM" or
// "HH:MM:SS" (seconds default to 00) and 12-hour "H:MM[:SS] AM|PM",
// case-insensitive with surrounding whitespace tolerated. Any other
// shape, or any out-of-range component, yields ErrInvalidTime.
func NormalizeTime(raw string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return "", ErrInvalidTime
	}

	if m := re24Hour.FindStringSubmatch(t); m != nil {
		h, mi, s, err := timeParts(m[1], m[2], m[3])
		if err != nil {
			return "", err
		}
		if h > 23 {
			return "", ErrInvalidTime
		}
		return fmt.Sprintf("%02d:%02d:%02d", h, mi, s), nil
	}

	if m := re12Hour.FindStringSubmatch(t); m != nil {
		h, mi, s, err := timeParts(m[1], m[2], m[3])
		if err != nil {
			return "", err
		}
		if h < 1 || h > 12 {
			return "", ErrInvalidTime
		}
		// 12 AM is midnight, 12 PM is noon.
		if h == 12 {
			h = 0
		}
		if m[4] == "PM" {
			h += 12
		}
		return fmt.Sprintf("%02d:%02d:%02d", h, mi, s), nil
	}

	return "", ErrInvalidTime
}

// timeParts converts the captured hour/minute/second groups to ints and
// range-checks minutes and seconds. An empty seconds group means 0.
func timeParts(hs, ms, ss string) (int, int, int, error) {
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, 0, ErrInvalidTime
	}
	mi, err := strconv.Atoi(ms)
	if err != nil || mi > 59 {
		return 0, 0, 0, ErrInvalidTime
	}
	s := 0
	if ss != "" {
		s, err = strconv.Atoi(ss)
		if err != nil || s > 59 {
			return 0, 0, 0, ErrInvalidTime
		}
	}
	return h, mi, s, nil
}

// Clock12 renders a canonical "HH:MM:SS" string in the clinic's display
// convention without seconds, e.g. "10:15 AM". It is used for
// suggested alternative times on conflict responses.
func Clock12(clock string) string {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

// Clock12Seconds renders a canonical "HH:MM:SS" string with seconds,
// e.g. "10:15:00 AM". Booking listings use this form.
func Clock12Seconds(clock string) string {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04:05 PM")
}
