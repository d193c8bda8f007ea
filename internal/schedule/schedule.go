// Package schedule holds the working-hours window and the time arithmetic
// shared by booking validation and slot generation. Both sides must read the
// same constants so a slot the UI offers is always a slot the validator
// accepts.
package schedule

import (
	"fmt"
	"time"
)

const (
	// OpenHour and CloseHour bound the bookable window, as fractional
	// hours of day: 08:30–17:00.
	OpenHour  = 8.5
	CloseHour = 17.0

	// SlotMinutes is the granularity of the slots offered by the UI.
	SlotMinutes = 30
)

// HourOfDay returns t's time of day as a fractional hour in UTC,
// e.g. 08:30 → 8.5, 16:45 → 16.75.
func HourOfDay(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// WithinWorkingHours reports whether the interval [start, end) fits entirely
// inside the working window. A booking ending exactly at close is valid; one
// ending any minute past it is not.
func WithinWorkingHours(start, end time.Time) bool {
	return HourOfDay(start) >= OpenHour && HourOfDay(end) <= CloseHour
}

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. Back-to-back intervals do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DayBounds returns the inclusive start and end of the given calendar day
// in UTC, for day-scoped booking queries.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// DaySlots returns the slot labels for one day, "08:30" through "17:00" in
// SlotMinutes increments. The final label marks the end of the last slot,
// not a bookable start.
func DaySlots() []string {
	open := int(OpenHour * 60)
	closing := int(CloseHour * 60)

	var slots []string
	for m := open; m <= closing; m += SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}
