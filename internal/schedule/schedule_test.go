package schedule

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 10, hour, min, 0, 0, time.UTC)
}

func TestHourOfDay(t *testing.T) {
	cases := []struct {
		in   time.Time
		want float64
	}{
		{at(8, 30), 8.5},
		{at(17, 0), 17.0},
		{at(16, 45), 16.75},
		{at(0, 0), 0},
	}
	for _, c := range cases {
		if got := HourOfDay(c.in); got != c.want {
			t.Errorf("HourOfDay(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWithinWorkingHours(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"full window", at(8, 30), at(17, 0), true},
		{"ends exactly at close", at(16, 0), at(17, 0), true},
		{"one minute past close", at(16, 1), at(17, 1), false},
		{"runs past close", at(16, 30), at(17, 30), false},
		{"starts before open", at(8, 0), at(9, 0), false},
		{"starts exactly at open", at(8, 30), at(9, 0), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WithinWorkingHours(c.start, c.end); got != c.want {
				t.Errorf("WithinWorkingHours(%v, %v) = %v, want %v", c.start, c.end, got, c.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"back to back", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.s1, c.e1, c.s2, c.e2); got != c.want {
				t.Errorf("Overlaps = %v, want %v", got, c.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(c.s2, c.e2, c.s1, c.e1); got != c.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(at(14, 23))
	if want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if !end.After(at(23, 59)) || !end.Before(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want just before midnight", end)
	}
}

func TestDaySlots(t *testing.T) {
	slots := DaySlots()
	if len(slots) != 18 {
		t.Fatalf("len(slots) = %d, want 18", len(slots))
	}
	if slots[0] != "08:30" {
		t.Errorf("first slot = %q, want 08:30", slots[0])
	}
	if slots[len(slots)-1] != "17:00" {
		t.Errorf("last slot = %q, want 17:00", slots[len(slots)-1])
	}
	if slots[1] != "09:00" {
		t.Errorf("second slot = %q, want 09:00", slots[1])
	}
}
