package util

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{name: "same instant", from: base, to: base, want: 0},
		{name: "one day", from: base.AddDate(0, 0, -1), to: base, want: 1},
		{name: "one day minus a second", from: base.AddDate(0, 0, -1).Add(time.Second), to: base, want: 0},
		{name: "across a leap day", from: time.Date(2024, 2, 28, 10, 0, 0, 0, time.UTC), to: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), want: 2},
		{name: "one year", from: base.AddDate(-1, 0, 0), to: base, want: 365},
		{name: "future is clamped", from: base.Add(72 * time.Hour), to: base, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.from, tc.to); got != tc.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDaysBetween_UsesTargetLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 23:30 UTC on the 14th is already the 15th in Tokyo.
	from := time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC)
	to := time.Date(2025, 6, 16, 9, 0, 0, 0, tokyo)

	if got := DaysBetween(from, to); got != 1 {
		t.Errorf("DaysBetween() = %d, want 1", got)
	}
}

func TestDayHelpers(t *testing.T) {
	ref := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	if got := StartOfDay(ref); !got.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDay() = %v", got)
	}
	if !SameDay(ref.Add(13*time.Hour), ref) {
		t.Errorf("23:00 should be the same day")
	}
	if SameDay(ref.Add(14*time.Hour), ref) {
		t.Errorf("midnight should be the next day")
	}
	if !BeforeDay(ref.Add(-10*time.Hour-time.Nanosecond), ref) {
		t.Errorf("last instant of the previous day should be before")
	}
	if BeforeDay(StartOfDay(ref), ref) {
		t.Errorf("midnight is not before its own day")
	}
	if got := AtClock(ref, 7, 45); !got.Equal(time.Date(2025, 6, 15, 7, 45, 0, 0, time.UTC)) {
		t.Errorf("AtClock() = %v", got)
	}
}
