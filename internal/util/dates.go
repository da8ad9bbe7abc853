package util

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a falls on the same calendar day as ref,
// evaluated in ref's location.
func SameDay(a, ref time.Time) bool {
	ay, am, ad := a.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ay == ry && am == rm && ad == rd
}

// BeforeDay reports whether a falls on a calendar day strictly before ref's day,
// evaluated in ref's location.
func BeforeDay(a, ref time.Time) bool {
	return a.In(ref.Location()).Before(StartOfDay(ref))
}

// AtClock returns day's calendar date at hour:minute with seconds zeroed.
func AtClock(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

// DaysBetween returns the number of whole days elapsed from from to to.
//
// Days are counted on the calendar of to's location, so a timestamp shifted with
// AddDate(0, 0, -n) is exactly n days old regardless of DST transitions.
// Negative spans (clock skew) yield 0.
func DaysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	// Whole calendar days between the two dates, computed in UTC to avoid DST.
	days := int(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	if clockOf(to) < clockOf(from) {
		days--
	}
	if days < 0 {
		return 0
	}
	return days
}

func clockOf(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}
