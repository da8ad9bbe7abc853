// Package alert decides whether an item's reminder is still pending.
package alert

import (
	"time"

	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
)

// State is the alert configuration and per-instance state of one item.
type State struct {
	Hour         *int // nil when no alert is configured
	Minute       int
	Fired        bool
	SnoozedUntil *time.Time
	// InstanceDate is the start of the occurrence the alert applies to.
	InstanceDate *time.Time
	// Completed reports whether the current instance is done.
	Completed bool
}

// Result is the resolved reminder.
type Result struct {
	Pending   bool
	Effective *time.Time
}

// Resolve computes the effective reminder date and whether it is pending at now.
//
// An active snooze replaces the configured time. A snooze that has already
// passed is treated as cleared. Without a snooze the reminder fires on the
// instance day at the configured hour and minute.
func Resolve(s State, now time.Time) Result {
	if s.Hour == nil {
		return Result{}
	}

	var effective *time.Time
	switch {
	case s.SnoozedUntil != nil && s.SnoozedUntil.After(now):
		at := *s.SnoozedUntil
		effective = &at
	case s.InstanceDate != nil:
		at := util.AtClock(*s.InstanceDate, *s.Hour, s.Minute)
		effective = &at
	default:
		return Result{}
	}

	return Result{
		Effective: effective,
		Pending:   effective.After(now) && !s.Completed && !s.Fired,
	}
}

// ForTask builds the alert state of a task. The instance is the due day.
func ForTask(t *models.Task) State {
	return State{
		Hour:         t.AlertHour,
		Minute:       t.AlertMinute,
		Fired:        t.AlertFired,
		SnoozedUntil: t.SnoozedUntil,
		InstanceDate: t.DueDate,
		Completed:    t.Completed,
	}
}

// ForHabit builds the alert state of a habit. The instance starts at the last
// replenishment.
func ForHabit(h *models.Habit) State {
	return State{
		Hour:         h.AlertHour,
		Minute:       h.AlertMinute,
		Fired:        h.AlertFired,
		SnoozedUntil: h.SnoozedUntil,
		InstanceDate: h.ReplenishedAt,
		Completed:    h.CompletedForInstance(),
	}
}
