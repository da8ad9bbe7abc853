package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/DayWing/internal/util"
)

// Frequency selects how a habit recurs.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"    // every day
	FrequencyWeekly   Frequency = "weekly"   // on the listed weekdays
	FrequencyInterval Frequency = "interval" // every N days counted from StartDate
)

// Schedule describes on which days a habit is due.
type Schedule struct {
	Frequency Frequency      `json:"frequency" validate:"required,oneof=daily weekly interval"`
	Weekdays  []time.Weekday `json:"weekdays,omitempty" validate:"required_if=Frequency weekly,dive,min=0,max=6"`
	Interval  int            `json:"interval,omitempty" validate:"required_if=Frequency interval,min=0"`
	StartDate time.Time      `json:"startDate"`
}

// Habit is a recurring item. Each scheduled day is one instance; completion and
// alert state apply to the current instance, which starts at ReplenishedAt.
type Habit struct {
	ID       string   `json:"id" validate:"required,startswith=habit-"`
	Title    string   `json:"title" validate:"required,min=1,max=255"`
	Notes    string   `json:"notes,omitempty"`
	Priority Priority `json:"priority" validate:"min=0,max=3"`
	Schedule Schedule `json:"schedule"`
	Tags     []string `json:"tags,omitempty" validate:"dive,required,max=64"`

	AlertHour    *int       `json:"alertHour,omitempty" validate:"omitempty,min=0,max=23"`
	AlertMinute  int        `json:"alertMinute,omitempty" validate:"min=0,max=59"`
	AlertFired   bool       `json:"alertFired,omitempty"`
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`

	ReplenishedAt   *time.Time `json:"replenishedAt,omitempty"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
	Archived        bool       `json:"archived,omitempty"`

	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

// NewHabit creates a daily habit starting on now's day.
func NewHabit(title string, now time.Time) *Habit {
	return &Habit{
		ID:       HabitIDPrefix + uuid.New().String()[:8],
		Title:    strings.TrimSpace(title),
		Priority: PriorityMedium,
		Schedule: Schedule{
			Frequency: FrequencyDaily,
			StartDate: util.StartOfDay(now),
		},
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDueOn reports whether the habit has an instance on date's calendar day.
func (h *Habit) IsDueOn(date time.Time) bool {
	if h.Archived {
		return false
	}
	start := h.Schedule.StartDate
	if !start.IsZero() && util.StartOfDay(start.In(date.Location())).After(util.StartOfDay(date)) {
		return false
	}

	switch h.Schedule.Frequency {
	case FrequencyWeekly:
		return slices.Contains(h.Schedule.Weekdays, date.Weekday())
	case FrequencyInterval:
		n := h.Schedule.Interval
		if n <= 1 || start.IsZero() {
			return true
		}
		return util.DaysBetween(util.StartOfDay(start.In(date.Location())), util.StartOfDay(date))%n == 0
	default:
		return true
	}
}

// CompletedOn reports whether the habit was checked off on day's calendar day.
func (h *Habit) CompletedOn(day time.Time) bool {
	return h.LastCompletedAt != nil && util.SameDay(*h.LastCompletedAt, day)
}

// CompletedForInstance reports whether the current instance has been checked off.
func (h *Habit) CompletedForInstance() bool {
	if h.LastCompletedAt == nil {
		return false
	}
	return h.ReplenishedAt == nil || !h.LastCompletedAt.Before(*h.ReplenishedAt)
}

// Check marks the current instance complete.
func (h *Habit) Check(at time.Time) {
	h.LastCompletedAt = &at
	h.UpdatedAt = at
}

// Replenish starts a new instance and clears the fired flag. A snooze is kept;
// it stops applying once its date has passed.
func (h *Habit) Replenish(at time.Time) {
	h.ReplenishedAt = &at
	h.AlertFired = false
	h.UpdatedAt = at
}

// Validate checks struct tags on the habit.
func (h *Habit) Validate() error {
	return ValidateStruct(h)
}
