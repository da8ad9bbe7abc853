// Package today builds the ordered agenda of tasks and habits for one day.
package today

import (
	"slices"
	"strings"
	"time"

	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
)

// Kind tells which entity an Item wraps.
type Kind int

const (
	KindTask Kind = iota
	KindHabit
)

func (k Kind) String() string {
	if k == KindHabit {
		return "habit"
	}
	return "task"
}

// Item is one agenda entry. It wraps exactly one task or one habit and exposes
// a uniform projection of it, computed for a given day.
type Item struct {
	task  *models.Task
	habit *models.Habit

	sortTime       *time.Time
	overdue        bool
	completedToday bool
}

// TaskItem projects a task onto the agenda for now's day.
func TaskItem(t *models.Task, now time.Time) Item {
	it := Item{task: t}
	if t.DueDate != nil {
		if t.DueHasTime {
			due := t.DueDate.In(now.Location())
			it.sortTime = &due
		}
		it.overdue = !t.Completed && util.BeforeDay(*t.DueDate, now)
	}
	it.completedToday = t.Completed && t.CompletedAt != nil && util.SameDay(*t.CompletedAt, now)
	return it
}

// HabitItem projects a habit onto the agenda for now's day. A habit's time is
// its alert time on that day, when one is configured.
func HabitItem(h *models.Habit, now time.Time) Item {
	it := Item{habit: h}
	if h.AlertHour != nil {
		at := util.AtClock(now, *h.AlertHour, h.AlertMinute)
		it.sortTime = &at
	}
	it.completedToday = h.CompletedOn(now)
	return it
}

func (it Item) Kind() Kind {
	if it.habit != nil {
		return KindHabit
	}
	return KindTask
}

// Task returns the wrapped task, or false for a habit item.
func (it Item) Task() (*models.Task, bool) { return it.task, it.task != nil }

// Habit returns the wrapped habit, or false for a task item.
func (it Item) Habit() (*models.Habit, bool) { return it.habit, it.habit != nil }

func (it Item) ID() string {
	if it.habit != nil {
		return it.habit.ID
	}
	return it.task.ID
}

func (it Item) Title() string {
	if it.habit != nil {
		return it.habit.Title
	}
	return it.task.Title
}

func (it Item) Priority() models.Priority {
	if it.habit != nil {
		return it.habit.Priority
	}
	return it.task.Priority
}

// Time is the item's sortable time of day, or nil when it has none.
func (it Item) Time() *time.Time { return it.sortTime }

func (it Item) Overdue() bool        { return it.overdue }
func (it Item) CompletedToday() bool { return it.completedToday }

// IncludeTask reports whether a task belongs on now's agenda: it is due that
// day, or it is open and was due on an earlier day.
func IncludeTask(t *models.Task, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if util.SameDay(*t.DueDate, now) {
		return true
	}
	return !t.Completed && util.BeforeDay(*t.DueDate, now)
}

// BuildAgenda filters tasks and habits down to now's agenda and returns the
// items in display order. The inputs are not modified.
func BuildAgenda(tasks []models.Task, habits []models.Habit, now time.Time) []Item {
	items := make([]Item, 0, len(tasks)+len(habits))
	for i := range tasks {
		if IncludeTask(&tasks[i], now) {
			items = append(items, TaskItem(&tasks[i], now))
		}
	}
	for i := range habits {
		if habits[i].IsDueOn(now) {
			items = append(items, HabitItem(&habits[i], now))
		}
	}
	Sort(items)
	return items
}

// Sort orders items in place by Compare.
func Sort(items []Item) {
	slices.SortStableFunc(items, Compare)
}

// Compare orders agenda items:
//
//  1. overdue before not overdue
//  2. timed items by time, earliest first
//  3. timed before untimed
//  4. untimed items by priority, highest first
//  5. tasks before habits, then title, then ID
//
// Distinct entities never compare equal.
func Compare(a, b Item) int {
	if a.overdue != b.overdue {
		if a.overdue {
			return -1
		}
		return 1
	}

	switch {
	case a.sortTime != nil && b.sortTime != nil:
		if c := a.sortTime.Compare(*b.sortTime); c != 0 {
			return c
		}
	case a.sortTime != nil:
		return -1
	case b.sortTime != nil:
		return 1
	default:
		if pa, pb := a.Priority(), b.Priority(); pa != pb {
			if pa > pb {
				return -1
			}
			return 1
		}
	}

	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		if ka == KindTask {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.Title(), b.Title()); c != 0 {
		return c
	}
	return strings.Compare(a.ID(), b.ID())
}

// Less reports whether a sorts before b.
func Less(a, b Item) bool { return Compare(a, b) < 0 }
