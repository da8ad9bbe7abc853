package today

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/josephgoksu/DayWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func dueTask(id, title string, due time.Time, hasTime bool, p models.Priority) models.Task {
	return models.Task{
		ID:         id,
		Title:      title,
		DueDate:    &due,
		DueHasTime: hasTime,
		Priority:   p,
		CreatedAt:  now.AddDate(0, 0, -10),
		UpdatedAt:  now.AddDate(0, 0, -10),
	}
}

func dailyHabit(id, title string, p models.Priority) models.Habit {
	return models.Habit{
		ID:        id,
		Title:     title,
		Priority:  p,
		Schedule:  models.Schedule{Frequency: models.FrequencyDaily, StartDate: now.AddDate(0, -1, 0)},
		CreatedAt: now.AddDate(0, -1, 0),
		UpdatedAt: now.AddDate(0, -1, 0),
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

func TestBuildAgenda_HighTaskBeforeMediumHabit(t *testing.T) {
	tasks := []models.Task{dueTask("task-1", "Pay rent", now, false, models.PriorityHigh)}
	habits := []models.Habit{dailyHabit("habit-1", "Read", models.PriorityMedium)}

	items := BuildAgenda(tasks, habits, now)
	assert.Equal(t, []string{"task-1", "habit-1"}, ids(items))

	// Priority outranks the task-before-habit rule.
	tasks[0].Priority = models.PriorityLow
	items = BuildAgenda(tasks, habits, now)
	assert.Equal(t, []string{"habit-1", "task-1"}, ids(items))

	// Equal priority falls through to tasks first.
	tasks[0].Priority = models.PriorityMedium
	items = BuildAgenda(tasks, habits, now)
	assert.Equal(t, []string{"task-1", "habit-1"}, ids(items))
}

func TestBuildAgenda_TaskInclusion(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	doneYesterday := dueTask("task-done-late", "Done late", yesterday, false, models.PriorityLow)
	doneYesterday.Complete(now)

	doneToday := dueTask("task-done-today", "Done today", now, false, models.PriorityLow)
	doneToday.Complete(now)

	tasks := []models.Task{
		dueTask("task-today", "Today", now, false, models.PriorityLow),
		dueTask("task-overdue", "Overdue", yesterday, false, models.PriorityLow),
		dueTask("task-tomorrow", "Tomorrow", tomorrow, false, models.PriorityLow),
		doneYesterday,
		doneToday,
		{ID: "task-nodue", Title: "No due", CreatedAt: now, UpdatedAt: now},
	}

	items := BuildAgenda(tasks, nil, now)
	assert.ElementsMatch(t, []string{"task-today", "task-overdue", "task-done-today"}, ids(items))
}

func TestBuildAgenda_HabitInclusion(t *testing.T) {
	weekly := dailyHabit("habit-weekly", "Gym", models.PriorityLow)
	weekly.Schedule = models.Schedule{Frequency: models.FrequencyWeekly, Weekdays: []time.Weekday{time.Monday}}

	archived := dailyHabit("habit-archived", "Old", models.PriorityLow)
	archived.Archived = true

	habits := []models.Habit{dailyHabit("habit-daily", "Water", models.PriorityLow), weekly, archived}

	// 2025-06-15 is a Sunday.
	require.Equal(t, time.Sunday, now.Weekday())
	items := BuildAgenda(nil, habits, now)
	assert.Equal(t, []string{"habit-daily"}, ids(items))

	monday := now.AddDate(0, 0, 1)
	items = BuildAgenda(nil, habits, monday)
	// Same priority and kind: ordered by title.
	assert.Equal(t, []string{"habit-weekly", "habit-daily"}, ids(items))
}

func TestBuildAgenda_Ordering(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 6, 15, h, m, 0, 0, time.UTC) }

	alarm := dailyHabit("habit-alarm", "Stretch", models.PriorityNone)
	alarm.AlertHour = ptr(7)
	alarm.AlertMinute = 15

	tasks := []models.Task{
		dueTask("task-untimed-low", "Laundry", now, false, models.PriorityLow),
		dueTask("task-noon", "Lunch", at(12, 0), true, models.PriorityNone),
		dueTask("task-overdue", "Taxes", now.AddDate(0, 0, -3), false, models.PriorityNone),
		dueTask("task-untimed-high", "Call bank", now, false, models.PriorityHigh),
		dueTask("task-nine", "Standup", at(9, 0), true, models.PriorityLow),
	}
	habits := []models.Habit{
		alarm,
		dailyHabit("habit-untimed-high", "Meditate", models.PriorityHigh),
	}

	items := BuildAgenda(tasks, habits, now)
	assert.Equal(t, []string{
		"task-overdue",
		"habit-alarm",
		"task-nine",
		"task-noon",
		"task-untimed-high",
		"habit-untimed-high",
		"task-untimed-low",
	}, ids(items))
}

func TestBuildAgenda_EqualTimesBreakByKindThenTitle(t *testing.T) {
	nine := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	h := dailyHabit("habit-a", "Alpha", models.PriorityHigh)
	h.AlertHour = ptr(9)

	tasks := []models.Task{
		dueTask("task-b", "beta", nine, true, models.PriorityNone),
		dueTask("task-a", "Beta", nine, true, models.PriorityHigh),
	}

	items := BuildAgenda(tasks, []models.Habit{h}, now)
	// Uppercase sorts before lowercase in an ordinal compare.
	assert.Equal(t, []string{"task-a", "task-b", "habit-a"}, ids(items))
}

func TestBuildAgenda_SameTitleBreaksByID(t *testing.T) {
	tasks := []models.Task{
		dueTask("task-b", "Same", now, false, models.PriorityLow),
		dueTask("task-a", "Same", now, false, models.PriorityLow),
	}
	items := BuildAgenda(tasks, nil, now)
	assert.Equal(t, []string{"task-a", "task-b"}, ids(items))
}

func TestItem_Projection(t *testing.T) {
	task := dueTask("task-1", "Write report", now.AddDate(0, 0, -2), false, models.PriorityHigh)
	it := TaskItem(&task, now)

	assert.Equal(t, KindTask, it.Kind())
	assert.Equal(t, "task-1", it.ID())
	assert.Equal(t, "Write report", it.Title())
	assert.Equal(t, models.PriorityHigh, it.Priority())
	assert.Nil(t, it.Time())
	assert.True(t, it.Overdue())
	assert.False(t, it.CompletedToday())

	got, ok := it.Task()
	assert.True(t, ok)
	assert.Same(t, &task, got)
	_, ok = it.Habit()
	assert.False(t, ok)

	habit := dailyHabit("habit-1", "Walk", models.PriorityLow)
	habit.AlertHour = ptr(18)
	habit.AlertMinute = 45
	habit.Check(now)
	hi := HabitItem(&habit, now)

	assert.Equal(t, KindHabit, hi.Kind())
	assert.Equal(t, "habit", hi.Kind().String())
	require.NotNil(t, hi.Time())
	assert.Equal(t, time.Date(2025, 6, 15, 18, 45, 0, 0, time.UTC), *hi.Time())
	assert.False(t, hi.Overdue())
	assert.True(t, hi.CompletedToday())
}

func TestCompare_TotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	titles := []string{"a", "B", "b", "Same", "same"}

	var tasks []models.Task
	var habits []models.Habit
	for i := 0; i < 40; i++ {
		p := models.Priority(rng.Intn(4))
		title := titles[rng.Intn(len(titles))]
		switch rng.Intn(3) {
		case 0:
			due := now.AddDate(0, 0, -rng.Intn(3))
			if rng.Intn(2) == 0 {
				due = time.Date(2025, 6, 15, rng.Intn(3)+8, 0, 0, 0, time.UTC)
			}
			tasks = append(tasks, dueTask(fmt.Sprintf("task-%02d", i), title, due, rng.Intn(2) == 0, p))
		default:
			h := dailyHabit(fmt.Sprintf("habit-%02d", i), title, p)
			if rng.Intn(2) == 0 {
				h.AlertHour = ptr(rng.Intn(3) + 8)
			}
			habits = append(habits, h)
		}
	}

	items := BuildAgenda(tasks, habits, now)
	require.NotEmpty(t, items)

	for i := range items {
		assert.Zero(t, Compare(items[i], items[i]), "irreflexive")
		for j := range items {
			if i == j {
				continue
			}
			c := Compare(items[i], items[j])
			assert.NotZero(t, c, "%s vs %s", items[i].ID(), items[j].ID())
			assert.Equal(t, -c, Compare(items[j], items[i]))
			if i < j {
				assert.True(t, Less(items[i], items[j]), "%s should precede %s", items[i].ID(), items[j].ID())
			}
		}
	}

	// Shuffled input yields the same order.
	want := ids(items)
	for round := 0; round < 5; round++ {
		rng.Shuffle(len(tasks), func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })
		rng.Shuffle(len(habits), func(i, j int) { habits[i], habits[j] = habits[j], habits[i] })
		assert.Equal(t, want, ids(BuildAgenda(tasks, habits, now)))
	}
}

func TestBuildAgenda_DoesNotModifyInputs(t *testing.T) {
	tasks := []models.Task{
		dueTask("task-2", "B", now, false, models.PriorityLow),
		dueTask("task-1", "A", now, false, models.PriorityHigh),
	}
	before := append([]models.Task(nil), tasks...)

	BuildAgenda(tasks, nil, now)
	assert.Equal(t, before, tasks)
}
