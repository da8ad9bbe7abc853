package alert

import (
	"testing"
	"time"

	"github.com/josephgoksu/DayWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	instance := at(15, 0, 0)
	tomorrow2pm := at(16, 14, 0)

	tests := []struct {
		name          string
		state         State
		wantPending   bool
		wantEffective *time.Time
	}{
		{
			name:  "no alert configured",
			state: State{InstanceDate: &instance, SnoozedUntil: &tomorrow2pm},
		},
		{
			name:          "configured time later today",
			state:         State{Hour: ptr(9), Minute: 30, InstanceDate: &instance},
			wantPending:   true,
			wantEffective: ptr(at(15, 9, 30)),
		},
		{
			name:          "configured time already passed",
			state:         State{Hour: ptr(7), InstanceDate: &instance},
			wantEffective: ptr(at(15, 7, 0)),
		},
		{
			name:          "exactly now is not pending",
			state:         State{Hour: ptr(8), InstanceDate: &instance},
			wantEffective: ptr(at(15, 8, 0)),
		},
		{
			name:          "snooze overrides configured time",
			state:         State{Hour: ptr(9), InstanceDate: &instance, SnoozedUntil: &tomorrow2pm},
			wantPending:   true,
			wantEffective: &tomorrow2pm,
		},
		{
			name:          "snooze applies without an instance",
			state:         State{Hour: ptr(9), SnoozedUntil: &tomorrow2pm},
			wantPending:   true,
			wantEffective: &tomorrow2pm,
		},
		{
			name:          "expired snooze falls back to instance",
			state:         State{Hour: ptr(9), InstanceDate: &instance, SnoozedUntil: ptr(at(14, 20, 0))},
			wantPending:   true,
			wantEffective: ptr(at(15, 9, 0)),
		},
		{
			name:  "no instance and no snooze",
			state: State{Hour: ptr(9)},
		},
		{
			name:          "fired",
			state:         State{Hour: ptr(9), InstanceDate: &instance, Fired: true},
			wantEffective: ptr(at(15, 9, 0)),
		},
		{
			name:          "completed",
			state:         State{Hour: ptr(9), InstanceDate: &instance, Completed: true},
			wantEffective: ptr(at(15, 9, 0)),
		},
		{
			name:          "instance time of day is ignored",
			state:         State{Hour: ptr(21), Minute: 5, InstanceDate: ptr(at(15, 17, 42))},
			wantPending:   true,
			wantEffective: ptr(at(15, 21, 5)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.state, now)
			assert.Equal(t, tt.wantPending, got.Pending)
			if tt.wantEffective == nil {
				assert.Nil(t, got.Effective)
				return
			}
			require.NotNil(t, got.Effective)
			assert.True(t, tt.wantEffective.Equal(*got.Effective), "want %v, got %v", *tt.wantEffective, *got.Effective)
		})
	}
}

func TestResolve_SnoozeIgnoresConfiguredTime(t *testing.T) {
	snooze := now.AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(14 * time.Hour)
	state := State{Hour: ptr(9), Minute: 0, InstanceDate: &now, SnoozedUntil: &snooze}

	got := Resolve(state, now)
	require.NotNil(t, got.Effective)
	assert.Equal(t, snooze, *got.Effective)
	assert.True(t, got.Pending)
}

func TestResolve_DoesNotAliasInput(t *testing.T) {
	snooze := at(16, 14, 0)
	got := Resolve(State{Hour: ptr(9), SnoozedUntil: &snooze}, now)
	require.NotNil(t, got.Effective)

	*got.Effective = got.Effective.Add(time.Hour)
	assert.Equal(t, at(16, 14, 0), snooze)
}

func TestForTask(t *testing.T) {
	due := at(15, 0, 0)
	task := models.Task{
		ID:          "task-1",
		Title:       "Dentist",
		DueDate:     &due,
		AlertHour:   ptr(10),
		AlertMinute: 15,
	}

	got := Resolve(ForTask(&task), now)
	assert.True(t, got.Pending)
	assert.Equal(t, at(15, 10, 15), *got.Effective)

	task.Complete(now)
	assert.False(t, Resolve(ForTask(&task), now).Pending)

	task.Reopen(now)
	task.AlertFired = true
	assert.False(t, Resolve(ForTask(&task), now).Pending)
}

func TestForHabit(t *testing.T) {
	h := models.NewHabit("Stretch", at(1, 9, 0))
	h.AlertHour = ptr(20)
	h.Replenish(at(15, 0, 5))

	got := Resolve(ForHabit(h), now)
	assert.True(t, got.Pending)
	assert.Equal(t, at(15, 20, 0), *got.Effective)

	h.Check(now)
	assert.False(t, Resolve(ForHabit(h), now).Pending)

	// A new instance clears completion and fired state.
	h.AlertFired = true
	next := at(16, 0, 5)
	h.Replenish(next)
	got = Resolve(ForHabit(h), next)
	assert.True(t, got.Pending)
	assert.Equal(t, at(16, 20, 0), *got.Effective)
}

func TestForHabit_NeverReplenished(t *testing.T) {
	h := models.NewHabit("Stretch", now)
	h.AlertHour = ptr(20)

	got := Resolve(ForHabit(h), now)
	assert.False(t, got.Pending)
	assert.Nil(t, got.Effective)
}
