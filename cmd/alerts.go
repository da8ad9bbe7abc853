/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/josephgoksu/DayWing/internal/alert"
	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// alertsCmd represents the alerts command
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List pending reminders",
	Long: `List every reminder that has not fired yet, soonest first.

A snoozed reminder is listed at its snooze time.`,
	RunE: runAlerts,
}

var alertsSnoozeCmd = &cobra.Command{
	Use:   "snooze <id>",
	Short: "Postpone a task or habit reminder",
	Example: `  daywing alerts snooze task-1a2b --for 30m
  daywing alerts snooze habit-9f8e --for 2h`,
	Args: cobra.ExactArgs(1),
	RunE: runAlertsSnooze,
}

var snoozeFor time.Duration

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsSnoozeCmd)

	alertsSnoozeCmd.Flags().DurationVar(&snoozeFor, "for", 10*time.Minute, "how long to snooze")
}

// pendingAlert is one reminder still due to fire.
type pendingAlert struct {
	Kind  string    `json:"kind"`
	ID    string    `json:"id"`
	Title string    `json:"title"`
	At    time.Time `json:"at"`
}

func runAlerts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	now := nowFunc()

	var tasks []models.Task
	var habits []models.Habit
	err := withStore(func(s *memory.SQLiteStore) error {
		if _, err := s.ReplenishDue(ctx, now); err != nil {
			return err
		}
		open := false
		var err error
		if tasks, err = s.ListTasks(ctx, memory.TaskFilter{Completed: &open}); err != nil {
			return err
		}
		habits, err = s.ListHabits(ctx, false)
		return err
	})
	if err != nil {
		return err
	}

	pending := collectPendingAlerts(tasks, habits, now)

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, pending)
	}
	if len(pending) == 0 {
		fmt.Fprintln(out, "No pending alerts.")
		return nil
	}
	for _, p := range pending {
		fmt.Fprintf(out, "%s  %-5s %s  %s\n", p.At.Format("2006-01-02 15:04"), p.Kind, p.ID, p.Title)
	}
	return nil
}

func collectPendingAlerts(tasks []models.Task, habits []models.Habit, now time.Time) []pendingAlert {
	pending := []pendingAlert{}
	for i := range tasks {
		if r := alert.Resolve(alert.ForTask(&tasks[i]), now); r.Pending {
			pending = append(pending, pendingAlert{Kind: "task", ID: tasks[i].ID, Title: tasks[i].Title, At: *r.Effective})
		}
	}
	for i := range habits {
		if r := alert.Resolve(alert.ForHabit(&habits[i]), now); r.Pending {
			pending = append(pending, pendingAlert{Kind: "habit", ID: habits[i].ID, Title: habits[i].Title, At: *r.Effective})
		}
	}
	slices.SortStableFunc(pending, func(a, b pendingAlert) int {
		if c := a.At.Compare(b.At); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return pending
}

func runAlertsSnooze(cmd *cobra.Command, args []string) error {
	if snoozeFor <= 0 {
		return fmt.Errorf("--for must be positive")
	}
	ctx := cmd.Context()
	now := nowFunc()
	until := now.Add(snoozeFor)
	ref := args[0]

	var id, title string
	err := withStore(func(s *memory.SQLiteStore) error {
		if strings.HasPrefix(ref, models.HabitIDPrefix) {
			hid, err := resolveHabitID(ctx, s, ref)
			if err != nil {
				return err
			}
			h, err := s.GetHabit(ctx, hid)
			if err != nil {
				return err
			}
			if h.AlertHour == nil {
				return fmt.Errorf("habit %s has no alert", h.ID)
			}
			h.SnoozedUntil = &until
			h.AlertFired = false
			h.UpdatedAt = now
			id, title = h.ID, h.Title
			return s.UpdateHabit(ctx, h)
		}

		tid, err := resolveTaskID(ctx, s, ref)
		if err != nil {
			return err
		}
		t, err := s.GetTask(ctx, tid)
		if err != nil {
			return err
		}
		if t.AlertHour == nil {
			return fmt.Errorf("task %s has no alert", t.ID)
		}
		t.SnoozedUntil = &until
		t.AlertFired = false
		t.UpdatedAt = now
		id, title = t.ID, t.Title
		return s.UpdateTask(ctx, t)
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), pendingAlert{Kind: kindOf(id), ID: id, Title: title, At: until})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Snoozed '%s' until %s\n", title, until.Format("2006-01-02 15:04"))
	return nil
}

func kindOf(id string) string {
	if strings.HasPrefix(id, models.HabitIDPrefix) {
		return "habit"
	}
	return "task"
}
