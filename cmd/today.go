/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/internal/today"
	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// todayCmd represents the today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's agenda",
	Long: `Show the tasks and habits for today in one list.

Overdue tasks come first, then timed items from earliest to latest, then
untimed items by priority.`,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

// agendaEntry is the JSON form of one agenda item.
type agendaEntry struct {
	Kind           string     `json:"kind"`
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Priority       string     `json:"priority"`
	Time           *time.Time `json:"time,omitempty"`
	Overdue        bool       `json:"overdue"`
	CompletedToday bool       `json:"completedToday"`
}

func runToday(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	now := nowFunc()

	var tasks []models.Task
	var habits []models.Habit
	err := withStore(func(s *memory.SQLiteStore) error {
		n, err := s.ReplenishDue(ctx, now)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Debug("replenished habits", "count", n)
		}
		if tasks, err = s.ListTasks(ctx, memory.TaskFilter{}); err != nil {
			return err
		}
		habits, err = s.ListHabits(ctx, false)
		return err
	})
	if err != nil {
		return err
	}

	items := today.BuildAgenda(tasks, habits, now)

	out := cmd.OutOrStdout()
	if isJSON() {
		entries := make([]agendaEntry, 0, len(items))
		for _, it := range items {
			entries = append(entries, agendaEntry{
				Kind:           it.Kind().String(),
				ID:             it.ID(),
				Title:          it.Title(),
				Priority:       it.Priority().String(),
				Time:           it.Time(),
				Overdue:        it.Overdue(),
				CompletedToday: it.CompletedToday(),
			})
		}
		return printJSON(out, entries)
	}

	fmt.Fprintf(out, "Today, %s\n", now.Format("Monday 2 January 2006"))
	if len(items) == 0 {
		fmt.Fprintln(out, "Nothing scheduled.")
		return nil
	}

	width := titleWidth(cmd, 36)
	for _, it := range items {
		mark := " "
		if it.CompletedToday() {
			mark = "x"
		}
		flag := ""
		if it.Overdue() {
			flag = " (overdue)"
		}
		fmt.Fprintf(out, "[%s] %s %-5s %-13s %s%s\n",
			mark, formatClock(it.Time()), it.Kind(), util.ShortID(it.ID(), 0), util.Truncate(it.Title(), width), flag)
	}
	return nil
}
