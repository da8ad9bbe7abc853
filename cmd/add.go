/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task. A task shows up on the agenda on its due day, and on every
following day until it is done.

Examples:
  daywing add "Renew passport" --due 2025-07-01 --priority high
  daywing add "Call the bank" --due "2025-06-16 09:30" --alert 09:00
  daywing add "Water plants" --due tomorrow --tag home`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDue         string
	addDescription string
	addPriority    string
	addTags        []string
	addAlert       string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDue, "due", "", "due date: today, tomorrow, YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "longer description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "priority: none, low, medium, high")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "tag (repeatable)")
	addCmd.Flags().StringVar(&addAlert, "alert", "", "reminder time on the due day (HH:MM)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	now := nowFunc()
	task := models.NewTask(title, now)
	task.Description = strings.TrimSpace(addDescription)
	task.Tags = append(task.Tags, addTags...)

	p, err := models.ParsePriority(addPriority)
	if err != nil {
		return err
	}
	task.Priority = p

	if addDue != "" {
		due, hasTime, err := parseDay(addDue, now)
		if err != nil {
			return err
		}
		task.DueDate = &due
		task.DueHasTime = hasTime
	}

	if addAlert != "" {
		hour, minute, err := parseClock(addAlert)
		if err != nil {
			return err
		}
		task.AlertHour = &hour
		task.AlertMinute = minute
		if task.DueDate == nil {
			slog.Warn("alert set on a task without a due date; it will never fire", "task_id", task.ID)
		}
	}

	err = withStore(func(s *memory.SQLiteStore) error {
		return s.CreateTask(cmd.Context(), task)
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), task)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", task.ID, task.Title)
	return nil
}
