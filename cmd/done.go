/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <task_id>",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as done",
	Long:    `Mark a task as completed. A unique ID prefix is enough.`,
	Example: `  daywing done task-1a2b
  daywing done 1a2b`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskDone(cmd, args[0], true)
	},
}

// reopenCmd represents the reopen command
var reopenCmd = &cobra.Command{
	Use:   "reopen <task_id>",
	Short: "Mark a completed task as open again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskDone(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(reopenCmd)
}

func setTaskDone(cmd *cobra.Command, ref string, done bool) error {
	ctx := cmd.Context()
	var task *models.Task
	var unchanged bool

	err := withStore(func(s *memory.SQLiteStore) error {
		id, err := resolveTaskID(ctx, s, ref)
		if err != nil {
			return err
		}
		task, err = s.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if task.Completed == done {
			unchanged = true
			return nil
		}
		now := nowFunc()
		if done {
			task.Complete(now)
		} else {
			task.Reopen(now)
		}
		return s.UpdateTask(ctx, task)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, task)
	}
	switch {
	case unchanged && done:
		fmt.Fprintf(out, "Task '%s' (ID: %s) is already completed.\n", task.Title, task.ID)
	case unchanged:
		fmt.Fprintf(out, "Task '%s' (ID: %s) is already open.\n", task.Title, task.ID)
	case done:
		fmt.Fprintf(out, "Task '%s' (ID: %s) marked as done.\n", task.Title, task.ID)
	default:
		fmt.Fprintf(out, "Task '%s' (ID: %s) reopened.\n", task.Title, task.ID)
	}
	return nil
}
