/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `List open tasks. Use --all to include completed tasks that have not been archived yet.`,
	RunE:    runList,
}

var (
	listAll bool
	listTag string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
	listCmd.Flags().StringVar(&listTag, "tag", "", "only tasks with this tag")
}

func runList(cmd *cobra.Command, args []string) error {
	filter := memory.TaskFilter{Tag: listTag}
	if !listAll {
		open := false
		filter.Completed = &open
	}

	var tasks []models.Task
	err := withStore(func(s *memory.SQLiteStore) error {
		var err error
		tasks, err = s.ListTasks(cmd.Context(), filter)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if tasks == nil {
			tasks = []models.Task{}
		}
		return printJSON(out, tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found. Add one with: daywing add \"<title>\"")
		return nil
	}

	width := titleWidth(cmd, 40)
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		due := "          "
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(out, "[%s] %-13s %s %-6s %s\n", mark, util.ShortID(t.ID, 0), due, t.Priority.Label(), util.Truncate(t.Title, width))
	}
	return nil
}
