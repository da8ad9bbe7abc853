/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <task_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task without archiving it",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var id string
		err := withStore(func(s *memory.SQLiteStore) error {
			var err error
			if id, err = resolveTaskID(ctx, s, args[0]); err != nil {
				return err
			}
			return s.DeleteTask(ctx, id)
		})
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": id})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
