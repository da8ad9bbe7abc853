/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"
	"github.com/josephgoksu/DayWing/internal/config"
	"github.com/josephgoksu/DayWing/internal/logbook"
	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/spf13/cobra"
)

// ErrLocked is returned when another housekeeping run holds the lock.
var ErrLocked = errors.New("housekeeping is already running")

// housekeepCmd represents the housekeep command
var housekeepCmd = &cobra.Command{
	Use:   "housekeep",
	Short: "Archive and purge old completed tasks",
	Long: `Apply the retention policy to completed tasks and the logbook:

  - tasks completed 91 to 365 days ago are archived into the logbook
  - tasks completed more than 365 days ago are deleted
  - logbook entries completed more than 365 days ago are deleted

The thresholds come from logbook.archiveAfterDays and logbook.retainDays.`,
	RunE: runHousekeep,
}

var housekeepDryRun bool

func init() {
	rootCmd.AddCommand(housekeepCmd)

	housekeepCmd.Flags().BoolVar(&housekeepDryRun, "dry-run", false, "show what would change without changing it")
}

func runHousekeep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	now := nowFunc()
	policy := logbook.Policy{
		ArchiveAfterDays: appConfig.Logbook.ArchiveAfterDays,
		RetainDays:       appConfig.Logbook.RetainDays,
	}
	if err := policy.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(appConfig.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	lock := flock.New(config.LockFilePath(appConfig.Data.Dir, appConfig.Logbook.LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire housekeeping lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("release housekeeping lock", "error", err)
		}
	}()

	out := cmd.OutOrStdout()
	return withStore(func(s *memory.SQLiteStore) error {
		engine := logbook.NewEngine(s.Housekeeping(),
			logbook.WithPolicy(policy),
			logbook.WithObserver(logbook.NewSlogObserver(slog.Default())),
		)

		if housekeepDryRun {
			plan, err := engine.Plan(ctx, now)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out, plan)
			}
			fmt.Fprintf(out, "Would archive %d task(s), purge %d task(s) and %d snapshot(s).\n",
				len(plan.Archive), len(plan.PurgeTasks), len(plan.PurgeSnapshots))
			if len(plan.SkippedTasks) > 0 {
				fmt.Fprintf(out, "Would skip %d completed task(s) with no completion date.\n", len(plan.SkippedTasks))
			}
			return nil
		}

		stats, err := engine.Run(ctx, now)
		if err != nil {
			var pe *logbook.PassError
			if errors.As(err, &pe) {
				slog.Error("housekeeping pass failed", "pass", string(pe.Pass), "op", pe.Op, "error", pe.Err)
			}
			if isJSON() {
				_ = printJSON(out, stats)
			}
			return err
		}
		if isJSON() {
			return printJSON(out, stats)
		}
		fmt.Fprintf(out, "Archived %d task(s), purged %d task(s) and %d snapshot(s).\n",
			stats.Archived, stats.PurgedTasks, stats.PurgedSnapshots)
		if stats.Skipped > 0 {
			fmt.Fprintf(out, "Skipped %d completed task(s) with no completion date.\n", stats.Skipped)
		}
		return nil
	})
}
