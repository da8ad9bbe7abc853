/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/DayWing/internal/export"
	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// logbookCmd represents the logbook command
var logbookCmd = &cobra.Command{
	Use:     "logbook",
	Aliases: []string{"log"},
	Short:   "Browse archived tasks",
	Long: `The logbook holds snapshots of tasks that were archived by housekeeping.
Entries can be searched, exported, or restored as open tasks.`,
}

var logbookListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logbook entries, most recently completed first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogbookSearch(cmd, nil)
	},
}

var logbookSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over logbook titles and descriptions",
	Example: `  daywing logbook search tax
  daywing logbook search --from 2025-01-01 --to 2025-03-31 --tag finance`,
	RunE: runLogbookSearch,
}

var logbookRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Turn a logbook entry back into an open task",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogbookRestore,
}

var logbookExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the logbook to JSON, YAML or TOML",
	Long: `Export every logbook entry to a file. The format is taken from --format,
then from the file extension, then from export.format in the config.
A .checksum file is written next to the export.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogbookExport,
}

var (
	logbookFrom   string
	logbookTo     string
	logbookTags   []string
	logbookFormat string
)

func init() {
	rootCmd.AddCommand(logbookCmd)
	logbookCmd.AddCommand(logbookListCmd, logbookSearchCmd, logbookRestoreCmd, logbookExportCmd)

	logbookSearchCmd.Flags().StringVar(&logbookFrom, "from", "", "completed on or after (YYYY-MM-DD)")
	logbookSearchCmd.Flags().StringVar(&logbookTo, "to", "", "completed on or before (YYYY-MM-DD)")
	logbookSearchCmd.Flags().StringSliceVar(&logbookTags, "tag", nil, "match any of these tags")

	logbookExportCmd.Flags().StringVarP(&logbookFormat, "format", "f", "", "json, yaml or toml")
}

func searchFilters() (models.SnapshotFilters, error) {
	var f models.SnapshotFilters
	now := nowFunc()
	if logbookFrom != "" {
		from, _, err := parseDay(logbookFrom, now)
		if err != nil {
			return f, err
		}
		from = util.StartOfDay(from)
		f.From = &from
	}
	if logbookTo != "" {
		to, _, err := parseDay(logbookTo, now)
		if err != nil {
			return f, err
		}
		// Inclusive of the whole day.
		to = util.StartOfDay(to).AddDate(0, 0, 1).Add(-1)
		f.To = &to
	}
	f.Tags = logbookTags
	return f, nil
}

func runLogbookSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	filters, err := searchFilters()
	if err != nil {
		return err
	}

	var snaps []models.Snapshot
	err = withStore(func(s *memory.SQLiteStore) error {
		var err error
		snaps, err = s.SearchSnapshots(cmd.Context(), query, filters)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if snaps == nil {
			snaps = []models.Snapshot{}
		}
		return printJSON(out, snaps)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(out, "No logbook entries found.")
		return nil
	}
	width := titleWidth(cmd, 30)
	for _, sn := range snaps {
		fmt.Fprintf(out, "%s  %-13s %s\n", sn.CompletedAt.Format("2006-01-02"), util.ShortID(sn.ID, 0), util.Truncate(sn.Title, width))
	}
	return nil
}

func runLogbookRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var task *models.Task
	err := withStore(func(s *memory.SQLiteStore) error {
		id, err := resolveSnapshotID(ctx, s, args[0])
		if err != nil {
			return err
		}
		task, err = s.RestoreSnapshot(ctx, id, nowFunc())
		return err
	})
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), task)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored '%s' as open task %s\n", task.Title, task.ID)
	return nil
}

func runLogbookExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format := export.FormatFromPath(path, appConfig.Export.Format)
	if logbookFormat != "" {
		f, err := export.ParseFormat(logbookFormat)
		if err != nil {
			return err
		}
		format = f
	}
	if format == "" {
		format = export.FormatJSON
	}

	var snaps []models.Snapshot
	err := withStore(func(s *memory.SQLiteStore) error {
		var err error
		snaps, err = s.ListSnapshots(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if err := export.NewOSWriter().Write(path, format, snaps, nowFunc()); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "format": format, "count": len(snaps)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d logbook entries to %s (%s)\n", len(snaps), path, format)
	return nil
}
