package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// nowFunc is replaced in tests to pin the clock.
var nowFunc = time.Now

func isJSON() bool {
	return jsonOutput
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func openStore() (*memory.SQLiteStore, error) {
	s, err := memory.NewSQLiteStore(appConfig.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store in %s: %w", appConfig.Data.Dir, err)
	}
	return s, nil
}

// withStore opens the store, runs fn and closes the store again.
func withStore(fn func(s *memory.SQLiteStore) error) (err error) {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(s)
}

func resolveTaskID(ctx context.Context, s *memory.SQLiteStore, ref string) (string, error) {
	return util.ResolveID(ctx, s.FindTaskIDsByPrefix, models.TaskIDPrefix, ref)
}

func resolveHabitID(ctx context.Context, s *memory.SQLiteStore, ref string) (string, error) {
	return util.ResolveID(ctx, s.FindHabitIDsByPrefix, models.HabitIDPrefix, ref)
}

func resolveSnapshotID(ctx context.Context, s *memory.SQLiteStore, ref string) (string, error) {
	return util.ResolveID(ctx, s.FindSnapshotIDsByPrefix, models.TaskIDPrefix, ref)
}

// parseDay parses "today", "tomorrow", YYYY-MM-DD or "YYYY-MM-DD HH:MM" in
// now's location. hasTime reports whether a clock time was given.
func parseDay(s string, now time.Time) (day time.Time, hasTime bool, err error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return util.StartOfDay(now), false, nil
	case "tomorrow":
		return util.StartOfDay(now).AddDate(0, 0, 1), false, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, now.Location()); err == nil {
		return t, true, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q (want today, tomorrow, YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")", s)
}

// parseClock parses an HH:MM time of day.
func parseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		m = "0"
	}
	hour, herr := strconv.Atoi(h)
	minute, merr := strconv.Atoi(m)
	if herr != nil || merr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return hour, minute, nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "     "
	}
	return t.Format("15:04")
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// titleWidth is the room left for a title after a fixed-width prefix.
func titleWidth(cmd *cobra.Command, prefix int) int {
	w := terminalWidth(cmd)
	if w == 0 {
		return 0
	}
	if w-prefix < 10 {
		return 10
	}
	return w - prefix
}
