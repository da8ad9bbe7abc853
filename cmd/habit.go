/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/DayWing/internal/memory"
	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/cobra"
)

// habitCmd represents the habit command
var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage recurring habits",
	Long: `Habits recur daily, on chosen weekdays, or every N days. Each due day is
a fresh instance that can be checked off once.

Examples:
  daywing habit add "Stretch" --alert 07:30
  daywing habit add "Gym" --every weekly --on mon,wed,fri
  daywing habit add "Water cactus" --every interval --interval 10
  daywing habit check stretch-id`,
}

var habitAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	RunE:    runHabitList,
}

var habitCheckCmd = &cobra.Command{
	Use:   "check <habit_id>",
	Short: "Check off today's instance of a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitCheck,
}

var habitArchiveCmd = &cobra.Command{
	Use:   "archive <habit_id>",
	Short: "Stop scheduling a habit without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitArchive,
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete <habit_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a habit",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitDelete,
}

var (
	habitEvery    string
	habitOn       []string
	habitInterval int
	habitStart    string
	habitNotes    string
	habitPriority string
	habitTags     []string
	habitAlert    string
	habitListAll  bool
)

func init() {
	rootCmd.AddCommand(habitCmd)
	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitCheckCmd, habitArchiveCmd, habitDeleteCmd)

	f := habitAddCmd.Flags()
	f.StringVar(&habitEvery, "every", string(models.FrequencyDaily), "frequency: daily, weekly, interval")
	f.StringSliceVar(&habitOn, "on", nil, "weekdays for weekly habits, e.g. mon,thu")
	f.IntVar(&habitInterval, "interval", 0, "days between instances for interval habits")
	f.StringVar(&habitStart, "start", "", "first day (YYYY-MM-DD); defaults to today")
	f.StringVarP(&habitNotes, "notes", "n", "", "notes")
	f.StringVarP(&habitPriority, "priority", "p", "medium", "priority: none, low, medium, high")
	f.StringSliceVarP(&habitTags, "tag", "t", nil, "tag (repeatable)")
	f.StringVar(&habitAlert, "alert", "", "daily reminder time (HH:MM)")

	habitListCmd.Flags().BoolVarP(&habitListAll, "all", "a", false, "include archived habits")
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if len(key) > 3 {
			key = key[:3]
		}
		d, ok := weekdayNames[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", n)
		}
		days = append(days, d)
	}
	return days, nil
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	now := nowFunc()
	h := models.NewHabit(title, now)
	h.Notes = strings.TrimSpace(habitNotes)
	h.Tags = append(h.Tags, habitTags...)

	p, err := models.ParsePriority(habitPriority)
	if err != nil {
		return err
	}
	h.Priority = p

	h.Schedule.Frequency = models.Frequency(strings.ToLower(habitEvery))
	if h.Schedule.Frequency == models.FrequencyWeekly {
		if h.Schedule.Weekdays, err = parseWeekdays(habitOn); err != nil {
			return err
		}
	}
	if h.Schedule.Frequency == models.FrequencyInterval {
		h.Schedule.Interval = habitInterval
	}
	if habitStart != "" {
		start, _, err := parseDay(habitStart, now)
		if err != nil {
			return err
		}
		h.Schedule.StartDate = util.StartOfDay(start)
	}

	if habitAlert != "" {
		hour, minute, err := parseClock(habitAlert)
		if err != nil {
			return err
		}
		h.AlertHour = &hour
		h.AlertMinute = minute
	}

	// A habit due today starts with today's instance.
	if h.IsDueOn(now) {
		h.Replenish(util.StartOfDay(now))
		h.UpdatedAt = now
	}

	err = withStore(func(s *memory.SQLiteStore) error {
		return s.CreateHabit(cmd.Context(), h)
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), h)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added habit %s: %s (%s)\n", h.ID, h.Title, describeSchedule(h.Schedule))
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	var habits []models.Habit
	err := withStore(func(s *memory.SQLiteStore) error {
		var err error
		habits, err = s.ListHabits(cmd.Context(), habitListAll)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if habits == nil {
			habits = []models.Habit{}
		}
		return printJSON(out, habits)
	}
	if len(habits) == 0 {
		fmt.Fprintln(out, "No habits found. Add one with: daywing habit add \"<title>\"")
		return nil
	}

	now := nowFunc()
	width := titleWidth(cmd, 40)
	for _, h := range habits {
		mark := " "
		if h.CompletedOn(now) {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %-13s %-18s %s\n", mark, util.ShortID(h.ID, 0), describeSchedule(h.Schedule), util.Truncate(h.Title, width))
	}
	return nil
}

func runHabitCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var h *models.Habit
	err := withStore(func(s *memory.SQLiteStore) error {
		id, err := resolveHabitID(ctx, s, args[0])
		if err != nil {
			return err
		}
		h, err = s.CheckHabit(ctx, id, nowFunc())
		return err
	})
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), h)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Checked off habit '%s' (ID: %s).\n", h.Title, h.ID)
	return nil
}

func runHabitArchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var h *models.Habit
	err := withStore(func(s *memory.SQLiteStore) error {
		id, err := resolveHabitID(ctx, s, args[0])
		if err != nil {
			return err
		}
		if h, err = s.GetHabit(ctx, id); err != nil {
			return err
		}
		h.Archived = true
		h.UpdatedAt = nowFunc()
		return s.UpdateHabit(ctx, h)
	})
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), h)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived habit '%s' (ID: %s).\n", h.Title, h.ID)
	return nil
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var id string
	err := withStore(func(s *memory.SQLiteStore) error {
		var err error
		if id, err = resolveHabitID(ctx, s, args[0]); err != nil {
			return err
		}
		return s.DeleteHabit(ctx, id)
	})
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted habit %s\n", id)
	return nil
}

func describeSchedule(s models.Schedule) string {
	switch s.Frequency {
	case models.FrequencyWeekly:
		names := make([]string, len(s.Weekdays))
		for i, d := range s.Weekdays {
			names[i] = d.String()[:3]
		}
		return "weekly " + strings.Join(names, ",")
	case models.FrequencyInterval:
		return fmt.Sprintf("every %d days", s.Interval)
	default:
		return "daily"
	}
}
