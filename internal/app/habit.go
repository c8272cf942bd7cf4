package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/store"
	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	habitCategory string
	habitTarget   float64
	habitUnit     string
	habitIcon     string
	habitColor    string
	habitDate     string
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage daily habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitAdd,
}

var habitCheckCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Mark a habit done for today (or --date)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitCheck,
}

var habitUncheckCmd = &cobra.Command{
	Use:   "uncheck <id>",
	Short: "Remove a habit completion for today (or --date)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitUncheck,
}

var habitRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a habit and its history",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitRm,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with their streaks",
	Args:    cobra.NoArgs,
	RunE:    runHabitList,
}

func init() {
	habitAddCmd.Flags().StringVarP(&habitCategory, "category", "c", string(tracker.CategoryHealth), "Category (health, productivity, learning, wellness, fitness, personal)")
	habitAddCmd.Flags().Float64Var(&habitTarget, "target", 1, "Daily target amount")
	habitAddCmd.Flags().StringVar(&habitUnit, "unit", "times", "Unit of the target")
	habitAddCmd.Flags().StringVar(&habitIcon, "icon", "", "Display icon")
	habitAddCmd.Flags().StringVar(&habitColor, "color", "", "Display color")
	for _, c := range []*cobra.Command{habitCheckCmd, habitUncheckCmd} {
		c.Flags().StringVar(&habitDate, "date", "today", "Day to mark (YYYY-MM-DD, today or yesterday)")
	}
	habitCmd.AddCommand(habitAddCmd, habitCheckCmd, habitUncheckCmd, habitRmCmd, habitListCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	category, err := tracker.ParseCategory(habitCategory)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	h := &tracker.Habit{
		Name:      strings.Join(args, " "),
		Icon:      habitIcon,
		Color:     habitColor,
		Category:  category,
		Target:    habitTarget,
		Unit:      habitUnit,
		CreatedAt: e.now(),
	}
	if err := e.db.InsertHabit(h); err != nil {
		return fmt.Errorf("adding habit: %w", err)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), h)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added habit %s %s (%s)\n", checkMark(),
		output.StyleMuted.Render(shortID(h.ID)), h.Name, output.CategoryLabel(string(h.Category)))
	return nil
}

func runHabitCheck(cmd *cobra.Command, args []string) error {
	return markHabit(cmd, args[0], true)
}

func runHabitUncheck(cmd *cobra.Command, args []string) error {
	return markHabit(cmd, args[0], false)
}

// markHabit records or removes a completion, then stores the recomputed
// streak so the persisted value never goes stale.
func markHabit(cmd *cobra.Command, prefix string, done bool) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	today := e.today()
	day, err := parseDay(habitDate, today)
	if err != nil {
		return err
	}
	if day.After(today) {
		return fmt.Errorf("cannot mark %s: it is in the future", day)
	}

	id, err := e.resolve(store.KindHabit, prefix)
	if err != nil {
		return err
	}
	if done {
		err = e.db.MarkHabitDone(id, day)
	} else {
		err = e.db.UnmarkHabit(id, day)
	}
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}

	stats, err := refreshHabit(e, id, today)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), stats)
	}
	verb := "Checked"
	if !done {
		verb = "Unchecked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s for %s  %s\n", checkMark(), verb, stats.Name, day,
		output.StreakBadge(stats.Current, stats.AtRisk))
	return nil
}

// refreshHabit recomputes and stores one habit's streak.
func refreshHabit(e *env, id string, today calendar.Date) (streak.HabitStats, error) {
	habits, err := e.db.ListHabits()
	if err != nil {
		return streak.HabitStats{}, fmt.Errorf("loading habits: %w", err)
	}
	for _, h := range habits {
		if h.ID != id {
			continue
		}
		stats, err := streak.ForHabit(h, today)
		if err != nil {
			return streak.HabitStats{}, err
		}
		if err := e.db.SetHabitStreak(id, stats.Current); err != nil {
			return streak.HabitStats{}, fmt.Errorf("storing streak: %w", err)
		}
		return stats, nil
	}
	return streak.HabitStats{}, store.ErrNotFound
}

func runHabitRm(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindHabit, args[0])
	if err != nil {
		return err
	}
	if err := e.db.DeleteHabit(id); err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted habit %s\n", checkMark(), shortID(id))
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	habits, err := e.db.ListHabits()
	if err != nil {
		return fmt.Errorf("listing habits: %w", err)
	}
	today := e.today()

	stats := make([]streak.HabitStats, 0, len(habits))
	for _, h := range habits {
		s, err := streak.ForHabit(h, today)
		if err != nil {
			return err
		}
		stats = append(stats, s)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, stats)
	}

	fmt.Fprintln(out, output.Section("Habits"))
	fmt.Fprintln(out)
	if len(habits) == 0 {
		fmt.Fprintln(out, " No habits yet. Add one with 'wellwatch habit add <name>'.")
		return nil
	}

	tbl := output.NewTable("ID", "Habit", "Category", "Today", "Streak", "Best", "30d").AlignRight(5, 6)
	for i, h := range habits {
		s := stats[i]
		todayMark := output.StyleMuted.Render("·")
		if s.DoneToday {
			todayMark = output.StyleSuccess.Render(checkMark())
		}
		name := h.Name
		if h.Icon != "" {
			name = h.Icon + " " + name
		}
		tbl.AddRow(
			shortID(h.ID),
			name,
			output.CategoryLabel(string(h.Category)),
			todayMark,
			output.StreakBadge(s.Current, s.AtRisk),
			fmt.Sprintf("%d", s.Best),
			fmt.Sprintf("%.0f%%", s.Rate30*100),
		)
	}
	tbl.Print(out)
	return nil
}
