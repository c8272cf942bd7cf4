package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/store"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	goalTarget      float64
	goalCurrent     float64
	goalUnit        string
	goalCategory    string
	goalDeadline    string
	goalDescription string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage measurable goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Long: `Add a goal with a numeric target and a deadline.

Examples:
  wellwatch goal add "Read 12 books" --target 12 --unit books --deadline 2026-12-31
  wellwatch goal add "Run 100 km" --target 100 --unit km --category fitness --deadline 2026-11-30`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGoalAdd,
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress <id> <current>",
	Short: "Set a goal's current value",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalProgress,
}

var goalRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalRm,
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals with progress",
	Args:    cobra.NoArgs,
	RunE:    runGoalList,
}

func init() {
	goalAddCmd.Flags().Float64Var(&goalTarget, "target", 0, "Target value (required, > 0)")
	goalAddCmd.Flags().Float64Var(&goalCurrent, "current", 0, "Starting value")
	goalAddCmd.Flags().StringVar(&goalUnit, "unit", "", "Unit of the target")
	goalAddCmd.Flags().StringVarP(&goalCategory, "category", "c", string(tracker.CategoryPersonal), "Category (health, productivity, learning, wellness, fitness, personal)")
	goalAddCmd.Flags().StringVar(&goalDeadline, "deadline", "", "Deadline (YYYY-MM-DD, required)")
	goalAddCmd.Flags().StringVarP(&goalDescription, "description", "d", "", "Longer description")
	_ = goalAddCmd.MarkFlagRequired("target")
	_ = goalAddCmd.MarkFlagRequired("deadline")
	goalCmd.AddCommand(goalAddCmd, goalProgressCmd, goalRmCmd, goalListCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	category, err := tracker.ParseCategory(goalCategory)
	if err != nil {
		return err
	}
	if goalTarget <= 0 {
		return fmt.Errorf("--target must be greater than zero")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	deadline, err := parseDay(goalDeadline, e.today())
	if err != nil {
		return err
	}

	g := &tracker.Goal{
		Title:       strings.Join(args, " "),
		Description: goalDescription,
		Category:    category,
		Target:      goalTarget,
		Current:     goalCurrent,
		Unit:        goalUnit,
		CreatedAt:   e.now(),
		Deadline:    endOfDay(deadline, e.loc),
	}
	if err := e.db.InsertGoal(g); err != nil {
		return fmt.Errorf("adding goal: %w", err)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), g)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added goal %s %s (due %s)\n",
		checkMark(), output.StyleMuted.Render(shortID(g.ID)), g.Title, deadline)
	return nil
}

func runGoalProgress(cmd *cobra.Command, args []string) error {
	current, err := strconv.ParseFloat(args[1], 64)
	if err != nil || current < 0 {
		return fmt.Errorf("invalid current value %q (want a non-negative number)", args[1])
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindGoal, args[0])
	if err != nil {
		return err
	}
	g, err := e.db.UpdateGoalProgress(id, current)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, g)
	}
	fmt.Fprintf(out, "%s %s: %s %s\n", checkMark(), g.Title, formatAmount(g.Current, g.Target, g.Unit), output.ProgressBar(g.Progress, 20))
	if g.IsCompleted {
		fmt.Fprintln(out, output.StyleSuccess.Render(" Goal reached!"))
	}
	return nil
}

func runGoalRm(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindGoal, args[0])
	if err != nil {
		return err
	}
	if err := e.db.DeleteGoal(id); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted goal %s\n", checkMark(), shortID(id))
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	goals, err := e.db.ListGoals()
	if err != nil {
		return fmt.Errorf("listing goals: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if goals == nil {
			goals = []tracker.Goal{}
		}
		return writeJSON(out, goals)
	}

	fmt.Fprintln(out, output.Section("Goals"))
	fmt.Fprintln(out)
	if len(goals) == 0 {
		fmt.Fprintln(out, " No goals. Add one with 'wellwatch goal add <title> --target N --deadline YYYY-MM-DD'.")
		return nil
	}

	now := e.now()
	tbl := output.NewTable("ID", "Goal", "Category", "Amount", "Progress", "Due")
	for _, g := range goals {
		due := humanize.RelTime(g.Deadline, now, "ago", "from now")
		switch {
		case g.IsCompleted:
			due = output.StyleSuccess.Render("done")
		case g.Deadline.Before(now):
			due = output.StyleError.Render("overdue " + due)
		}
		tbl.AddRow(
			shortID(g.ID),
			g.Title,
			output.CategoryLabel(string(g.Category)),
			formatAmount(g.Current, g.Target, g.Unit),
			output.ProgressBar(g.Progress, 12),
			due,
		)
	}
	tbl.Print(out)
	return nil
}

// endOfDay returns the last second of d in loc, so a deadline covers the
// whole day.
func endOfDay(d calendar.Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc)
}

func formatAmount(current, target float64, unit string) string {
	s := humanize.Ftoa(current) + "/" + humanize.Ftoa(target)
	if unit != "" {
		s += " " + unit
	}
	return s
}
