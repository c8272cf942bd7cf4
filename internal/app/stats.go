package app

import (
	"fmt"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	statsDate string
	statsWeek bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the daily summary, streaks and wellness averages",
	Long: `Show habit completion, task completion rate, per-category totals,
habit streaks and the 7-day wellness average for a day (default today).
With --week, also chart the habit completions of that week.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	addStatsFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

// addStatsFlags registers the stats flags on cmd. The root command shares
// them since it shows the same summary.
func addStatsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsDate, "date", "today", "Day to summarize (YYYY-MM-DD, today or yesterday)")
	cmd.Flags().BoolVarP(&statsWeek, "week", "w", false, "Include the weekly completion chart")
}

// statsOutput is the JSON-serializable output for the stats command.
type statsOutput struct {
	streak.DaySummary
	Streaks         []streak.HabitStats    `json:"streaks"`
	HabitsYesterday streak.Completion      `json:"habits_yesterday"`
	Wellness7       streak.WellnessAverage `json:"wellness_7d"`
	WellnessPrior7  streak.WellnessAverage `json:"wellness_prior_7d"`
	Week            []streak.Completion    `json:"week,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	day, err := parseDay(statsDate, e.today())
	if err != nil {
		return err
	}

	snap, err := e.snapshot(cmd.Context())
	if err != nil {
		return err
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	res, err := buildStats(snap, day)
	if err != nil {
		return err
	}
	if statsWeek {
		start, err := e.cfg.FirstWeekday()
		if err != nil {
			return err
		}
		res.Week = streak.WeeklyCompletion(snap.Habits, calendar.Week(day, start))
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	renderStats(cmd, res, e.cfg.Output.Width)
	return nil
}

func buildStats(snap *tracker.Snapshot, day calendar.Date) (*statsOutput, error) {
	res := &statsOutput{
		DaySummary:      streak.Day(snap, day),
		Streaks:         make([]streak.HabitStats, 0, len(snap.Habits)),
		HabitsYesterday: streak.DailyCompletion(snap.Habits, day.AddDays(-1)),
		Wellness7:       streak.WellnessAverages(snap.Wellness, 7),
		WellnessPrior7:  streak.PriorWellnessAverages(snap.Wellness, 7),
	}
	for _, h := range snap.Habits {
		hs, err := streak.ForHabit(h, day)
		if err != nil {
			return nil, err
		}
		res.Streaks = append(res.Streaks, hs)
	}
	if res.Categories == nil {
		res.Categories = []streak.CategoryCompletion{}
	}
	return res, nil
}

func renderStats(cmd *cobra.Command, res *statsOutput, width int) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, output.Section("Summary for "+res.Date))
	fmt.Fprintln(out)
	habitsLine := fmt.Sprintf(" %s %s  %s",
		output.StyleLabel.Render("Habits done"),
		output.StyleValue.Render(fmt.Sprintf("%d/%d", res.Habits.Completed, res.Habits.Total)),
		output.ProgressBar(res.Habits.Rate()*100, 20))
	if res.Habits.Total > 0 {
		delta := (res.Habits.Rate() - res.HabitsYesterday.Rate()) * 100
		habitsLine += "  " + output.TrendArrowPercent(delta, true) + " " + output.StyleMuted.Render("vs yesterday")
	}
	fmt.Fprintln(out, habitsLine)
	fmt.Fprintf(out, " %s %s  %s\n",
		output.StyleLabel.Render("Tasks completed"),
		output.StyleValue.Render(fmt.Sprintf("%.0f%%", res.TaskRate*100)),
		output.StyleMuted.Render("of tasks created that day"))
	if res.Wellness != nil {
		fmt.Fprintf(out, " %s %s\n",
			output.StyleLabel.Render("Check-in"),
			fmt.Sprintf("mood %d  stress %d  energy %d", res.Wellness.Mood, res.Wellness.Stress, res.Wellness.Energy))
	} else {
		fmt.Fprintf(out, " %s %s\n",
			output.StyleLabel.Render("Check-in"),
			output.StyleMuted.Render("none yet ('wellwatch checkin')"))
	}

	if len(res.Streaks) > 0 {
		fmt.Fprintln(out, output.Section("Habit Streaks"))
		fmt.Fprintln(out)
		tbl := output.NewTable("Habit", "Today", "Streak", "Best", "30d").AlignRight(3, 4)
		for _, hs := range res.Streaks {
			done := output.StyleMuted.Render("-")
			if hs.DoneToday {
				done = output.StyleSuccess.Render(checkMark())
			}
			tbl.AddRow(hs.Name, done, output.StreakBadge(hs.Current, hs.AtRisk),
				fmt.Sprintf("%d", hs.Best), fmt.Sprintf("%.0f%%", hs.Rate30*100))
		}
		tbl.Print(out)
	}

	if len(res.Categories) > 0 {
		fmt.Fprintln(out, output.Section("By Category"))
		fmt.Fprintln(out)
		for _, cc := range res.Categories {
			rate := 0.0
			if cc.Total > 0 {
				rate = float64(cc.Completed) / float64(cc.Total) * 100
			}
			fmt.Fprintf(out, " %s %s  %s\n",
				output.StyleLabel.Render(output.CategoryLabel(string(cc.Category))),
				output.StyleValue.Render(fmt.Sprintf("%d/%d", cc.Completed, cc.Total)),
				output.ProgressBar(rate, 12))
		}
	}

	fmt.Fprintln(out, output.Section("Wellness (last 7 check-ins)"))
	fmt.Fprintln(out)
	if res.Wellness7.Count == 0 {
		fmt.Fprintln(out, " No check-ins yet.")
	} else {
		prior := res.WellnessPrior7
		for _, row := range []struct {
			label          string
			value, before  float64
			higherIsBetter bool
		}{
			{"Mood", res.Wellness7.Mood, prior.Mood, true},
			{"Stress", res.Wellness7.Stress, prior.Stress, false},
			{"Energy", res.Wellness7.Energy, prior.Energy, true},
		} {
			line := fmt.Sprintf(" %s %s",
				output.StyleLabel.Render(row.label),
				output.StyleValue.Render(fmt.Sprintf("%.1f / %d", row.value, tracker.MaxRating)))
			if prior.Count > 0 {
				line += "  " + output.TrendArrow(row.value-row.before, row.higherIsBetter)
			}
			fmt.Fprintln(out, line)
		}
		if prior.Count > 0 {
			fmt.Fprintf(out, " %s\n", output.StyleMuted.Render(fmt.Sprintf("compared with the %d check-ins before", prior.Count)))
		}
	}

	if len(res.Week) > 0 {
		fmt.Fprintln(out, output.Section("This Week"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, output.WeekChart(res.Week, width-4, 8))
		tbl := output.NewTable("Day", "Date", "Done").AlignRight(2)
		for _, c := range res.Week {
			tbl.AddRow(c.Date.Weekday().String()[:3], c.Date.String(), fmt.Sprintf("%d/%d", c.Completed, c.Total))
		}
		tbl.Print(out)
	}
	fmt.Fprintln(out)
}
