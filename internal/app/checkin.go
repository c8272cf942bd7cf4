package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/store"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	checkinMood   int
	checkinStress int
	checkinEnergy int
	checkinNotes  string
	checkinDate   string
	checkinRmDate string
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record today's mood, stress and energy (1-5)",
	Long: `Record a daily wellness check-in. Ratings run from 1 (low) to 5 (high).
One check-in is kept per day; checking in again replaces it.

Without rating flags on an interactive terminal, a form asks for the values.

Examples:
  wellwatch checkin                                # interactive form
  wellwatch checkin --mood 4 --stress 2 --energy 3
  wellwatch checkin --date yesterday --mood 3 --stress 3 --energy 2
  wellwatch checkin rm --date yesterday`,
	Args: cobra.NoArgs,
	RunE: runCheckin,
}

var checkinRmCmd = &cobra.Command{
	Use:     "rm",
	Aliases: []string{"delete"},
	Short:   "Delete the check-in for a day",
	Args:    cobra.NoArgs,
	RunE:    runCheckinRm,
}

func init() {
	checkinCmd.Flags().IntVar(&checkinMood, "mood", 0, "Mood rating (1-5)")
	checkinCmd.Flags().IntVar(&checkinStress, "stress", 0, "Stress rating (1-5)")
	checkinCmd.Flags().IntVar(&checkinEnergy, "energy", 0, "Energy rating (1-5)")
	checkinCmd.Flags().StringVar(&checkinNotes, "notes", "", "Free-form notes")
	checkinCmd.Flags().StringVar(&checkinDate, "date", "today", "Day of the check-in (YYYY-MM-DD, today or yesterday)")
	checkinRmCmd.Flags().StringVar(&checkinRmDate, "date", "today", "Day of the check-in (YYYY-MM-DD, today or yesterday)")
	checkinCmd.AddCommand(checkinRmCmd)
	rootCmd.AddCommand(checkinCmd)
}

func runCheckin(cmd *cobra.Command, args []string) error {
	entry := tracker.WellnessEntry{
		Mood:   checkinMood,
		Stress: checkinStress,
		Energy: checkinEnergy,
		Notes:  checkinNotes,
	}

	ratingsGiven := cmd.Flags().Changed("mood") || cmd.Flags().Changed("stress") || cmd.Flags().Changed("energy")
	if !ratingsGiven {
		if !output.IsTerminal(os.Stdin) {
			return errors.New("no ratings given; pass --mood, --stress and --energy")
		}
		if err := checkinForm(&entry); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	day, err := parseDay(checkinDate, e.today())
	if err != nil {
		return err
	}
	if day.After(e.today()) {
		return fmt.Errorf("cannot check in for %s: it is in the future", day)
	}
	entry.Date = day.String()

	if err := e.db.UpsertWellnessEntry(entry); err != nil {
		var terr *tracker.Error
		if errors.As(err, &terr) && terr.Kind == tracker.KindMalformedRecord {
			return fmt.Errorf("%s must be between %d and %d", terr.Field, tracker.MinRating, tracker.MaxRating)
		}
		return fmt.Errorf("saving check-in: %w", err)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), entry)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Checked in for %s: mood %d, stress %d, energy %d\n",
		checkMark(), entry.Date, entry.Mood, entry.Stress, entry.Energy)
	return nil
}

func runCheckinRm(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	day, err := parseDay(checkinRmDate, e.today())
	if err != nil {
		return err
	}
	if err := e.db.DeleteWellnessEntry(day.String()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no check-in for %s", day)
		}
		return fmt.Errorf("deleting check-in: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted check-in for %s\n", checkMark(), day)
	return nil
}

// checkinForm asks for the three ratings and notes interactively.
func checkinForm(entry *tracker.WellnessEntry) error {
	entry.Mood, entry.Stress, entry.Energy = 3, 3, 3

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Mood").Options(ratingOptions("awful", "great")...).Value(&entry.Mood),
			huh.NewSelect[int]().Title("Stress").Options(ratingOptions("calm", "overwhelmed")...).Value(&entry.Stress),
			huh.NewSelect[int]().Title("Energy").Options(ratingOptions("drained", "energized")...).Value(&entry.Energy),
			huh.NewInput().Title("Notes").Placeholder("optional").Value(&entry.Notes),
		).Title("Daily check-in"),
	).WithShowHelp(true).WithShowErrors(true)

	return form.Run()
}

func ratingOptions(low, high string) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, tracker.MaxRating-tracker.MinRating+1)
	for r := tracker.MinRating; r <= tracker.MaxRating; r++ {
		label := fmt.Sprintf("%d", r)
		switch r {
		case tracker.MinRating:
			label += " - " + low
		case tracker.MaxRating:
			label += " - " + high
		}
		opts = append(opts, huh.NewOption(label, r))
	}
	return opts
}
