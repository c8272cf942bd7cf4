// Package streak derives habit streaks and day/week completion aggregates
// from tracker records. Every function is pure: "today" is always passed
// in, inputs are never mutated and empty inputs yield zero values.
package streak

import (
	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// Current returns the number of consecutive days ending at today on which
// the habit was completed. A habit not yet checked off today keeps its
// streak alive when yesterday was completed; in that case counting starts
// from yesterday.
func Current(dates []calendar.Date, today calendar.Date) int {
	if len(dates) == 0 {
		return 0
	}
	set := make(map[calendar.Date]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	day := today
	if !set[day] {
		day = today.AddDays(-1)
		if !set[day] {
			return 0
		}
	}

	n := 0
	for set[day] {
		n++
		day = day.AddDays(-1)
	}
	return n
}

// Best returns the longest run of calendar-consecutive dates.
func Best(dates []calendar.Date) int {
	sorted := calendar.Sorted(dates)
	if len(sorted) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDays(1) == sorted[i] {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// AliveViaYesterday reports whether the streak is alive only because
// yesterday was completed; today still needs a check-off to extend it.
func AliveViaYesterday(dates []calendar.Date, today calendar.Date) bool {
	var doneToday, doneYesterday bool
	yesterday := today.AddDays(-1)
	for _, d := range dates {
		switch d {
		case today:
			doneToday = true
		case yesterday:
			doneYesterday = true
		}
	}
	return doneYesterday && !doneToday
}

// HabitStats summarizes one habit as of a given day.
type HabitStats struct {
	HabitID   string  `json:"habit_id"`
	Name      string  `json:"name"`
	Current   int     `json:"current_streak"`
	Best      int     `json:"best_streak"`
	DoneToday bool    `json:"done_today"`
	AtRisk    bool    `json:"at_risk"`
	Rate30    float64 `json:"rate_30d"`
}

// ForHabit parses the habit's completion dates and computes its stats.
// An unparseable date is reported as a tracker.KindInvalidDate error.
func ForHabit(h tracker.Habit, today calendar.Date) (HabitStats, error) {
	dates, err := h.Dates()
	if err != nil {
		return HabitStats{}, err
	}

	window := calendar.LastNDays(today, 30)
	set := make(map[calendar.Date]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	hits := 0
	for _, d := range window {
		if set[d] {
			hits++
		}
	}

	return HabitStats{
		HabitID:   h.ID,
		Name:      h.Name,
		Current:   Current(dates, today),
		Best:      Best(dates),
		DoneToday: set[today],
		AtRisk:    AliveViaYesterday(dates, today),
		Rate30:    float64(hits) / float64(len(window)),
	}, nil
}

// Refresh returns copies of habits with Streak recomputed for today.
func Refresh(habits []tracker.Habit, today calendar.Date) ([]tracker.Habit, error) {
	out := make([]tracker.Habit, len(habits))
	for i, h := range habits {
		dates, err := h.Dates()
		if err != nil {
			return nil, err
		}
		h.CompletedDates = append([]string(nil), h.CompletedDates...)
		h.Streak = Current(dates, today)
		out[i] = h
	}
	return out, nil
}
