package watcher

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// streakMilestones are streak lengths worth celebrating.
var streakMilestones = []int{7, 30, 100, 365}

// Compare detects notable changes between two watch states and returns alerts.
// It checks for critical, warning, and info-level changes.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical reports streaks of three or more days that were lost.
func compareCritical(prev, curr *WatchState) []Alert {
	var alerts []Alert
	prevByID := habitsByID(prev)

	for _, h := range curr.Habits {
		p, ok := prevByID[h.HabitID]
		if !ok || p.Current < 3 || h.Current > 0 {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   fmt.Sprintf("Streak lost: %s", h.Name),
			Message: fmt.Sprintf("Your %d-day streak ended. Your best is %d days.", p.Current, h.Best),
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// compareWarning reports high-priority recommendations that were not in
// the previous run. Recommendations are matched by type and title since
// ids change with every run.
func compareWarning(prev, curr *WatchState) []Alert {
	var alerts []Alert

	seen := make(map[string]bool, len(prev.Recommendations))
	for _, r := range prev.Recommendations {
		seen[string(r.Type)+":"+r.Title] = true
	}
	for _, r := range curr.Recommendations {
		if r.Priority != tracker.PriorityHigh || seen[string(r.Type)+":"+r.Title] {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   r.Title,
			Message: r.Description,
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// compareInfo reports streak milestones and a fully completed day.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert
	prevByID := habitsByID(prev)

	for _, h := range curr.Habits {
		p := prevByID[h.HabitID]
		for _, m := range streakMilestones {
			if h.Current >= m && p.Current < m {
				alerts = append(alerts, Alert{
					Level:   "info",
					Title:   fmt.Sprintf("%d-day streak: %s", m, h.Name),
					Message: fmt.Sprintf("%s has been done %d days in a row", h.Name, h.Current),
					Time:    curr.Timestamp,
				})
			}
		}
	}

	day := curr.HabitsDone
	allDone := day.Total > 0 && day.Completed == day.Total
	wasAllDone := prev.Today == curr.Today &&
		prev.HabitsDone.Total > 0 && prev.HabitsDone.Completed == prev.HabitsDone.Total
	if allDone && !wasAllDone {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "All habits done",
			Message: fmt.Sprintf("Completed all %d habits for %s", day.Total, curr.Today),
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// Reminders returns an alert listing habits whose streak is alive only
// because of yesterday, once the local hour reaches reminderHour.
func Reminders(curr *WatchState, reminderHour int) []Alert {
	if curr.Timestamp.Hour() < reminderHour {
		return nil
	}
	var names []string
	for _, h := range curr.Habits {
		if h.AtRisk {
			names = append(names, fmt.Sprintf("%s (%s)", h.Name, days(h.Current)))
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []Alert{{
		Level:   "warning",
		Title:   "Streaks at risk",
		Message: "Check in today to keep: " + strings.Join(names, ", "),
		Time:    curr.Timestamp,
	}}
}

func habitsByID(s *WatchState) map[string]streak.HabitStats {
	out := make(map[string]streak.HabitStats, len(s.Habits))
	for _, h := range s.Habits {
		out[h.HabitID] = h
	}
	return out
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
