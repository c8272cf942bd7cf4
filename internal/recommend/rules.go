package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// Thresholds used by the built-in analyzers.
const (
	recentTaskWindow      = 7 * 24 * time.Hour
	lowTaskCompletionRate = 0.6
	weakStreak            = 3
	strongStreak          = 7
	minWellnessEntries    = 3
	wellnessWindow        = 7
	lowMood               = 3.0
	highStress            = 3.5
	slowGoalProgress      = 30.0
	productiveTasks       = 10
	productiveHabits      = 3
	maxHabitSuggestions   = 2
	minGoals              = 3
)

// TaskCompletion flags a low completion rate among tasks created in the
// last seven days.
func TaskCompletion(in *Input) []Recommendation {
	cutoff := in.Now.Add(-recentTaskWindow)
	var recent, completed int
	for _, t := range in.Snapshot.Tasks {
		if t.CreatedAt.Before(cutoff) || t.CreatedAt.After(in.Now) {
			continue
		}
		recent++
		if t.Completed {
			completed++
		}
	}
	if recent == 0 {
		return nil
	}

	rate := float64(completed) / float64(recent)
	if rate >= lowTaskCompletionRate {
		return nil
	}
	return []Recommendation{{
		Type:     TypeProductivity,
		Priority: tracker.PriorityHigh,
		Title:    "Break tasks into smaller steps",
		Description: fmt.Sprintf(
			"You completed %d of %d tasks created this week (%.0f%%). "+
				"Splitting large tasks into smaller, concrete steps makes them easier to finish.",
			completed, recent, rate*100,
		),
		Confidence: 85,
		Category:   "task management",
		Action:     "Pick your largest open task and split it into three steps",
	}}
}

// HabitStreaks encourages focus when streaks are short and celebrates long
// ones. Streaks are recomputed from completion dates rather than read from
// the stored counter.
func HabitStreaks(in *Input) []Recommendation {
	var weak, strong int
	for _, h := range in.Snapshot.Habits {
		dates, err := h.Dates()
		if err != nil {
			continue
		}
		n := streak.Current(dates, in.Today)
		if n < weakStreak {
			weak++
		}
		if n > strongStreak {
			strong++
		}
	}

	var recs []Recommendation
	if weak > 0 {
		recs = append(recs, Recommendation{
			Type:     TypeHabit,
			Priority: tracker.PriorityMedium,
			Title:    "Build consistency with one habit",
			Description: fmt.Sprintf(
				"%d %s a streak shorter than %d days. Focus on a single habit until it sticks before adding more.",
				weak, pluralize(weak, "habit has", "habits have"), weakStreak,
			),
			Confidence: 75,
			Category:   "habit building",
			Action:     "Choose one habit to complete every day this week",
		})
	}
	if strong > 0 {
		recs = append(recs, Recommendation{
			Type:     TypeHabit,
			Priority: tracker.PriorityLow,
			Title:    "Great streaks, try a new habit",
			Description: fmt.Sprintf(
				"%d %s a streak longer than %d days. You have momentum; consider adding a new habit.",
				strong, pluralize(strong, "habit has", "habits have"), strongStreak,
			),
			Confidence: 90,
			Category:   "habit building",
			Action:     "Add a new habit",
		})
	}
	return recs
}

// WellnessTrend prompts sparse trackers to check in, and otherwise looks
// at the last seven check-ins for low mood and high stress.
func WellnessTrend(in *Input) []Recommendation {
	entries := in.Snapshot.Wellness
	if len(entries) < minWellnessEntries {
		return []Recommendation{{
			Type:     TypeWellness,
			Priority: tracker.PriorityMedium,
			Title:    "Start tracking your wellness",
			Description: fmt.Sprintf(
				"You have %d wellness check-ins. Logging mood, stress and energy daily reveals patterns over time.",
				len(entries),
			),
			Confidence: 80,
			Category:   "self awareness",
			Action:     "Log today's check-in",
		}}
	}

	avg := streak.WellnessAverages(entries, wellnessWindow)

	var recs []Recommendation
	if avg.Mood < lowMood {
		recs = append(recs, Recommendation{
			Type:     TypeWellness,
			Priority: tracker.PriorityHigh,
			Title:    "Your mood has been low",
			Description: fmt.Sprintf(
				"Your average mood over the last %d check-ins is %.1f out of 5. "+
					"Consider activities that lift your mood, like time outdoors or talking with a friend.",
				avg.Count, avg.Mood,
			),
			Confidence: 85,
			Category:   "mental health",
			Action:     "Schedule one enjoyable activity today",
		})
	}
	if avg.Stress > highStress {
		recs = append(recs, Recommendation{
			Type:     TypeWellness,
			Priority: tracker.PriorityHigh,
			Title:    "Your stress is elevated",
			Description: fmt.Sprintf(
				"Your average stress over the last %d check-ins is %.1f out of 5. "+
					"Short breathing exercises or breaks between tasks can help.",
				avg.Count, avg.Stress,
			),
			Confidence: 90,
			Category:   "stress management",
			Action:     "Try a five-minute breathing exercise",
		})
	}
	return recs
}

// GoalProgress flags incomplete goals that are under 30% done.
func GoalProgress(in *Input) []Recommendation {
	slow := 0
	for _, g := range in.Snapshot.Goals {
		if !g.IsCompleted && g.Progress < slowGoalProgress {
			slow++
		}
	}
	if slow == 0 {
		return nil
	}
	return []Recommendation{{
		Type:     TypeGoal,
		Priority: tracker.PriorityMedium,
		Title:    "Re-plan slow goals",
		Description: fmt.Sprintf(
			"%d %s below %.0f%% progress. Breaking them into milestones with dates keeps them moving.",
			slow, pluralize(slow, "goal is", "goals are"), slowGoalProgress,
		),
		Confidence: 70,
		Category:   "goal setting",
		Action:     "Set a milestone for each slow goal",
	}}
}

// ProductivityPattern recognizes users who complete many tasks and keep
// several habits going.
func ProductivityPattern(in *Input) []Recommendation {
	completedTasks := 0
	for _, t := range in.Snapshot.Tasks {
		if t.Completed {
			completedTasks++
		}
	}
	activeHabits := 0
	for _, h := range in.Snapshot.Habits {
		if len(h.CompletedDates) > 0 {
			activeHabits++
		}
	}
	if completedTasks <= productiveTasks || activeHabits <= productiveHabits {
		return nil
	}
	return []Recommendation{{
		Type:     TypeProductivity,
		Priority: tracker.PriorityLow,
		Title:    "Strong productivity pattern",
		Description: fmt.Sprintf(
			"You have completed %d tasks and are practicing %d habits. Keep this rhythm going.",
			completedTasks, activeHabits,
		),
		Confidence: 95,
		Category:   "productivity",
	}}
}

// habitSuggestions maps missing categories to a starter habit, in the
// order suggestions are offered.
var habitSuggestions = []struct {
	category tracker.Category
	habit    string
}{
	{tracker.CategoryFitness, "daily exercise"},
	{tracker.CategoryLearning, "reading habit"},
	{tracker.CategoryWellness, "mindfulness practice"},
	{tracker.CategoryProductivity, "time blocking"},
}

// Personalized suggests habits for uncovered categories and more goals
// when there are few.
func Personalized(in *Input) []Recommendation {
	present := make(map[tracker.Category]bool)
	for _, h := range in.Snapshot.Habits {
		present[h.Category] = true
	}
	missing := make(map[tracker.Category]bool)
	for _, c := range tracker.MissingCategories(present) {
		missing[c] = true
	}

	var ideas []string
	for _, s := range habitSuggestions {
		if len(ideas) == maxHabitSuggestions {
			break
		}
		if missing[s.category] {
			ideas = append(ideas, s.habit)
		}
	}

	var recs []Recommendation
	if len(ideas) > 0 {
		recs = append(recs, Recommendation{
			Type:     TypeHabit,
			Priority: tracker.PriorityLow,
			Title:    "Round out your habits",
			Description: fmt.Sprintf(
				"Consider adding a %s to cover more areas of your life.",
				strings.Join(ideas, " or a "),
			),
			Confidence: 65,
			Category:   "personal growth",
			Action:     "Add a " + ideas[0],
		})
	}
	if len(in.Snapshot.Goals) < minGoals {
		recs = append(recs, Recommendation{
			Type:     TypeGoal,
			Priority: tracker.PriorityMedium,
			Title:    "Set more goals",
			Description: fmt.Sprintf(
				"You have %d %s. Setting a few clear goals across categories gives your habits direction.",
				len(in.Snapshot.Goals), pluralize(len(in.Snapshot.Goals), "goal", "goals"),
			),
			Confidence: 75,
			Category:   "goal setting",
			Action:     "Add a goal",
		})
	}
	return recs
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
