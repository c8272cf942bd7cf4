package streak

import (
	"sort"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// Completion counts the habits completed on a single day.
type Completion struct {
	Date      calendar.Date `json:"date"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
}

// Rate returns Completed/Total, or 0 when there are no habits.
func (c Completion) Rate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

// DailyCompletion counts habits whose CompletedDates contain date.
func DailyCompletion(habits []tracker.Habit, date calendar.Date) Completion {
	c := Completion{Date: date, Total: len(habits)}
	for _, h := range habits {
		if h.DoneOn(date) {
			c.Completed++
		}
	}
	return c
}

// WeeklyCompletion returns one Completion per entry of week, in order.
func WeeklyCompletion(habits []tracker.Habit, week []calendar.Date) []Completion {
	out := make([]Completion, len(week))
	for i, d := range week {
		out[i] = DailyCompletion(habits, d)
	}
	return out
}

// TaskCompletionRate returns the share of tasks created on date that are
// completed. Returns 0 when no tasks were created that day.
func TaskCompletionRate(tasks []tracker.Task, date calendar.Date) float64 {
	var created, completed int
	for _, t := range tasks {
		if calendar.FromTime(t.CreatedAt) != date {
			continue
		}
		created++
		if t.Completed {
			completed++
		}
	}
	if created == 0 {
		return 0
	}
	return float64(completed) / float64(created)
}

// CategoryCompletion is a per-category DailyCompletion.
type CategoryCompletion struct {
	Category  tracker.Category `json:"category"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
}

// CategoryTotals groups DailyCompletion by habit category. Only categories
// with at least one habit are returned, in canonical category order.
func CategoryTotals(habits []tracker.Habit, date calendar.Date) []CategoryCompletion {
	byCat := make(map[tracker.Category]*CategoryCompletion)
	for _, h := range habits {
		cc, ok := byCat[h.Category]
		if !ok {
			cc = &CategoryCompletion{Category: h.Category}
			byCat[h.Category] = cc
		}
		cc.Total++
		if h.DoneOn(date) {
			cc.Completed++
		}
	}

	var out []CategoryCompletion
	for _, c := range tracker.Categories {
		if cc, ok := byCat[c]; ok {
			out = append(out, *cc)
		}
	}
	return out
}

// WellnessAverage holds mean ratings over a window of check-ins.
type WellnessAverage struct {
	Count  int     `json:"count"`
	Mood   float64 `json:"mood"`
	Stress float64 `json:"stress"`
	Energy float64 `json:"energy"`
}

// RecentWellness returns up to n entries, most recent date first. Entries
// are assumed validated; dates compare lexically in YYYY-MM-DD form.
func RecentWellness(entries []tracker.WellnessEntry, n int) []tracker.WellnessEntry {
	sorted := make([]tracker.WellnessEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WellnessAverages returns the mean mood, stress and energy over the n
// most recent entries. A zero Count means there was nothing to average.
func WellnessAverages(entries []tracker.WellnessEntry, n int) WellnessAverage {
	return average(RecentWellness(entries, n))
}

// PriorWellnessAverages averages the n entries that precede the n most
// recent ones, the window WellnessAverages is compared against.
func PriorWellnessAverages(entries []tracker.WellnessEntry, n int) WellnessAverage {
	if n <= 0 {
		return WellnessAverage{}
	}
	recent := RecentWellness(entries, 2*n)
	if len(recent) <= n {
		return WellnessAverage{}
	}
	return average(recent[n:])
}

func average(entries []tracker.WellnessEntry) WellnessAverage {
	if len(entries) == 0 {
		return WellnessAverage{}
	}
	var mood, stress, energy int
	for _, e := range entries {
		mood += e.Mood
		stress += e.Stress
		energy += e.Energy
	}
	k := float64(len(entries))
	return WellnessAverage{
		Count:  len(entries),
		Mood:   float64(mood) / k,
		Stress: float64(stress) / k,
		Energy: float64(energy) / k,
	}
}

// DaySummary combines the per-day aggregates shown on the stats screen.
type DaySummary struct {
	Date       string                 `json:"date"`
	Habits     Completion             `json:"habits"`
	TaskRate   float64                `json:"task_completion_rate"`
	Categories []CategoryCompletion   `json:"categories"`
	Wellness   *tracker.WellnessEntry `json:"wellness,omitempty"`
}

// Day builds the DaySummary for date from a snapshot.
func Day(snap *tracker.Snapshot, date calendar.Date) DaySummary {
	sum := DaySummary{
		Date:       date.String(),
		Habits:     DailyCompletion(snap.Habits, date),
		TaskRate:   TaskCompletionRate(snap.Tasks, date),
		Categories: CategoryTotals(snap.Habits, date),
	}
	ds := date.String()
	for i := range snap.Wellness {
		if snap.Wellness[i].Date == ds {
			entry := snap.Wellness[i]
			sum.Wellness = &entry
			break
		}
	}
	return sum
}
