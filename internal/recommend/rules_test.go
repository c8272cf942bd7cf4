package recommend

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

func input(snap *tracker.Snapshot) *Input {
	return &Input{Snapshot: snap, Now: now, Today: calendar.FromTime(now)}
}

func tasks(total, completed int, created time.Time) []tracker.Task {
	out := make([]tracker.Task, total)
	for i := range out {
		out[i] = tracker.Task{
			ID:        fmt.Sprintf("t%d", i),
			Priority:  tracker.PriorityLow,
			Completed: i < completed,
			CreatedAt: created,
		}
	}
	return out
}

// streakDates returns n consecutive dates ending at today-offset.
func streakDates(n, offset int) []string {
	today := calendar.FromTime(now)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = today.AddDays(-offset - i).String()
	}
	return out
}

func wellness(moods, stress []int) []tracker.WellnessEntry {
	today := calendar.FromTime(now)
	out := make([]tracker.WellnessEntry, len(moods))
	for i := range moods {
		out[i] = tracker.WellnessEntry{Date: today.AddDays(-i).String(), Mood: moods[i], Stress: stress[i], Energy: 3}
	}
	return out
}

// --- TaskCompletion ---

func TestTaskCompletion_LowRateFires(t *testing.T) {
	snap := &tracker.Snapshot{Tasks: tasks(10, 3, now.Add(-2*time.Hour))}
	recs := TaskCompletion(input(snap))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Type != TypeProductivity || r.Priority != tracker.PriorityHigh || r.Confidence != 85 {
		t.Errorf("got type=%s priority=%s confidence=%d", r.Type, r.Priority, r.Confidence)
	}
	if !strings.Contains(r.Description, "3 of 10") {
		t.Errorf("description should mention counts: %q", r.Description)
	}
}

func TestTaskCompletion_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		created   time.Time
		want      int
	}{
		{"exactly 60 percent", 10, 6, now.Add(-time.Hour), 0},
		{"just below", 10, 5, now.Add(-time.Hour), 1},
		{"old tasks ignored", 10, 0, now.Add(-8 * 24 * time.Hour), 0},
		{"no tasks", 0, 0, now, 0},
		{"six days ago counts", 4, 0, now.Add(-6 * 24 * time.Hour), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := &tracker.Snapshot{Tasks: tasks(tc.total, tc.completed, tc.created)}
			if got := len(TaskCompletion(input(snap))); got != tc.want {
				t.Errorf("got %d recommendations, want %d", got, tc.want)
			}
		})
	}
}

// --- HabitStreaks ---

func TestHabitStreaks(t *testing.T) {
	tests := []struct {
		name     string
		habits   []tracker.Habit
		wantConf []int
	}{
		{"no habits", nil, nil},
		{"weak only", []tracker.Habit{{ID: "a", CompletedDates: streakDates(2, 0)}}, []int{75}},
		{"strong only", []tracker.Habit{{ID: "a", CompletedDates: streakDates(8, 0)}}, []int{90}},
		{"both", []tracker.Habit{
			{ID: "a", CompletedDates: streakDates(1, 0)},
			{ID: "b", CompletedDates: streakDates(10, 1)},
		}, []int{75, 90}},
		{"exactly three and seven are neither", []tracker.Habit{
			{ID: "a", CompletedDates: streakDates(3, 0)},
			{ID: "b", CompletedDates: streakDates(7, 0)},
		}, nil},
		{"stale stored streak ignored", []tracker.Habit{
			{ID: "a", Streak: 30, CompletedDates: streakDates(5, 3)},
		}, []int{75}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := HabitStreaks(input(&tracker.Snapshot{Habits: tc.habits}))
			if len(recs) != len(tc.wantConf) {
				t.Fatalf("got %d recommendations, want %d", len(recs), len(tc.wantConf))
			}
			for i, r := range recs {
				if r.Confidence != tc.wantConf[i] {
					t.Errorf("rec %d confidence = %d, want %d", i, r.Confidence, tc.wantConf[i])
				}
				if r.Type != TypeHabit {
					t.Errorf("rec %d type = %s", i, r.Type)
				}
			}
		})
	}
}

func TestHabitStreaks_NamesCount(t *testing.T) {
	habits := []tracker.Habit{{ID: "a"}, {ID: "b"}}
	recs := HabitStreaks(input(&tracker.Snapshot{Habits: habits}))
	if len(recs) != 1 || !strings.HasPrefix(recs[0].Description, "2 habits have") {
		t.Errorf("got %+v", recs)
	}
	if recs[0].Priority != tracker.PriorityMedium {
		t.Errorf("priority = %s", recs[0].Priority)
	}
}

// --- WellnessTrend ---

func TestWellnessTrend_NoEntries(t *testing.T) {
	recs := WellnessTrend(input(&tracker.Snapshot{}))
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 recommendation, got %d", len(recs))
	}
	if recs[0].Confidence != 80 || recs[0].Priority != tracker.PriorityMedium {
		t.Errorf("got %+v", recs[0])
	}
}

func TestWellnessTrend_SparseSkipsAnalysis(t *testing.T) {
	// Two terrible days: still only the sparse-data prompt.
	snap := &tracker.Snapshot{Wellness: wellness([]int{1, 1}, []int{5, 5})}
	recs := WellnessTrend(input(snap))
	if len(recs) != 1 || recs[0].Confidence != 80 {
		t.Fatalf("got %+v", recs)
	}
}

func TestWellnessTrend_LowMood(t *testing.T) {
	snap := &tracker.Snapshot{Wellness: wellness([]int{1, 1, 2, 2, 1, 2, 1}, []int{2, 2, 2, 2, 2, 2, 2})}
	recs := WellnessTrend(input(snap))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Confidence != 85 || r.Priority != tracker.PriorityHigh {
		t.Errorf("got confidence=%d priority=%s", r.Confidence, r.Priority)
	}
	if !strings.Contains(r.Description, "1.4") {
		t.Errorf("description should embed mean 1.4: %q", r.Description)
	}
}

func TestWellnessTrend_HighStress(t *testing.T) {
	snap := &tracker.Snapshot{Wellness: wellness([]int{4, 4, 4}, []int{4, 4, 3})}
	recs := WellnessTrend(input(snap))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Confidence != 90 || !strings.Contains(recs[0].Description, "3.7") {
		t.Errorf("got %+v", recs[0])
	}
}

func TestWellnessTrend_BothFire(t *testing.T) {
	snap := &tracker.Snapshot{Wellness: wellness([]int{2, 2, 2}, []int{5, 5, 5})}
	recs := WellnessTrend(input(snap))
	if len(recs) != 2 || recs[0].Confidence != 85 || recs[1].Confidence != 90 {
		t.Fatalf("got %+v", recs)
	}
}

func TestWellnessTrend_UsesSevenMostRecent(t *testing.T) {
	// Seven recent happy days followed by older miserable ones.
	moods := []int{5, 5, 5, 5, 5, 5, 5, 1, 1, 1, 1}
	stress := []int{1, 1, 1, 1, 1, 1, 1, 5, 5, 5, 5}
	entries := wellness(moods, stress)
	// Reverse to prove ordering is by date, not slice position.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	recs := WellnessTrend(input(&tracker.Snapshot{Wellness: entries}))
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %+v", recs)
	}
}

func TestWellnessTrend_BoundaryValues(t *testing.T) {
	// Mood exactly 3 and stress exactly 3.5 do not fire.
	snap := &tracker.Snapshot{Wellness: wellness([]int{3, 3, 3, 3}, []int{3, 4, 3, 4})}
	if recs := WellnessTrend(input(snap)); len(recs) != 0 {
		t.Errorf("expected none, got %+v", recs)
	}
}

// --- GoalProgress ---

func TestGoalProgress(t *testing.T) {
	goals := []tracker.Goal{
		{ID: "a", Progress: 10},
		{ID: "b", Progress: 29.9},
		{ID: "c", Progress: 30},
		{ID: "d", Progress: 5, IsCompleted: true},
	}
	recs := GoalProgress(input(&tracker.Snapshot{Goals: goals}))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Confidence != 70 || !strings.HasPrefix(recs[0].Description, "2 goals are") {
		t.Errorf("got %+v", recs[0])
	}
	if GoalProgress(input(&tracker.Snapshot{})) != nil {
		t.Error("expected nil for no goals")
	}
}

// --- ProductivityPattern ---

func TestProductivityPattern(t *testing.T) {
	active := func(n int) []tracker.Habit {
		out := make([]tracker.Habit, n)
		for i := range out {
			out[i] = tracker.Habit{ID: fmt.Sprintf("h%d", i), CompletedDates: []string{"2026-01-01"}}
		}
		return out
	}
	tests := []struct {
		name   string
		tasks  []tracker.Task
		habits []tracker.Habit
		want   int
	}{
		{"fires", tasks(11, 11, now.Add(-30*24*time.Hour)), active(4), 1},
		{"ten tasks not enough", tasks(10, 10, now), active(4), 0},
		{"three habits not enough", tasks(20, 20, now), active(3), 0},
		{"habits without completions ignored", tasks(20, 20, now), append(active(3), tracker.Habit{ID: "x"}), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := ProductivityPattern(input(&tracker.Snapshot{Tasks: tc.tasks, Habits: tc.habits}))
			if len(recs) != tc.want {
				t.Fatalf("got %d, want %d", len(recs), tc.want)
			}
			if tc.want == 1 && (recs[0].Confidence != 95 || recs[0].Priority != tracker.PriorityLow) {
				t.Errorf("got %+v", recs[0])
			}
		})
	}
}

// --- Personalized ---

func TestPersonalized_HealthOnly(t *testing.T) {
	snap := &tracker.Snapshot{
		Habits: []tracker.Habit{{ID: "a", Category: tracker.CategoryHealth}},
		Goals:  []tracker.Goal{{ID: "1"}, {ID: "2"}, {ID: "3"}},
	}
	recs := Personalized(input(snap))
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Confidence != 65 || r.Type != TypeHabit {
		t.Errorf("got %+v", r)
	}
	if !strings.Contains(r.Description, "daily exercise or a reading habit") {
		t.Errorf("expected first two table entries, got %q", r.Description)
	}
	if strings.Contains(r.Description, "mindfulness") {
		t.Errorf("at most two suggestions expected: %q", r.Description)
	}
}

func TestPersonalized_TableOrderSkipsCovered(t *testing.T) {
	snap := &tracker.Snapshot{
		Habits: []tracker.Habit{
			{ID: "a", Category: tracker.CategoryFitness},
			{ID: "b", Category: tracker.CategoryWellness},
		},
		Goals: []tracker.Goal{{ID: "1"}, {ID: "2"}, {ID: "3"}},
	}
	recs := Personalized(input(snap))
	if len(recs) != 1 || !strings.Contains(recs[0].Description, "reading habit or a time blocking") {
		t.Fatalf("got %+v", recs)
	}
}

func TestPersonalized_AllMappedCategoriesCovered(t *testing.T) {
	var habits []tracker.Habit
	for i, c := range []tracker.Category{tracker.CategoryFitness, tracker.CategoryLearning, tracker.CategoryWellness, tracker.CategoryProductivity} {
		habits = append(habits, tracker.Habit{ID: fmt.Sprint(i), Category: c})
	}
	snap := &tracker.Snapshot{Habits: habits, Goals: []tracker.Goal{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	if recs := Personalized(input(snap)); len(recs) != 0 {
		t.Errorf("expected none, got %+v", recs)
	}
}

func TestPersonalized_FewGoals(t *testing.T) {
	recs := Personalized(input(&tracker.Snapshot{Goals: []tracker.Goal{{ID: "1"}, {ID: "2"}}}))
	var goalRec *Recommendation
	for i := range recs {
		if recs[i].Type == TypeGoal {
			goalRec = &recs[i]
		}
	}
	if goalRec == nil {
		t.Fatal("expected a goal recommendation")
	}
	if goalRec.Confidence != 75 || goalRec.Priority != tracker.PriorityMedium {
		t.Errorf("got %+v", goalRec)
	}
}
