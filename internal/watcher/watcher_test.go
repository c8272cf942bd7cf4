package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/fsnotify/fsnotify"
)

type fakeSource struct {
	mu   sync.Mutex
	snap *tracker.Snapshot
	err  error
}

func (f *fakeSource) LoadSnapshot(context.Context) (*tracker.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func (f *fakeSource) set(snap *tracker.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var evening = time.Date(2026, 10, 15, 21, 0, 0, 0, time.UTC)

func atRiskSnapshot() *tracker.Snapshot {
	return &tracker.Snapshot{
		Habits: []tracker.Habit{{
			ID: "h1", Name: "run", Category: tracker.CategoryFitness,
			CompletedDates: []string{"2026-10-10", "2026-10-11", "2026-10-12", "2026-10-13", "2026-10-14"},
		}},
	}
}

func newTestWatcher(src Source, now time.Time) *Watcher {
	return New(src, Options{Interval: time.Minute, ReminderHour: 20, Location: time.UTC, Now: fixedClock(now)}, nil)
}

func TestSnapshot_DerivesStreaks(t *testing.T) {
	w := newTestWatcher(&fakeSource{snap: atRiskSnapshot()}, evening)

	state, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Today.String() != "2026-10-15" {
		t.Errorf("Today = %s", state.Today)
	}
	if len(state.Habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(state.Habits))
	}
	h := state.Habits[0]
	if h.Current != 5 || !h.AtRisk || h.DoneToday {
		t.Errorf("unexpected stats: %+v", h)
	}
	if len(state.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestSnapshot_SourceError(t *testing.T) {
	w := newTestWatcher(&fakeSource{err: errors.New("disk gone")}, evening)
	if _, err := w.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCheck_ReminderDeduplicated(t *testing.T) {
	w := newTestWatcher(&fakeSource{snap: atRiskSnapshot()}, evening)

	first := w.Check(context.Background())
	found := false
	for _, a := range first {
		if a.Title == "Streaks at risk" {
			found = true
			if !strings.Contains(a.Message, "run (5 days)") {
				t.Errorf("unexpected message: %s", a.Message)
			}
		}
	}
	if !found {
		t.Fatalf("expected at-risk reminder, got %+v", first)
	}

	second := w.Check(context.Background())
	for _, a := range second {
		if a.Title == "Streaks at risk" {
			t.Error("reminder should be suppressed on the second identical check")
		}
	}
}

func TestCheck_NoReminderBeforeHour(t *testing.T) {
	morning := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	w := newTestWatcher(&fakeSource{snap: atRiskSnapshot()}, morning)

	for _, a := range w.Check(context.Background()) {
		if a.Title == "Streaks at risk" {
			t.Error("no reminder expected before reminder hour")
		}
	}
}

func TestCheck_SnapshotFailureAlert(t *testing.T) {
	w := newTestWatcher(&fakeSource{err: errors.New("locked")}, evening)
	alerts := w.Check(context.Background())
	if len(alerts) != 1 || alerts[0].Title != "Snapshot failed" {
		t.Fatalf("expected snapshot failure alert, got %+v", alerts)
	}
}

func TestCheck_NewHighPriorityRecommendation(t *testing.T) {
	src := &fakeSource{snap: &tracker.Snapshot{}}
	w := newTestWatcher(src, evening)
	w.Check(context.Background())

	src.set(&tracker.Snapshot{
		Wellness: []tracker.WellnessEntry{
			{Date: "2026-10-13", Mood: 3, Stress: 5, Energy: 3},
			{Date: "2026-10-14", Mood: 3, Stress: 5, Energy: 3},
			{Date: "2026-10-15", Mood: 3, Stress: 4, Energy: 3},
		},
	})
	alerts := w.Check(context.Background())

	var titles []string
	for _, a := range alerts {
		if a.Level == "warning" {
			titles = append(titles, a.Title)
		}
	}
	if len(titles) != 1 || titles[0] != "Your stress is elevated" {
		t.Fatalf("expected a warning for the new stress recommendation, got %+v", alerts)
	}
}

func TestIsDBWrite(t *testing.T) {
	w := New(&fakeSource{}, Options{DBPath: "/data/wellwatch.db"}, nil)

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/data/wellwatch.db", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/wellwatch.db-wal", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/wellwatch.db", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/config.yaml", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		if got := w.isDBWrite(tc.ev); got != tc.want {
			t.Errorf("isDBWrite(%v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}

func TestRun_ChecksOnDatabaseWrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "wellwatch.db")
	if err := os.WriteFile(dbPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	alerts := make(chan Alert, 16)
	src := &fakeSource{snap: atRiskSnapshot()}
	w := New(src, Options{
		Interval:     time.Hour,
		ReminderHour: 20,
		DBPath:       dbPath,
		Location:     time.UTC,
		Now:          fixedClock(evening),
	}, func(a Alert) { alerts <- a })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Keep writing until the watcher picks a write up; the first writes
	// may land before the directory watch is registered.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case a := <-alerts:
			if a.Title != "Streaks at risk" {
				t.Errorf("unexpected alert: %+v", a)
			}
			cancel()
			if err := <-done; !errors.Is(err, context.Canceled) {
				t.Errorf("Run returned %v", err)
			}
			return
		case <-tick.C:
			_ = os.WriteFile(dbPath, []byte("x"), 0o644)
		case <-deadline:
			t.Fatal("no alert after database write")
		}
	}
}
