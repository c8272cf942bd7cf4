// Package watcher provides background monitoring of wellwatch data,
// re-running the recommendation engine and emitting alerts for new
// high-priority recommendations and streaks that need a check-in today.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/recommend"
	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/fsnotify/fsnotify"
)

// Source loads the current records.
type Source interface {
	LoadSnapshot(ctx context.Context) (*tracker.Snapshot, error)
}

// WatchState captures a point-in-time view of the tracked data.
type WatchState struct {
	Timestamp       time.Time
	Today           calendar.Date
	Recommendations []recommend.Recommendation
	Habits          []streak.HabitStats
	HabitsDone      streak.Completion
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Options configures a Watcher.
type Options struct {
	// Interval between periodic checks.
	Interval time.Duration
	// ReminderHour is the local hour from which at-risk streaks alert.
	ReminderHour int
	// DBPath, when set, is watched for writes that trigger an early check.
	DBPath string
	// Location is the timezone calendar days are computed in.
	Location *time.Location
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Watcher monitors the data at a regular interval and on database writes,
// emitting alerts when notable changes are detected.
type Watcher struct {
	source        Source
	engine        *recommend.Engine
	opts          Options
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher reading from source.
func New(source Source, opts Options, alertFn func(Alert)) *Watcher {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Watcher{
		source:        source,
		engine:        recommend.NewEngine(),
		opts:          opts,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

func (w *Watcher) now() time.Time {
	return w.opts.Now().In(w.opts.Location)
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval and after every write to the database file. Blocks until
// ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial

	var events <-chan fsnotify.Event
	var errs <-chan error
	if w.opts.DBPath != "" {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer fw.Close()
		// Watch the directory so WAL files and atomic replaces are seen.
		if err := fw.Add(filepath.Dir(w.opts.DBPath)); err != nil {
			return fmt.Errorf("watching %s: %w", w.opts.DBPath, err)
		}
		events, errs = fw.Events, fw.Errors
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.emit(w.Check(ctx))
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if w.isDBWrite(ev) {
				logging.Logger().Debug("database changed", "file", ev.Name, "op", ev.Op.String())
				w.emit(w.Check(ctx))
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logging.Logger().Warn("file watcher error", "err", err)
		}
	}
}

func (w *Watcher) emit(alerts []Alert) {
	if w.alertFn == nil {
		return
	}
	for _, a := range alerts {
		w.alertFn(a)
	}
}

// isDBWrite reports whether ev modifies the database or its WAL.
func (w *Watcher) isDBWrite(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	base := filepath.Base(w.opts.DBPath)
	name := filepath.Base(ev.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read wellwatch data: %v", err),
			Time:    w.now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}
	raw = append(raw, Reminders(curr, w.opts.ReminderHour)...)

	// Deduplicate: suppress alerts with the same title+message as last cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot loads the records and derives the recommendations and streak
// state at the current instant.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	snap, err := w.source.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	now := w.now()
	snap = snap.In(w.opts.Location)

	recs, err := w.engine.Run(snap, now)
	if err != nil {
		return nil, err
	}

	state := &WatchState{
		Timestamp:       now,
		Today:           calendar.FromTime(now),
		Recommendations: recs,
		HabitsDone:      streak.DailyCompletion(snap.Habits, calendar.FromTime(now)),
	}
	for _, h := range snap.Habits {
		stats, err := streak.ForHabit(h, state.Today)
		if err != nil {
			return nil, err
		}
		state.Habits = append(state.Habits, stats)
	}
	return state, nil
}
