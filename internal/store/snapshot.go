package store

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"golang.org/x/sync/errgroup"
)

// LoadSnapshot reads every record into a Snapshot. The tables are read
// concurrently; each loader closes its rows before returning so the reads
// also work on a single-connection database.
func (db *DB) LoadSnapshot(ctx context.Context) (*tracker.Snapshot, error) {
	var (
		snap        tracker.Snapshot
		completions map[string][]string
	)

	g, ctx := errgroup.WithContext(ctx)
	load := func(name string, fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(); err != nil {
				return fmt.Errorf("loading %s: %w", name, err)
			}
			return nil
		})
	}

	load("tasks", func() (err error) { snap.Tasks, err = db.ListTasks(); return })
	load("habits", func() (err error) { snap.Habits, err = db.listHabitRows(); return })
	load("habit completions", func() (err error) { completions, err = db.listCompletions(); return })
	load("wellness entries", func() (err error) { snap.Wellness, err = db.ListWellnessEntries(); return })
	load("goals", func() (err error) { snap.Goals, err = db.ListGoals(); return })
	load("notes", func() (err error) { snap.Notes, err = db.ListNotes(); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.Habits = attachCompletions(snap.Habits, completions)
	return &snap, nil
}
