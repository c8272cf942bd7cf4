package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/config"
	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/store"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/spf13/cobra"
)

// clock is the only place the wall clock is read.
var clock = time.Now

// env bundles what a command needs: configuration, the open database and
// the configured timezone.
type env struct {
	cfg *config.Config
	db  *store.DB
	loc *time.Location
}

// openEnv loads configuration, sets up logging and color, and opens the
// database. Callers must Close the returned env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, flagVerbose, os.Stderr); err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	output.ConfigureColor(cfg.Output.Color && !flagNoColor)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug("opened database", "path", cfg.DBPath, "timezone", loc.String())

	return &env{cfg: cfg, db: db, loc: loc}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// now returns the current instant in the configured timezone.
func (e *env) now() time.Time {
	return clock().In(e.loc)
}

func (e *env) today() calendar.Date {
	return calendar.FromTime(e.now())
}

// snapshot loads every record with timestamps in the configured timezone.
func (e *env) snapshot(ctx context.Context) (*tracker.Snapshot, error) {
	start := time.Now()
	snap, err := e.db.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	logging.FromContext(ctx).Debug("loaded snapshot",
		"tasks", len(snap.Tasks), "habits", len(snap.Habits),
		"wellness", len(snap.Wellness), "goals", len(snap.Goals),
		"notes", len(snap.Notes), "elapsed", time.Since(start))
	return snap.In(e.loc), nil
}

// resolve expands an id prefix, turning store errors into messages that
// name the record kind.
func (e *env) resolve(kind store.Kind, prefix string) (string, error) {
	id, err := e.db.ResolveID(kind, prefix)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("no %s matches %q", singular(kind), prefix)
	}
	return id, err
}

func singular(kind store.Kind) string {
	return strings.TrimSuffix(string(kind), "s")
}

// parseDay accepts "today", "yesterday" or YYYY-MM-DD.
func parseDay(s string, today calendar.Date) (calendar.Date, error) {
	switch strings.ToLower(s) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD, today or yesterday)", s)
	}
	return d, nil
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// shortID abbreviates UUIDs for table display; ResolveID accepts the prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func checkMark() string {
	return "\xe2\x9c\x93"
}
