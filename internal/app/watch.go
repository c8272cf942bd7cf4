package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/config"
	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchDaemon   bool
	watchInterval string
	watchStop     bool
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor your data and alert on streaks and new recommendations",
	Long: `Run a monitor that re-checks your data periodically and whenever the
database changes. Desktop notifications and terminal alerts are emitted when
a streak is lost or reaches a milestone, when a new high-priority
recommendation appears, and in the evening when a streak needs today's
check-in.

Examples:
  wellwatch watch                    # run in foreground (ctrl-c to stop)
  wellwatch watch --daemon           # run in background, write PID file
  wellwatch watch --interval 5m      # check every 5 minutes (default from config)
  wellwatch watch --stop             # stop the background daemon`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Check interval as duration string (e.g. 5m, 1h)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon(cmd.OutOrStdout())
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	interval := e.cfg.Watch.Interval
	if watchInterval != "" {
		interval, err = time.ParseDuration(watchInterval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
		}
	}
	if interval < 30*time.Second {
		return fmt.Errorf("interval must be at least 30s, got %s", interval)
	}

	opts := watcher.Options{
		Interval:     interval,
		ReminderHour: e.cfg.Watch.ReminderHour,
		DBPath:       e.cfg.DBPath,
		Location:     e.loc,
		Now:          clock,
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer cancel()

	if watchDaemon {
		return runDaemon(ctx, e, opts)
	}
	return runForeground(ctx, cmd.OutOrStdout(), e, opts)
}

// runForeground runs the watcher in the foreground with live terminal output.
func runForeground(ctx context.Context, out io.Writer, e *env, opts watcher.Options) error {
	if watchQuiet {
		out = io.Discard
	}
	fmt.Fprintf(out, "wellwatch watching... (checking every %s)\n", opts.Interval)

	notifier := watcher.NewNotifier(io.Discard)
	alertFn := func(a watcher.Alert) {
		_ = notifier.Notify(a)
		printAlert(out, a)
	}

	w := watcher.New(e.db, opts, alertFn)

	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot failed: %w", err)
	}
	fmt.Fprintf(out, "[%s] %s %d/%d habits done today, %d recommendations\n",
		initial.Timestamp.Format("15:04:05"),
		checkMark(),
		initial.HabitsDone.Completed,
		initial.HabitsDone.Total,
		len(initial.Recommendations))

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "\nStopped.")
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the watcher. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func runDaemon(ctx context.Context, e *env, opts watcher.Options) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	if err := logging.Setup(e.cfg.Log.Level, flagVerbose, logFile); err != nil {
		return err
	}
	log := logging.WithFields("pid", pid)
	log.Info("daemon started", "interval", opts.Interval, "db", opts.DBPath)

	notifier := watcher.NewNotifier(logFile)
	alertFn := func(a watcher.Alert) {
		_ = notifier.Notify(a)
		log.Info("alert", "level", a.Level, "title", a.Title, "message", a.Message)
	}

	err = watcher.New(e.db, opts, alertFn).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("daemon stopped")
		return nil
	}
	return err
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// printAlert formats and prints an alert to the terminal.
func printAlert(w io.Writer, a watcher.Alert) {
	timestamp := a.Time.Format("15:04:05")
	fmt.Fprintf(w, "[%s] %s %s\n", timestamp, alertIcon(a.Level), a.Title)
	if a.Message != "" {
		fmt.Fprintf(w, "         %s\n", output.StyleMuted.Render(a.Message))
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return "\xf0\x9f\x94\xb4" // red circle
	case "warning":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case "info":
		return checkMark()
	default:
		return " "
	}
}
