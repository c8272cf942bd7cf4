package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/export"
	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportTable  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON, YAML or CSV",
	Long: `Export tasks, habits, wellness check-ins, goals and notes.

JSON and YAML include every record. CSV writes one table at a time.

Examples:
  wellwatch export > backup.json
  wellwatch export --format yaml --output backup.yaml
  wellwatch export --format csv --table habits`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml, csv)")
	exportCmd.Flags().StringVar(&exportTable, "table", string(export.TableTasks), "Table for CSV output (tasks, habits, wellness, goals)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	switch format {
	case "json", "yaml", "yml", "csv":
	default:
		return fmt.Errorf("invalid format %q (want json, yaml or csv)", exportFormat)
	}
	table := export.Table(strings.ToLower(exportTable))
	if format == "csv" && !validTable(table) {
		return fmt.Errorf("invalid table %q (want tasks, habits, wellness or goals)", exportTable)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	snap, err := e.snapshot(cmd.Context())
	if err != nil {
		return err
	}
	// Stored streaks only change on check/uncheck; export the value for today.
	snap.Habits, err = streak.Refresh(snap.Habits, e.today())
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return writeExport(cmd.OutOrStdout(), snap, format, table, e.now())
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOutput, err)
	}
	if err := writeExport(f, snap, format, table, e.now()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", exportOutput, err)
	}

	logging.FromContext(cmd.Context()).Debug("export written", "path", exportOutput, "format", format)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported to %s\n", checkMark(), exportOutput)
	return nil
}

func writeExport(w io.Writer, snap *tracker.Snapshot, format string, table export.Table, at time.Time) error {
	var err error
	switch format {
	case "json":
		err = export.WriteJSON(w, snap, at)
	case "yaml", "yml":
		err = export.WriteYAML(w, snap, at)
	case "csv":
		err = export.WriteCSV(w, snap, table)
	}
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	return nil
}

func validTable(t export.Table) bool {
	for _, known := range export.Tables {
		if t == known {
			return true
		}
	}
	return false
}
