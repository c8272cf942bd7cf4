package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// Table selects which collection WriteCSV emits.
type Table string

const (
	TableTasks    Table = "tasks"
	TableHabits   Table = "habits"
	TableWellness Table = "wellness"
	TableGoals    Table = "goals"
)

// Tables lists every table WriteCSV supports.
var Tables = []Table{TableTasks, TableHabits, TableWellness, TableGoals}

// WriteCSV writes one collection of the snapshot as CSV with a header row.
func WriteCSV(w io.Writer, snap *tracker.Snapshot, table Table) error {
	if snap == nil {
		snap = &tracker.Snapshot{}
	}

	var header []string
	var rows [][]string
	switch table {
	case TableTasks:
		header = []string{"ID", "Title", "Priority", "Completed", "Created", "Completed At"}
		for _, t := range snap.Tasks {
			completedAt := ""
			if t.CompletedAt != nil {
				completedAt = t.CompletedAt.Format(time.RFC3339)
			}
			rows = append(rows, []string{
				t.ID, t.Title, string(t.Priority), strconv.FormatBool(t.Completed),
				t.CreatedAt.Format(time.RFC3339), completedAt,
			})
		}
	case TableHabits:
		header = []string{"ID", "Name", "Category", "Target", "Unit", "Streak", "Completed Dates"}
		for _, h := range snap.Habits {
			rows = append(rows, []string{
				h.ID, h.Name, string(h.Category), formatFloat(h.Target), h.Unit,
				strconv.Itoa(h.Streak), strings.Join(h.CompletedDates, ";"),
			})
		}
	case TableWellness:
		header = []string{"Date", "Mood", "Stress", "Energy", "Notes"}
		for _, e := range snap.Wellness {
			rows = append(rows, []string{
				e.Date, strconv.Itoa(e.Mood), strconv.Itoa(e.Stress), strconv.Itoa(e.Energy), e.Notes,
			})
		}
	case TableGoals:
		header = []string{"ID", "Title", "Category", "Current", "Target", "Unit", "Progress", "Completed", "Deadline"}
		for _, g := range snap.Goals {
			rows = append(rows, []string{
				g.ID, g.Title, string(g.Category), formatFloat(g.Current), formatFloat(g.Target), g.Unit,
				strconv.FormatFloat(g.Progress, 'f', 1, 64), strconv.FormatBool(g.IsCompleted),
				g.Deadline.Format("2006-01-02"),
			})
		}
	default:
		return fmt.Errorf("unknown csv table %q", table)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
