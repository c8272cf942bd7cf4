package recommend

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/google/uuid"
)

// Engine runs all registered analyzers against a snapshot and collects the
// resulting recommendations. It holds no state between runs.
type Engine struct {
	analyzers []Analyzer
}

// NewEngine creates an engine with all built-in analyzers registered.
func NewEngine() *Engine {
	return &Engine{
		analyzers: []Analyzer{
			TaskCompletion,
			HabitStreaks,
			WellnessTrend,
			GoalProgress,
			ProductivityPattern,
			Personalized,
		},
	}
}

// Run validates the snapshot, executes every analyzer and returns the
// combined recommendations sorted by confidence (highest first). now
// supplies both the reference instant and, via its location, today's
// calendar date.
func (e *Engine) Run(snap *tracker.Snapshot, now time.Time) ([]Recommendation, error) {
	if snap == nil {
		snap = &tracker.Snapshot{}
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("validating snapshot: %w", err)
	}

	in := &Input{Snapshot: snap, Now: now, Today: calendar.FromTime(now)}

	var all []Recommendation
	for _, analyze := range e.analyzers {
		for _, r := range analyze(in) {
			r.CreatedAt = now
			r.ID = recommendationID(r, now)
			all = append(all, r)
		}
	}
	return Rank(all), nil
}

// idNamespace scopes the name-based UUIDs given to recommendations.
var idNamespace = uuid.MustParse("6f1d2c38-5d1e-4c55-9a0e-0b6f4c1f7e21")

// recommendationID is derived from the content and run time so that two
// runs over the same input produce identical output.
func recommendationID(r Recommendation, now time.Time) string {
	key := string(r.Type) + "\x00" + r.Title + "\x00" + now.UTC().Format(time.RFC3339Nano)
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}
