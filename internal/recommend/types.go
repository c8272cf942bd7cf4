// Package recommend provides the rule-based recommendation engine and its
// analyzers.
package recommend

import (
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// Type is the area a recommendation addresses.
type Type string

const (
	TypeHabit        Type = "habit"
	TypeTask         Type = "task"
	TypeGoal         Type = "goal"
	TypeWellness     Type = "wellness"
	TypeProductivity Type = "productivity"
)

// Types lists every recommendation type.
var Types = []Type{TypeHabit, TypeTask, TypeGoal, TypeWellness, TypeProductivity}

// Recommendation is a single actionable suggestion. Confidence is in
// [0, 100] and is only used for ordering.
type Recommendation struct {
	ID          string           `json:"id" yaml:"id"`
	Type        Type             `json:"type" yaml:"type"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Priority    tracker.Priority `json:"priority" yaml:"priority"`
	Confidence  int              `json:"confidence" yaml:"confidence"`
	Category    string           `json:"category" yaml:"category"`
	Action      string           `json:"action,omitempty" yaml:"action,omitempty"`
	CreatedAt   time.Time        `json:"created_at" yaml:"created_at"`
}

// Input is what every analyzer sees: the snapshot plus the explicit
// current instant and calendar day.
type Input struct {
	Snapshot *tracker.Snapshot
	Now      time.Time
	Today    calendar.Date
}

// Analyzer inspects the input and returns zero or more recommendations.
// Analyzers must not depend on each other's output.
type Analyzer func(in *Input) []Recommendation
