// Package tracker defines the records wellwatch tracks: tasks, habits,
// wellness check-ins, goals and notes, plus the Snapshot handed to the
// streak and recommendation engines.
package tracker

import (
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
)

// Priority levels for tasks and recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for display: high sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Task is a to-do item. CompletedAt is optional even when Completed is set.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool       `json:"completed" yaml:"completed"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// Habit is a recurring daily activity. CompletedDates holds YYYY-MM-DD
// strings without duplicates; their order is not significant.
type Habit struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Icon           string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color          string    `json:"color,omitempty" yaml:"color,omitempty"`
	Category       Category  `json:"category" yaml:"category"`
	Target         float64   `json:"target" yaml:"target"`
	Unit           string    `json:"unit" yaml:"unit"`
	Streak         int       `json:"streak" yaml:"streak"`
	CompletedDates []string  `json:"completed_dates" yaml:"completed_dates"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// DoneOn reports whether the habit was completed on date.
func (h Habit) DoneOn(date calendar.Date) bool {
	ds := date.String()
	for _, d := range h.CompletedDates {
		if d == ds {
			return true
		}
	}
	return false
}

// Dates parses CompletedDates.
func (h Habit) Dates() ([]calendar.Date, error) {
	dates := make([]calendar.Date, 0, len(h.CompletedDates))
	for _, s := range h.CompletedDates {
		d, err := calendar.Parse(s)
		if err != nil {
			return nil, &Error{Kind: KindInvalidDate, Record: "habit", ID: h.ID, Field: "completed_dates", Value: s, Err: err}
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Rating bounds for wellness check-ins.
const (
	MinRating = 1
	MaxRating = 5
)

// WellnessEntry is a daily check-in. Date is unique across entries.
type WellnessEntry struct {
	Date   string `json:"date" yaml:"date"`
	Mood   int    `json:"mood" yaml:"mood"`
	Stress int    `json:"stress" yaml:"stress"`
	Energy int    `json:"energy" yaml:"energy"`
	Notes  string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Goal is a measurable target. Progress is derived from Current and
// Target; see Recompute.
type Goal struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category  `json:"category" yaml:"category"`
	Target      float64   `json:"target" yaml:"target"`
	Current     float64   `json:"current" yaml:"current"`
	Unit        string    `json:"unit" yaml:"unit"`
	Progress    float64   `json:"progress" yaml:"progress"`
	IsCompleted bool      `json:"is_completed" yaml:"is_completed"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Deadline    time.Time `json:"deadline" yaml:"deadline"`
}

// Note is free-form text. The engines only count notes.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Snapshot is the full set of records at one instant.
type Snapshot struct {
	Tasks    []Task          `json:"tasks" yaml:"tasks"`
	Habits   []Habit         `json:"habits" yaml:"habits"`
	Wellness []WellnessEntry `json:"wellness" yaml:"wellness"`
	Goals    []Goal          `json:"goals" yaml:"goals"`
	Notes    []Note          `json:"notes" yaml:"notes"`
}

// In returns a copy of the snapshot with every timestamp converted to loc.
// Calendar-day comparisons on timestamps use the location they carry, so
// callers convert once at the boundary.
func (s *Snapshot) In(loc *time.Location) *Snapshot {
	out := &Snapshot{
		Tasks:    make([]Task, len(s.Tasks)),
		Habits:   make([]Habit, len(s.Habits)),
		Wellness: make([]WellnessEntry, len(s.Wellness)),
		Goals:    make([]Goal, len(s.Goals)),
		Notes:    make([]Note, len(s.Notes)),
	}
	for i, t := range s.Tasks {
		t.CreatedAt = t.CreatedAt.In(loc)
		if t.CompletedAt != nil {
			at := t.CompletedAt.In(loc)
			t.CompletedAt = &at
		}
		out.Tasks[i] = t
	}
	for i, h := range s.Habits {
		h.CreatedAt = h.CreatedAt.In(loc)
		h.CompletedDates = append([]string(nil), h.CompletedDates...)
		out.Habits[i] = h
	}
	copy(out.Wellness, s.Wellness)
	for i, g := range s.Goals {
		g.CreatedAt = g.CreatedAt.In(loc)
		g.Deadline = g.Deadline.In(loc)
		out.Goals[i] = g
	}
	for i, n := range s.Notes {
		n.CreatedAt = n.CreatedAt.In(loc)
		n.UpdatedAt = n.UpdatedAt.In(loc)
		out.Notes[i] = n
	}
	return out
}
