package tracker

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
)

// Validate checks every record in the snapshot and returns the first
// failure as an *Error. Empty collections are valid.
func (s *Snapshot) Validate() error {
	for _, t := range s.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, h := range s.Habits {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(s.Wellness))
	for _, w := range s.Wellness {
		if err := w.Validate(); err != nil {
			return err
		}
		if seen[w.Date] {
			return &Error{Kind: KindMalformedRecord, Record: "wellness", Field: "date", Value: w.Date,
				Err: errors.New("duplicate entry for date")}
		}
		seen[w.Date] = true
	}
	for _, g := range s.Goals {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	for _, n := range s.Notes {
		if n.ID == "" {
			return &Error{Kind: KindMalformedRecord, Record: "note", Field: "id", Err: errors.New("empty identifier")}
		}
	}
	return nil
}

// Validate checks a task's identifier and priority.
func (t Task) Validate() error {
	if t.ID == "" {
		return &Error{Kind: KindMalformedRecord, Record: "task", Field: "id", Err: errors.New("empty identifier")}
	}
	if !t.Priority.Valid() {
		return &Error{Kind: KindMalformedRecord, Record: "task", ID: t.ID, Field: "priority", Value: string(t.Priority)}
	}
	return nil
}

// Validate checks a habit's identifier, category and completion dates.
func (h Habit) Validate() error {
	if h.ID == "" {
		return &Error{Kind: KindMalformedRecord, Record: "habit", Field: "id", Err: errors.New("empty identifier")}
	}
	if !h.Category.Valid() {
		return &Error{Kind: KindMalformedRecord, Record: "habit", ID: h.ID, Field: "category", Value: string(h.Category)}
	}
	if h.Target < 0 {
		return &Error{Kind: KindMalformedRecord, Record: "habit", ID: h.ID, Field: "target",
			Value: fmt.Sprintf("%g", h.Target), Err: errors.New("must not be negative")}
	}
	seen := make(map[string]bool, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if _, err := calendar.Parse(d); err != nil {
			return &Error{Kind: KindInvalidDate, Record: "habit", ID: h.ID, Field: "completed_dates", Value: d, Err: err}
		}
		if seen[d] {
			return &Error{Kind: KindMalformedRecord, Record: "habit", ID: h.ID, Field: "completed_dates", Value: d,
				Err: errors.New("duplicate completion date")}
		}
		seen[d] = true
	}
	return nil
}

// Validate checks the entry date and that every rating lies in
// [MinRating, MaxRating].
func (w WellnessEntry) Validate() error {
	if _, err := calendar.Parse(w.Date); err != nil {
		return &Error{Kind: KindInvalidDate, Record: "wellness", Field: "date", Value: w.Date, Err: err}
	}
	ratings := []struct {
		field string
		value int
	}{
		{"mood", w.Mood},
		{"stress", w.Stress},
		{"energy", w.Energy},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return &Error{
				Kind:   KindMalformedRecord,
				Record: "wellness",
				ID:     w.Date,
				Field:  r.field,
				Value:  fmt.Sprintf("%d", r.value),
				Err:    fmt.Errorf("must be between %d and %d", MinRating, MaxRating),
			}
		}
	}
	return nil
}

// Validate checks a goal's identifier, category and progress range.
func (g Goal) Validate() error {
	if g.ID == "" {
		return &Error{Kind: KindMalformedRecord, Record: "goal", Field: "id", Err: errors.New("empty identifier")}
	}
	if !g.Category.Valid() {
		return &Error{Kind: KindMalformedRecord, Record: "goal", ID: g.ID, Field: "category", Value: string(g.Category)}
	}
	if g.Progress < 0 || g.Progress > 100 {
		return &Error{Kind: KindMalformedRecord, Record: "goal", ID: g.ID, Field: "progress",
			Value: fmt.Sprintf("%g", g.Progress), Err: errors.New("must be between 0 and 100")}
	}
	return nil
}
