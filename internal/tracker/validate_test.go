package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() *Snapshot {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &Snapshot{
		Tasks: []Task{{ID: "t1", Title: "Write report", Priority: PriorityHigh, CreatedAt: created}},
		Habits: []Habit{{
			ID: "h1", Name: "Run", Category: CategoryFitness, Target: 5, Unit: "km",
			CompletedDates: []string{"2026-10-01", "2026-10-02"},
		}},
		Wellness: []WellnessEntry{{Date: "2026-10-01", Mood: 3, Stress: 2, Energy: 4}},
		Goals:    []Goal{{ID: "g1", Title: "Read 12 books", Category: CategoryLearning, Target: 12, Current: 3, Progress: 25}},
		Notes:    []Note{{ID: "n1", Title: "Idea"}},
	}
}

func TestSnapshotValidate_Valid(t *testing.T) {
	require.NoError(t, validSnapshot().Validate())
	require.NoError(t, (&Snapshot{}).Validate(), "empty snapshot is valid")
}

func TestSnapshotValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		kind   error
		field  string
	}{
		{"mood too high", func(s *Snapshot) { s.Wellness[0].Mood = 6 }, ErrMalformedRecord, "mood"},
		{"stress zero", func(s *Snapshot) { s.Wellness[0].Stress = 0 }, ErrMalformedRecord, "stress"},
		{"energy negative", func(s *Snapshot) { s.Wellness[0].Energy = -1 }, ErrMalformedRecord, "energy"},
		{"bad wellness date", func(s *Snapshot) { s.Wellness[0].Date = "yesterday" }, ErrInvalidDate, "date"},
		{"duplicate wellness date", func(s *Snapshot) {
			s.Wellness = append(s.Wellness, WellnessEntry{Date: "2026-10-01", Mood: 1, Stress: 1, Energy: 1})
		}, ErrMalformedRecord, "date"},
		{"bad completion date", func(s *Snapshot) { s.Habits[0].CompletedDates[0] = "2026-13-01" }, ErrInvalidDate, "completed_dates"},
		{"duplicate completion date", func(s *Snapshot) { s.Habits[0].CompletedDates[1] = "2026-10-01" }, ErrMalformedRecord, "completed_dates"},
		{"unknown habit category", func(s *Snapshot) { s.Habits[0].Category = "hobby" }, ErrMalformedRecord, "category"},
		{"unknown task priority", func(s *Snapshot) { s.Tasks[0].Priority = "urgent" }, ErrMalformedRecord, "priority"},
		{"empty task id", func(s *Snapshot) { s.Tasks[0].ID = "" }, ErrMalformedRecord, "id"},
		{"goal progress out of range", func(s *Snapshot) { s.Goals[0].Progress = 140 }, ErrMalformedRecord, "progress"},
		{"empty note id", func(s *Snapshot) { s.Notes[0].ID = "" }, ErrMalformedRecord, "id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSnapshot()
			tc.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var terr *Error
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tc.field, terr.Field)
		})
	}
}

func TestHabitDates_WrapsCalendarError(t *testing.T) {
	h := Habit{ID: "h1", CompletedDates: []string{"2026-02-30"}}
	_, err := h.Dates()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
	assert.NotErrorIs(t, err, ErrMalformedRecord)
}

func TestHabitDoneOn(t *testing.T) {
	h := Habit{CompletedDates: []string{"2026-10-14"}}
	assert.True(t, h.DoneOn(calendar.MustParse("2026-10-14")))
	assert.False(t, h.DoneOn(calendar.MustParse("2026-10-15")))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("wellness")
	require.NoError(t, err)
	assert.Equal(t, CategoryWellness, c)

	_, err = ParseCategory("Wellness")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestMissingCategories_CanonicalOrder(t *testing.T) {
	missing := MissingCategories(map[Category]bool{CategoryHealth: true, CategoryFitness: true})
	assert.Equal(t, []Category{CategoryProductivity, CategoryLearning, CategoryWellness, CategoryPersonal}, missing)
	assert.Len(t, MissingCategories(nil), len(Categories))
}

func TestGoalRecompute(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		target        float64
		wantProgress  float64
		wantCompleted bool
	}{
		{"partial", 3, 12, 25, false},
		{"exact", 12, 12, 100, true},
		{"overshoot clamps", 15, 12, 100, true},
		{"zero target", 5, 0, 0, false},
		{"negative current", -2, 10, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := Goal{Current: tc.current, Target: tc.target}
			g.Recompute()
			assert.InDelta(t, tc.wantProgress, g.Progress, 0.0001)
			assert.Equal(t, tc.wantCompleted, g.IsCompleted)
		})
	}
}

func TestSnapshotIn_ConvertsWithoutMutating(t *testing.T) {
	s := validSnapshot()
	done := time.Date(2026, 10, 1, 23, 30, 0, 0, time.UTC)
	s.Tasks[0].CompletedAt = &done

	loc := time.FixedZone("UTC+2", 2*3600)
	out := s.In(loc)

	assert.Equal(t, loc, out.Tasks[0].CreatedAt.Location())
	assert.Equal(t, 2, out.Tasks[0].CompletedAt.Day())
	assert.Equal(t, time.UTC, s.Tasks[0].CompletedAt.Location(), "input must not be mutated")

	out.Habits[0].CompletedDates[0] = "changed"
	assert.Equal(t, "2026-10-01", s.Habits[0].CompletedDates[0])
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.False(t, Priority("urgent").Valid())
}
