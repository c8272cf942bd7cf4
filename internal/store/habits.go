package store

import (
	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/google/uuid"
)

// InsertHabit stores a new habit along with any completion dates it
// already carries. An empty ID is replaced with a fresh UUID.
func (db *DB) InsertHabit(h *tracker.Habit) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if err := h.Validate(); err != nil {
		return err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO habits (id, name, icon, color, category, target, unit, streak, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Icon, h.Color, string(h.Category), h.Target, h.Unit, h.Streak,
		formatTime(h.CreatedAt),
	); err != nil {
		return err
	}
	for _, d := range h.CompletedDates {
		if _, err := tx.Exec("INSERT INTO habit_completions (habit_id, date) VALUES (?, ?)", h.ID, d); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteHabit removes a habit and its completions.
func (db *DB) DeleteHabit(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_completions WHERE habit_id = ?", id); err != nil {
		return err
	}
	if err := affectedOne(tx.Exec("DELETE FROM habits WHERE id = ?", id)); err != nil {
		return err
	}
	return tx.Commit()
}

// MarkHabitDone records a completion. Marking the same date twice is a
// no-op, so completion dates never contain duplicates.
func (db *DB) MarkHabitDone(id string, date calendar.Date) error {
	if err := db.habitExists(id); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		"INSERT OR IGNORE INTO habit_completions (habit_id, date) VALUES (?, ?)",
		id, date.String(),
	)
	return err
}

// UnmarkHabit removes a completion. Removing an absent date is a no-op.
func (db *DB) UnmarkHabit(id string, date calendar.Date) error {
	if err := db.habitExists(id); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		"DELETE FROM habit_completions WHERE habit_id = ? AND date = ?",
		id, date.String(),
	)
	return err
}

// SetHabitStreak stores a recomputed streak value.
func (db *DB) SetHabitStreak(id string, streak int) error {
	return affectedOne(db.conn.Exec("UPDATE habits SET streak = ? WHERE id = ?", streak, id))
}

func (db *DB) habitExists(id string) error {
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHabits returns all habits in creation order with their completion
// dates attached (ascending).
func (db *DB) ListHabits() ([]tracker.Habit, error) {
	habits, err := db.listHabitRows()
	if err != nil {
		return nil, err
	}
	completions, err := db.listCompletions()
	if err != nil {
		return nil, err
	}
	return attachCompletions(habits, completions), nil
}

func (db *DB) listHabitRows() ([]tracker.Habit, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, icon, color, category, target, unit, streak, created_at
		 FROM habits ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var habits []tracker.Habit
	for rows.Next() {
		var h tracker.Habit
		var category, createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &h.Icon, &h.Color, &category, &h.Target, &h.Unit, &h.Streak, &createdAt); err != nil {
			return nil, err
		}
		h.Category = tracker.Category(category)
		h.CreatedAt = parseTime(createdAt)
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// listCompletions returns completion dates keyed by habit id.
func (db *DB) listCompletions() (map[string][]string, error) {
	rows, err := db.conn.Query("SELECT habit_id, date FROM habit_completions ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]string)
	for rows.Next() {
		var id, date string
		if err := rows.Scan(&id, &date); err != nil {
			return nil, err
		}
		out[id] = append(out[id], date)
	}
	return out, rows.Err()
}

func attachCompletions(habits []tracker.Habit, completions map[string][]string) []tracker.Habit {
	for i := range habits {
		habits[i].CompletedDates = completions[habits[i].ID]
	}
	return habits
}
