package store

import (
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/google/uuid"
)

// InsertGoal stores a new goal with its derived progress recomputed. An
// empty ID is replaced with a fresh UUID.
func (db *DB) InsertGoal(g *tracker.Goal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Recompute()
	if err := g.Validate(); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		`INSERT INTO goals (id, title, description, category, target, current, unit, progress, is_completed, created_at, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.Description, string(g.Category), g.Target, g.Current, g.Unit,
		g.Progress, g.IsCompleted, formatTime(g.CreatedAt), formatTime(g.Deadline),
	)
	return err
}

// UpdateGoalProgress sets a goal's current value and returns the goal with
// Progress and IsCompleted recomputed.
func (db *DB) UpdateGoalProgress(id string, current float64) (*tracker.Goal, error) {
	g, err := db.GetGoal(id)
	if err != nil {
		return nil, err
	}
	g.Current = current
	g.Recompute()

	if err := affectedOne(db.conn.Exec(
		"UPDATE goals SET current = ?, progress = ?, is_completed = ? WHERE id = ?",
		g.Current, g.Progress, g.IsCompleted, id,
	)); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGoal removes a goal.
func (db *DB) DeleteGoal(id string) error {
	return affectedOne(db.conn.Exec("DELETE FROM goals WHERE id = ?", id))
}

const goalColumns = `id, title, description, category, target, current, unit, progress, is_completed, created_at, deadline`

// GetGoal returns a single goal by id.
func (db *DB) GetGoal(id string) (*tracker.Goal, error) {
	rows, err := db.conn.Query("SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	goals, err := scanGoals(rows)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, ErrNotFound
	}
	return &goals[0], nil
}

// ListGoals returns all goals ordered by deadline.
func (db *DB) ListGoals() ([]tracker.Goal, error) {
	rows, err := db.conn.Query("SELECT " + goalColumns + " FROM goals ORDER BY deadline, id")
	if err != nil {
		return nil, err
	}
	return scanGoals(rows)
}

type goalRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanGoals(rows goalRows) ([]tracker.Goal, error) {
	defer func() { _ = rows.Close() }()

	var goals []tracker.Goal
	for rows.Next() {
		var g tracker.Goal
		var category, createdAt, deadline string
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &category, &g.Target, &g.Current,
			&g.Unit, &g.Progress, &g.IsCompleted, &createdAt, &deadline); err != nil {
			return nil, err
		}
		g.Category = tracker.Category(category)
		g.CreatedAt = parseTime(createdAt)
		g.Deadline = parseTime(deadline)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
