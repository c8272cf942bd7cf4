package store

import (
	"database/sql"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/google/uuid"
)

// InsertTask stores a new task. An empty ID is replaced with a fresh UUID,
// which is written back to t.
func (db *DB) InsertTask(t *tracker.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		`INSERT INTO tasks (id, title, description, completed, priority, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Completed, string(t.Priority),
		formatTime(t.CreatedAt), nullTime(t.CompletedAt),
	)
	return err
}

// CompleteTask marks a task completed at the given time.
func (db *DB) CompleteTask(id string, at time.Time) error {
	return affectedOne(db.conn.Exec(
		"UPDATE tasks SET completed = true, completed_at = ? WHERE id = ?",
		formatTime(at), id,
	))
}

// ReopenTask clears a task's completion.
func (db *DB) ReopenTask(id string) error {
	return affectedOne(db.conn.Exec(
		"UPDATE tasks SET completed = false, completed_at = NULL WHERE id = ?", id,
	))
}

// DeleteTask removes a task.
func (db *DB) DeleteTask(id string) error {
	return affectedOne(db.conn.Exec("DELETE FROM tasks WHERE id = ?", id))
}

// ListTasks returns all tasks, newest first.
func (db *DB) ListTasks() ([]tracker.Task, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, description, completed, priority, created_at, completed_at
		 FROM tasks ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []tracker.Task
	for rows.Next() {
		var t tracker.Task
		var priority, createdAt string
		var completedAt sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &priority, &createdAt, &completedAt); err != nil {
			return nil, err
		}
		t.Priority = tracker.Priority(priority)
		t.CreatedAt = parseTime(createdAt)
		t.CompletedAt = timePtr(completedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
