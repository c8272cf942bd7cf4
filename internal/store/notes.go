package store

import (
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/google/uuid"
)

// InsertNote stores a new note. An empty ID is replaced with a fresh UUID.
func (db *DB) InsertNote(n *tracker.Note) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = n.CreatedAt
	}
	_, err := db.conn.Exec(
		"INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Content, formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
	)
	return err
}

// DeleteNote removes a note.
func (db *DB) DeleteNote(id string) error {
	return affectedOne(db.conn.Exec("DELETE FROM notes WHERE id = ?", id))
}

// ListNotes returns all notes, most recently updated first.
func (db *DB) ListNotes() ([]tracker.Note, error) {
	rows, err := db.conn.Query(
		"SELECT id, title, content, created_at, updated_at FROM notes ORDER BY updated_at DESC, id",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notes []tracker.Note
	for rows.Next() {
		var n tracker.Note
		var createdAt, updatedAt string
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		n.CreatedAt = parseTime(createdAt)
		n.UpdatedAt = parseTime(updatedAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
