package store

import (
	"github.com/blackwell-systems/wellwatch/internal/recommend"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// ReplaceRecommendations stores recs as the latest batch, discarding the
// previous one. Ranked order is kept in the position column.
func (db *DB) ReplaceRecommendations(recs []recommend.Recommendation) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recommendations"); err != nil {
		return err
	}
	for i, r := range recs {
		if _, err := tx.Exec(
			`INSERT INTO recommendations (position, id, type, title, description, priority, confidence, category, action, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, r.ID, string(r.Type), r.Title, r.Description, string(r.Priority),
			r.Confidence, r.Category, r.Action, formatTime(r.CreatedAt),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListRecommendations returns the latest stored batch in ranked order.
func (db *DB) ListRecommendations() ([]recommend.Recommendation, error) {
	rows, err := db.conn.Query(
		`SELECT id, type, title, description, priority, confidence, category, action, created_at
		 FROM recommendations ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []recommend.Recommendation
	for rows.Next() {
		var r recommend.Recommendation
		var typ, priority, createdAt string
		if err := rows.Scan(&r.ID, &typ, &r.Title, &r.Description, &priority,
			&r.Confidence, &r.Category, &r.Action, &createdAt); err != nil {
			return nil, err
		}
		r.Type = recommend.Type(typ)
		r.Priority = tracker.Priority(priority)
		r.CreatedAt = parseTime(createdAt)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
