package store

import "github.com/blackwell-systems/wellwatch/internal/tracker"

// UpsertWellnessEntry stores the check-in for e.Date, replacing any
// existing entry for that date.
func (db *DB) UpsertWellnessEntry(e tracker.WellnessEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		`INSERT INTO wellness_entries (date, mood, stress, energy, notes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			mood = excluded.mood,
			stress = excluded.stress,
			energy = excluded.energy,
			notes = excluded.notes`,
		e.Date, e.Mood, e.Stress, e.Energy, e.Notes,
	)
	return err
}

// DeleteWellnessEntry removes the check-in for date.
func (db *DB) DeleteWellnessEntry(date string) error {
	return affectedOne(db.conn.Exec("DELETE FROM wellness_entries WHERE date = ?", date))
}

// ListWellnessEntries returns all check-ins, most recent first.
func (db *DB) ListWellnessEntries() ([]tracker.WellnessEntry, error) {
	rows, err := db.conn.Query(
		"SELECT date, mood, stress, energy, notes FROM wellness_entries ORDER BY date DESC",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []tracker.WellnessEntry
	for rows.Next() {
		var e tracker.WellnessEntry
		if err := rows.Scan(&e.Date, &e.Mood, &e.Stress, &e.Energy, &e.Notes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
