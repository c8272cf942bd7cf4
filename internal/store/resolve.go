package store

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a table whose rows can be addressed by id prefix.
type Kind string

const (
	KindTask  Kind = "tasks"
	KindHabit Kind = "habits"
	KindGoal  Kind = "goals"
	KindNote  Kind = "notes"
)

// ErrAmbiguous is wrapped when an id prefix matches more than one row.
var ErrAmbiguous = errors.New("ambiguous id prefix")

// ResolveID expands a unique id prefix to the full id. An exact match wins
// even if it is also a prefix of other ids.
func (db *DB) ResolveID(kind Kind, prefix string) (string, error) {
	switch kind {
	case KindTask, KindHabit, KindGoal, KindNote:
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
	if prefix == "" {
		return "", ErrNotFound
	}

	rows, err := db.conn.Query(
		"SELECT id FROM "+string(kind)+" WHERE id LIKE ? || '%' ESCAPE '\\' ORDER BY id LIMIT 10",
		escapeLike(prefix),
	)
	if err != nil {
		return "", err
	}
	defer func() { _ = rows.Close() }()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		if id == prefix {
			return id, nil
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w %q matches %d %s", ErrAmbiguous, prefix, len(matches), kind)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
