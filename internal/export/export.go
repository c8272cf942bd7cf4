// Package export writes tracker data as JSON, YAML or CSV.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"gopkg.in/yaml.v3"
)

// Document is the envelope written by WriteJSON and WriteYAML.
type Document struct {
	ExportedAt string            `json:"exported_at" yaml:"exported_at"`
	Counts     Counts            `json:"counts" yaml:"counts"`
	Data       *tracker.Snapshot `json:"data" yaml:"data"`
}

// Counts summarizes the size of each collection.
type Counts struct {
	Tasks    int `json:"tasks" yaml:"tasks"`
	Habits   int `json:"habits" yaml:"habits"`
	Wellness int `json:"wellness" yaml:"wellness"`
	Goals    int `json:"goals" yaml:"goals"`
	Notes    int `json:"notes" yaml:"notes"`
}

func newDocument(snap *tracker.Snapshot, at time.Time) Document {
	if snap == nil {
		snap = &tracker.Snapshot{}
	}
	return Document{
		ExportedAt: at.Format(time.RFC3339),
		Counts: Counts{
			Tasks:    len(snap.Tasks),
			Habits:   len(snap.Habits),
			Wellness: len(snap.Wellness),
			Goals:    len(snap.Goals),
			Notes:    len(snap.Notes),
		},
		Data: snap,
	}
}

// WriteJSON writes the full snapshot as indented JSON.
func WriteJSON(w io.Writer, snap *tracker.Snapshot, at time.Time) error {
	data, err := json.MarshalIndent(newDocument(snap, at), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteYAML writes the full snapshot as YAML.
func WriteYAML(w io.Writer, snap *tracker.Snapshot, at time.Time) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(snap, at)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
