package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies input failures.
type ErrorKind int

const (
	// KindInvalidDate means a date string is not a valid YYYY-MM-DD date.
	KindInvalidDate ErrorKind = iota + 1
	// KindMalformedRecord means a field lies outside its documented domain.
	KindMalformedRecord
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidDate:
		return "invalid date"
	case KindMalformedRecord:
		return "malformed record"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against *Error.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrMalformedRecord = errors.New("malformed record")
)

// Error describes a record that failed validation.
type Error struct {
	Kind   ErrorKind
	Record string // "task", "habit", "wellness", "goal", "note"
	ID     string
	Field  string
	Value  string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Record != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Record)
		if e.ID != "" {
			fmt.Fprintf(&sb, " %q", e.ID)
		}
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " field %s", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&sb, " value %q", e.Value)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidDate:
		return e.Kind == KindInvalidDate
	case ErrMalformedRecord:
		return e.Kind == KindMalformedRecord
	}
	return false
}
