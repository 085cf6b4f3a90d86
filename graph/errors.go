package graph

import "errors"

var (
	// ErrUnknownVertex is returned when a query references a vertex that
	// has no time entry.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUndefinedScore is returned when a disruption score has no
	// qualifying later citers to normalise by.
	ErrUndefinedScore = errors.New("undefined disruption score")

	// ErrMalformedRecord is returned by record sources for lines that cannot
	// be decoded into a vertex or edge.
	ErrMalformedRecord = errors.New("malformed record")
)

// ErrNotFound is returned when a stored score row cannot be located.
var ErrNotFound = errors.New("not found")
