package parser

import (
	"errors"
	"fmt"
)

// ErrNoCandidate indicates that no worksheet name encodes a valid date.
var ErrNoCandidate = errors.New("no dated sheet found")

// ErrSchema indicates that a required sheet or column is missing.
var ErrSchema = errors.New("schema mismatch")

// NoCandidateError is returned by SelectLatest when nothing qualifies.
type NoCandidateError struct {
	// Examined is the number of sheet names looked at.
	Examined int
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("no sheet named in MMDD form among %d sheets", e.Examined)
}

// Is implements errors.Is support.
func (e *NoCandidateError) Is(target error) bool {
	return target == ErrNoCandidate
}

// SchemaError reports a missing required column, or a missing sheet when
// Column is empty.
type SchemaError struct {
	Sheet  string
	Column string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("sheet %q not found", e.Sheet)
	}
	return fmt.Sprintf("sheet %q has no %q column", e.Sheet, e.Column)
}

// Is implements errors.Is support.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
