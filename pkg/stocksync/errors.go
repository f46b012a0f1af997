package stocksync

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// UpdateError represents a fatal error in one step of an update run.
type UpdateError struct {
	Step string // "options", "open", "select", "extract", "reconcile", "backup", "save"
	Err  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update failed at %s: %v", e.Step, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// NewUpdateError creates a new UpdateError.
func NewUpdateError(step string, err error) *UpdateError {
	return &UpdateError{
		Step: step,
		Err:  err,
	}
}
