package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any state change.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a folder or task id that no longer resolves.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a user-facing validation failure.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
