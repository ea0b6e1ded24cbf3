package news

import (
	"errors"
	"fmt"
)

// Sentinel errors for news entry operations.
var (
	// ErrFrozen indicates a mutation was attempted on a frozen entry.
	ErrFrozen = errors.New("news entry is frozen")

	// ErrIncomplete indicates an entry lacks a field required for ordering
	// or rendering (publish date or hosting page).
	ErrIncomplete = errors.New("news entry is incomplete")

	// ErrDuplicateID indicates an id was already taken on the same page.
	ErrDuplicateID = errors.New("duplicate element id")
)

// FrozenError describes a rejected mutation of a frozen entry.
type FrozenError struct {
	Field string
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("cannot set %s: %v", e.Field, ErrFrozen)
}

func (e *FrozenError) Unwrap() error {
	return ErrFrozen
}

// ValidationError describes a required field that is missing at freeze or
// comparison time.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrIncomplete
}
