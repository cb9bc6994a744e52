package models

import "errors"

var (
	// ErrValidation marks user input that was rejected before anything was written.
	ErrValidation = errors.New("validation failed")
	// ErrStorageUnavailable marks a record store that could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound marks an edit or delete against a key that no longer exists.
	ErrNotFound = errors.New("record not found")
)

// ValidationError carries a user-facing reason for a rejected form.
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

// Is lets every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
