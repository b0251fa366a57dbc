package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a notebook, branch or commit does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a branch name is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNoCommitsYet is returned when an operation needs repository history
	// and the notebook has none.
	ErrNoCommitsYet = errors.New("no commits yet")
	// ErrNothingToCommit is returned when committed content matches the branch.
	ErrNothingToCommit = errors.New("nothing to commit")
	// ErrFileNotFound is returned when a file is absent at the requested ref.
	ErrFileNotFound = errors.New("file not found")
	// ErrConflict is returned when the working tree state blocks an operation.
	ErrConflict = errors.New("conflict")
	// ErrStorageUnavailable is returned when the repository or index fails.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
