package expense

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("expense not found")
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes bad user input. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
