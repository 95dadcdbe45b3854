package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrExerciseNotFound = fmt.Errorf("%w: exercise", ErrNotFound)
	ErrExampleNotFound  = fmt.Errorf("%w: example", ErrNotFound)
	ErrChartNotFound    = fmt.Errorf("%w: chart", ErrNotFound)

	// Input validation errors. Every parse failure matches exactly one of these.
	ErrEmptyInput       = errors.New("empty input")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrNonPositiveValue = errors.New("non-positive value")
	ErrNoData           = errors.New("no data")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Dispatch errors
	ErrUnknownOperation = errors.New("unknown operation")
)

// Error constructors with context
func NewUnknownOperationError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrNonPositiveValue) ||
		errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrInsufficientData)
}

func IsUnknownOperationError(err error) bool {
	return errors.Is(err, ErrUnknownOperation)
}
