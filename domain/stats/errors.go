package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"statcalc/domain/core"
)

// ErrorKind tags a ValidationError
type ErrorKind string

const (
	KindEmptyInput       ErrorKind = "EmptyInput"
	KindInvalidNumber    ErrorKind = "InvalidNumber"
	KindNonPositiveValue ErrorKind = "NonPositiveValue"
	KindNoData           ErrorKind = "NoData"
	KindInsufficientData ErrorKind = "InsufficientData"
)

// sentinel maps a kind onto the matching domain error
func (k ErrorKind) sentinel() error {
	switch k {
	case KindEmptyInput:
		return core.ErrEmptyInput
	case KindInvalidNumber:
		return core.ErrInvalidNumber
	case KindNonPositiveValue:
		return core.ErrNonPositiveValue
	case KindNoData:
		return core.ErrNoData
	case KindInsufficientData:
		return core.ErrInsufficientData
	}
	return nil
}

// ValidationError is the outcome of input that failed parsing or a domain
// constraint. Message is user-facing and is surfaced verbatim.
type ValidationError struct {
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Position int       `json:"position,omitempty"` // 1-based token position
	Token    string    `json:"token,omitempty"`
	Value    *float64  `json:"value,omitempty"`
	Minimum  int       `json:"minimum,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers match with errors.Is(err, core.ErrInvalidNumber) and friends
func (e *ValidationError) Is(target error) bool {
	if t, ok := target.(*ValidationError); ok {
		return t.Kind == e.Kind
	}
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// AsValidationError extracts a ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func newValidationError(kind ErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

func invalidNumberError(position int, token string) *ValidationError {
	return &ValidationError{
		Kind:     KindInvalidNumber,
		Message:  fmt.Sprintf("Invalid number at position %d: %q", position, token),
		Position: position,
		Token:    token,
	}
}

func emptyInputError(label string) *ValidationError {
	if label == "" {
		return newValidationError(KindEmptyInput, "Please enter some numbers")
	}
	return newValidationError(KindEmptyInput, fmt.Sprintf("Please enter some %s data", strings.ToLower(label)))
}

func noDataError(label string) *ValidationError {
	if label == "" {
		return newValidationError(KindNoData, "No valid data found")
	}
	return newValidationError(KindNoData, fmt.Sprintf("No valid %s data found", strings.ToLower(label)))
}

func nonPositiveError(label string, position int, value float64) *ValidationError {
	if label == "" {
		label = "Value"
	}
	return &ValidationError{
		Kind:     KindNonPositiveValue,
		Message:  fmt.Sprintf("%s must be positive at position %d: %s", label, position, formatValue(value)),
		Position: position,
		Value:    &value,
	}
}

func insufficientDataError(label, purpose string, minimum, got int) *ValidationError {
	noun := "values"
	if label != "" {
		noun = strings.ToLower(label) + " values"
	}
	if purpose != "" {
		noun += " for " + purpose
	}
	return &ValidationError{
		Kind:    KindInsufficientData,
		Message: fmt.Sprintf("Please provide at least %d %s (got %d)", minimum, noun, got),
		Minimum: minimum,
	}
}

// formatValue prints the shortest representation that round-trips
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
