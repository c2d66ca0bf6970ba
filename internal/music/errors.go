package music

import (
	"errors"
	"fmt"
)

// ModelError reports a refused construction of an invalid music value.
// Invalid values are rejected when the model is built, never deferred to
// evaluation or encoding.
type ModelError struct {
	// Code identifies the violated invariant.
	Code ModelErrorCode

	// Message is a human-readable description naming the offending value.
	Message string
}

// ModelErrorCode categorizes model construction failures.
type ModelErrorCode string

const (
	// ErrCodeZeroDenominator indicates a ratio with denominator zero.
	ErrCodeZeroDenominator ModelErrorCode = "ZERO_DENOMINATOR"

	// ErrCodeEmptyChord indicates a chord with no notes.
	ErrCodeEmptyChord ModelErrorCode = "EMPTY_CHORD"

	// ErrCodeNonPositiveDuration indicates a zero duration.
	ErrCodeNonPositiveDuration ModelErrorCode = "NONPOSITIVE_DURATION"

	// ErrCodeNonPositiveVolume indicates a zero volume.
	ErrCodeNonPositiveVolume ModelErrorCode = "NONPOSITIVE_VOLUME"

	// ErrCodeNegativeFrequency indicates a frequency below zero.
	ErrCodeNegativeFrequency ModelErrorCode = "NEGATIVE_FREQUENCY"

	// ErrCodeBadDivisions indicates a tempering operand whose division
	// count is not a positive integer.
	ErrCodeBadDivisions ModelErrorCode = "BAD_DIVISIONS"
)

// Error implements the error interface.
func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newModelError(code ModelErrorCode, message string) *ModelError {
	return &ModelError{Code: code, Message: message}
}

// NewModelError creates a ModelError with the given code and message.
func NewModelError(code ModelErrorCode, format string, args ...any) *ModelError {
	return &ModelError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsModelError reports whether err is (or wraps) a ModelError with the
// given code.
func IsModelError(err error, code ModelErrorCode) bool {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
