package eval

import (
	"errors"
	"fmt"
)

// EvaluationError reports a failure to resolve music to concrete
// frequencies.
type EvaluationError struct {
	// Code identifies the error category.
	Code EvaluationErrorCode

	// Message is a human-readable description naming the offending value.
	Message string
}

// EvaluationErrorCode categorizes evaluation failures.
type EvaluationErrorCode string

const (
	// ErrCodeUnresolvedMarker indicates a tempering marker survived
	// resolution.
	ErrCodeUnresolvedMarker EvaluationErrorCode = "UNRESOLVED_MARKER"

	// ErrCodeNonFiniteFrequency indicates a frequency that did not
	// resolve to a finite non-negative value.
	ErrCodeNonFiniteFrequency EvaluationErrorCode = "NON_FINITE_FREQUENCY"

	// ErrCodeBadReference indicates a reference frequency that is not
	// finite and positive.
	ErrCodeBadReference EvaluationErrorCode = "BAD_REFERENCE"

	// ErrCodeBadDivisions indicates a tempering request with a
	// non-positive division count.
	ErrCodeBadDivisions EvaluationErrorCode = "BAD_DIVISIONS"

	// ErrCodeNonRationalInterval indicates an interval table request over
	// frequencies that are not exact ratios.
	ErrCodeNonRationalInterval EvaluationErrorCode = "NON_RATIONAL_INTERVAL"
)

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func evalErrorf(code EvaluationErrorCode, format string, args ...any) *EvaluationError {
	return &EvaluationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsEvaluationError reports whether err is (or wraps) an EvaluationError
// with the given code.
func IsEvaluationError(err error, code EvaluationErrorCode) bool {
	var ee *EvaluationError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}
