package scala

import (
	"errors"
	"fmt"
)

// TuningError reports music that cannot be expressed as a Scala tuning.
type TuningError struct {
	// Code identifies the failure.
	Code TuningErrorCode

	// Message is a human-readable description naming the offending value.
	Message string
}

// TuningErrorCode categorizes Scala tuning failures.
type TuningErrorCode string

const (
	// ErrCodeNonRationalFrequency indicates a tempered frequency, which
	// has no exact ratio line in a .scl file.
	ErrCodeNonRationalFrequency TuningErrorCode = "NON_RATIONAL_FREQUENCY"

	// ErrCodeTooManyFrequencies indicates more distinct frequencies than
	// MIDI note numbers to map them onto.
	ErrCodeTooManyFrequencies TuningErrorCode = "TOO_MANY_FREQUENCIES"
)

// Error implements the error interface.
func (e *TuningError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func tuningErrorf(code TuningErrorCode, format string, args ...any) *TuningError {
	return &TuningError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsTuningError reports whether err is (or wraps) a TuningError with the
// given code.
func IsTuningError(err error, code TuningErrorCode) bool {
	var te *TuningError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}
