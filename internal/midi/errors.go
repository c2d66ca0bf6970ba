package midi

import (
	"errors"
	"fmt"
)

// EncodingError reports music that cannot be represented as MIDI.
type EncodingError struct {
	// Code identifies the failure.
	Code EncodingErrorCode

	// Message is a human-readable description naming the offending value.
	Message string
}

// EncodingErrorCode categorizes MIDI encoding failures.
type EncodingErrorCode string

const (
	// ErrCodeChannelsExhausted indicates more simultaneous voices than
	// usable MIDI channels.
	ErrCodeChannelsExhausted EncodingErrorCode = "CHANNELS_EXHAUSTED"

	// ErrCodePitchOutOfRange indicates a frequency whose nearest MIDI
	// note number falls outside 0..127.
	ErrCodePitchOutOfRange EncodingErrorCode = "PITCH_OUT_OF_RANGE"

	// ErrCodeFractionalTicks indicates a duration that is not a whole
	// number of MIDI ticks.
	ErrCodeFractionalTicks EncodingErrorCode = "FRACTIONAL_TICKS"

	// ErrCodeDeltaOutOfRange indicates a delta time too large for the
	// four-byte variable-length encoding.
	ErrCodeDeltaOutOfRange EncodingErrorCode = "DELTA_OUT_OF_RANGE"

	// ErrCodeTempoOutOfRange indicates a time unit whose
	// microseconds-per-beat value does not fit the tempo meta event.
	ErrCodeTempoOutOfRange EncodingErrorCode = "TEMPO_OUT_OF_RANGE"

	// ErrCodeUnmappedFrequency indicates a frequency missing from the
	// Scala keyboard mapping.
	ErrCodeUnmappedFrequency EncodingErrorCode = "UNMAPPED_FREQUENCY"

	// ErrCodeBadOptions indicates invalid encoding options.
	ErrCodeBadOptions EncodingErrorCode = "BAD_OPTIONS"
)

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func encodingErrorf(code EncodingErrorCode, format string, args ...any) *EncodingError {
	return &EncodingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsEncodingError reports whether err is (or wraps) an EncodingError
// with the given code.
func IsEncodingError(err error, code EncodingErrorCode) bool {
	var ee *EncodingError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}
