// Package eval resolves a music value tree against a reference frequency
// and provides the analysis queries used for display and encoding.
//
// Evaluate produces a new, fully-resolved tree: every tempering marker
// has been applied, every frequency is a concrete value in Hz, and every
// note carries its cent value. The input tree is never modified. A
// marker or non-finite frequency surviving resolution is an
// EvaluationError, never silent.
//
// Tempering approximates exact ratios in a system of n equal divisions
// of the octave. Each factor of a ratio product is tempered separately
// and the rounded step counts are summed, so multiplying a chord by a
// common root never changes the tempered intervals inside the chord.
// Ties round to even, matching the rounding used throughout the MIDI
// encoder.
package eval
