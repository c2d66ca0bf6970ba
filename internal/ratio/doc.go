// Package ratio provides exact rational arithmetic for just-intonation
// pitch, duration, and volume values.
//
// This package contains the foundational value types. All other internal
// packages import ratio; ratio imports nothing internal. Values are
// immutable: every operation returns a new value.
//
// Key design constraints:
//   - NO floats in stored values - frequencies are exact rationals or
//     exact powers of two; floats appear only at the evaluation boundary
//   - Ratios are always held in lowest terms with a positive denominator
//   - A RatioProduct keeps its factors so a composed interval stays
//     legible (5/4*3/2 rather than 15/8)
package ratio
