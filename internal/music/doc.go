// Package music defines the immutable value tree for a piece of
// just-intonation music: Note, Chord, Part, and Piece.
//
// A Piece owns its Parts, a Part owns its Notes and Chords; there are no
// back-references and no shared mutation. Every transformation produces a
// new tree. The transform package is the only producer of these values
// from source text; the eval and midi packages are the consumers.
//
// Model invariants are enforced at construction and refused with a
// ModelError rather than deferred:
//   - durations and volumes are strictly positive rationals
//   - chords are non-empty
//   - a note frequency is exactly one of an exact RatioProduct or a
//     tempered Power (a zero-valued product is a rest)
package music
