// Package midi renders resolved music as a standard Format-1 MIDI file.
//
// Exact just frequencies survive MIDI's twelve-tone pitch grid in one
// of two ways. Pitch-bend tuning gives every simultaneous note its own
// channel and prefixes it with a bend that corrects the residual cents.
// Scala tuning emits plain note numbers and relies on sidecar .scl and
// .kbm files to retune them, which needs no bends but fixes one scale
// for the whole piece.
package midi
