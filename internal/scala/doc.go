// Package scala builds Scala tuning files (.scl scale descriptions and
// .kbm keyboard mappings) from music so that an external synth can play
// exact just frequencies without pitch bends.
package scala
